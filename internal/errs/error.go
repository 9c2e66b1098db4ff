package errs

import (
	"errors"
	"fmt"
)

var (
	InvalidAddressError    = errors.New("channelcall: address must not be empty")
	NilChannelFactoryError = errors.New("channelcall: channel factory must not be nil")
	NilScopeError          = errors.New("channelcall: scope factory returned a nil scope")
	ChannelNotOpenError    = errors.New("channelcall: channel is not open")
)

var (
	ServiceTypError    = errors.New("rpc: service type must be a first level pointer to struct")
	NilServiceError    = errors.New("rpc: service must not be nil")
	ReadLenDataError   = errors.New("rpc: could not read the length data")
	InvalidServiceName = errors.New("rpc: invalid service name")
	InvalidMessage     = errors.New("rpc: malformed message")
)

var (
	ProtoSerializeTypError   = errors.New("serialize: serialization must be proto Message Type")
	ProtoDeserializeTypError = errors.New("serialize: deserialization must be proto.Message type")
)

func NotFoundServiceMethod(name string) error {
	return fmt.Errorf("rpc: service method %s not found", name)
}

func InvalidStubField(name string) error {
	return fmt.Errorf("rpc: field %s must be func(context.Context, *Req) (*Resp, error)", name)
}

func UnsupportedSerializer(code byte) error {
	return fmt.Errorf("rpc: unsupported serializer %d", code)
}

func UnsupportedCompressor(code byte) error {
	return fmt.Errorf("rpc: unsupported compressor %d", code)
}

func UnknownCodecName(kind, name string) error {
	return fmt.Errorf("rpc: unknown %s %q", kind, name)
}
