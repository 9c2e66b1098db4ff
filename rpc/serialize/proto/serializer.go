package proto

import (
	"google.golang.org/protobuf/proto"

	"channelcall/internal/errs"
	"channelcall/rpc/serialize"
)

var _ serialize.Serializer = Serializer{}

// Serializer -> Protobuf serialization protocol
type Serializer struct{}

func (Serializer) Code() byte {
	return 2
}

func (Serializer) Encode(val any) ([]byte, error) {
	msg, ok := val.(proto.Message)
	if !ok {
		return nil, errs.ProtoSerializeTypError
	}
	return proto.Marshal(msg)
}

func (Serializer) Decode(data []byte, val any) error {
	msg, ok := val.(proto.Message)
	if !ok {
		return errs.ProtoDeserializeTypError
	}
	return proto.Unmarshal(data, msg)
}
