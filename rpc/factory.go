package rpc

import (
	"context"
	"net"
	"time"

	"github.com/gotomicro/ekit/bean/option"

	"channelcall"
	"channelcall/rpc/compress"
	"channelcall/rpc/serialize"
	"channelcall/rpc/serialize/json"
)

var _ channelcall.ChannelFactory[*Channel] = (*ChannelFactory)(nil)

// ChannelFactory dials one connection per channel.
type ChannelFactory struct {
	dialer     net.Dialer
	serializer serialize.Serializer
	compressor compress.Compressor
}

// FactoryWithSerializer -> option
func FactoryWithSerializer(s serialize.Serializer) option.Option[ChannelFactory] {
	return func(f *ChannelFactory) {
		f.serializer = s
	}
}

// FactoryWithCompressor -> option
func FactoryWithCompressor(c compress.Compressor) option.Option[ChannelFactory] {
	return func(f *ChannelFactory) {
		f.compressor = c
	}
}

// FactoryWithDialTimeout -> option
func FactoryWithDialTimeout(timeout time.Duration) option.Option[ChannelFactory] {
	return func(f *ChannelFactory) {
		f.dialer.Timeout = timeout
	}
}

// NewChannelFactory -> json without compression unless configured otherwise
func NewChannelFactory(opts ...option.Option[ChannelFactory]) *ChannelFactory {
	f := &ChannelFactory{
		serializer: json.Serializer{},
		compressor: compress.DoNothingCompressor{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *ChannelFactory) CreateChannel(ctx context.Context, address string) (*Channel, error) {
	conn, err := f.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, channelcall.NewCommunicationError("dial", err)
	}
	return newChannel(conn, f.serializer, f.compressor), nil
}
