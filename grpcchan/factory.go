package grpcchan

import (
	"context"
	"fmt"

	"github.com/gotomicro/ekit/bean/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"channelcall"
)

var _ channelcall.ChannelFactory[*Channel] = (*Factory)(nil)

// Factory dials a new grpc connection per channel.
type Factory struct {
	insecure     bool
	block        bool
	balancer     string
	interceptors []grpc.UnaryClientInterceptor
	dialOptions  []grpc.DialOption
}

func NewFactory(opts ...option.Option[Factory]) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func FactoryWithInsecure() option.Option[Factory] {
	return func(f *Factory) {
		f.insecure = true
	}
}

// FactoryWithBlock makes CreateChannel wait until the connection is ready.
func FactoryWithBlock() option.Option[Factory] {
	return func(f *Factory) {
		f.block = true
	}
}

// FactoryWithBalancer selects a registered load balancing policy by name.
func FactoryWithBalancer(name string) option.Option[Factory] {
	return func(f *Factory) {
		f.balancer = name
	}
}

func FactoryWithUnaryInterceptors(interceptors ...grpc.UnaryClientInterceptor) option.Option[Factory] {
	return func(f *Factory) {
		f.interceptors = append(f.interceptors, interceptors...)
	}
}

func FactoryWithDialOptions(opts ...grpc.DialOption) option.Option[Factory] {
	return func(f *Factory) {
		f.dialOptions = append(f.dialOptions, opts...)
	}
}

func (f *Factory) CreateChannel(ctx context.Context, address string) (*Channel, error) {
	opts := make([]grpc.DialOption, 0, len(f.dialOptions)+4)
	if f.insecure {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	if f.block {
		opts = append(opts, grpc.WithBlock())
	}
	if f.balancer != "" {
		opts = append(opts, grpc.WithDefaultServiceConfig(
			fmt.Sprintf(`{"loadBalancingPolicy": "%s"}`, f.balancer)))
	}
	if len(f.interceptors) > 0 {
		opts = append(opts, grpc.WithChainUnaryInterceptor(f.interceptors...))
	}
	opts = append(opts, f.dialOptions...)
	conn, err := grpc.DialContext(ctx, address, opts...)
	if err != nil {
		return nil, channelcall.NewCommunicationError("dial", err)
	}
	return &Channel{ClientConn: conn}, nil
}
