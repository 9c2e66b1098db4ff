package rpc

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/gotomicro/ekit/bean/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"channelcall"
	"channelcall/grpcchan"
	"channelcall/internal/errs"
	"channelcall/rpc/compress/gzip"
	"channelcall/rpc/compress/lz4"
	"channelcall/rpc/compress/snappy"
	"channelcall/rpc/compress/zlib"
	"channelcall/rpc/serialize/proto"
)

type GetByIdReq struct {
	Id int `json:"id"`
}

type GetByIdResp struct {
	Msg string `json:"msg"`
}

type HeadersResp struct {
	Values map[string]string `json:"values"`
}

type UserService struct {
	notified chan int
}

func (u *UserService) Name() string {
	return "user-service"
}

func (u *UserService) GetById(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error) {
	return &GetByIdResp{Msg: "user " + strconv.Itoa(req.Id)}, nil
}

func (u *UserService) GetByIdProto(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("proto user"), nil
}

func (u *UserService) Fail(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error) {
	return nil, errors.New("user not found")
}

func (u *UserService) Slow(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error) {
	select {
	case <-time.After(time.Second):
	case <-ctx.Done():
	}
	return &GetByIdResp{}, nil
}

func (u *UserService) Headers(ctx context.Context, req *GetByIdReq) (*HeadersResp, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := make(map[string]string, md.Len())
	for key, vals := range md {
		values[key] = vals[0]
	}
	return &HeadersResp{Values: values}, nil
}

func (u *UserService) Notify(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error) {
	u.notified <- req.Id
	return &GetByIdResp{}, nil
}

type UserServiceClient struct {
	GetById      func(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error)
	GetByIdProto func(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error)
	Fail         func(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error)
	Slow         func(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error)
	Headers      func(ctx context.Context, req *GetByIdReq) (*HeadersResp, error)
	Notify       func(ctx context.Context, req *GetByIdReq) (*GetByIdResp, error)
}

func (u *UserServiceClient) Name() string {
	return "user-service"
}

func startServer(t *testing.T, service Service) (*Server, string) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := NewServer()
	require.NoError(t, server.RegisterService(service))
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(func() {
		_ = listener.Close()
		_ = server.Close()
	})
	return server, listener.Addr().String()
}

type reportObserver struct {
	reports []channelcall.Report
}

func (o *reportObserver) Begin(ctx context.Context, address string) (context.Context, func(channelcall.Report)) {
	return ctx, func(r channelcall.Report) {
		o.reports = append(o.reports, r)
	}
}

func invoke(t *testing.T, factory *ChannelFactory, scopes channelcall.ScopeFactory, address string,
	ops ...channelcall.Operation[*Channel]) (channelcall.Report, error) {
	obs := &reportObserver{}
	h := channelcall.NewHandler[*Channel](channelcall.WithObserver(obs), channelcall.WithCloseTimeout(time.Second))
	err := h.Invoke(context.Background(), scopes, factory, address, ops...)
	require.Len(t, obs.reports, 1)
	return obs.reports[0], err
}

func bind(t *testing.T, ch *Channel) *UserServiceClient {
	us := &UserServiceClient{}
	require.NoError(t, Bind(ch, us))
	return us
}

func TestChannel_Invoke(t *testing.T) {
	_, address := startServer(t, &UserService{})
	testCases := []struct {
		name string
		opts []option.Option[ChannelFactory]
	}{
		{name: "json"},
		{name: "gzip", opts: []option.Option[ChannelFactory]{FactoryWithCompressor(gzip.Compressor{})}},
		{name: "zlib", opts: []option.Option[ChannelFactory]{FactoryWithCompressor(zlib.Compressor{})}},
		{name: "snappy", opts: []option.Option[ChannelFactory]{FactoryWithCompressor(snappy.Compressor{})}},
		{name: "lz4", opts: []option.Option[ChannelFactory]{FactoryWithCompressor(lz4.Compressor{})}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var channel *Channel
			report, err := invoke(t, NewChannelFactory(tc.opts...), nil, address,
				func(ctx context.Context, ch *Channel) error {
					channel = ch
					us := bind(t, ch)
					resp, err := us.GetById(ctx, &GetByIdReq{Id: 3})
					require.NoError(t, err)
					assert.Equal(t, "user 3", resp.Msg)
					resp, err = us.GetById(ctx, &GetByIdReq{Id: 4})
					require.NoError(t, err)
					assert.Equal(t, "user 4", resp.Msg)
					return nil
				})
			require.NoError(t, err)
			assert.Equal(t, channelcall.DispositionClosed, report.Disposition)
			assert.Equal(t, channelcall.StateClosed, channel.State())
		})
	}
}

func TestChannel_Proto(t *testing.T) {
	_, address := startServer(t, &UserService{})
	factory := NewChannelFactory(FactoryWithSerializer(proto.Serializer{}), FactoryWithCompressor(gzip.Compressor{}))
	_, err := invoke(t, factory, nil, address, func(ctx context.Context, ch *Channel) error {
		resp, err := bind(t, ch).GetByIdProto(ctx, wrapperspb.Int64(1))
		if err != nil {
			return err
		}
		assert.Equal(t, "proto user", resp.GetValue())
		return nil
	})
	require.NoError(t, err)
}

func TestChannel_RemoteError(t *testing.T) {
	_, address := startServer(t, &UserService{})
	report, err := invoke(t, NewChannelFactory(), nil, address, func(ctx context.Context, ch *Channel) error {
		_, err := bind(t, ch).Fail(ctx, &GetByIdReq{Id: 1})
		return err
	})
	assert.EqualError(t, err, "user not found")
	assert.False(t, channelcall.IsCommunicationFault(err))
	// a remote error leaves the channel usable, so it is closed gracefully
	assert.Equal(t, channelcall.StateOpened, report.State)
	assert.Equal(t, channelcall.DispositionClosed, report.Disposition)
}

func TestChannel_Timeout(t *testing.T) {
	_, address := startServer(t, &UserService{})
	report, err := invoke(t, NewChannelFactory(), nil, address, func(ctx context.Context, ch *Channel) error {
		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := bind(t, ch).Slow(ctx, &GetByIdReq{Id: 1})
		return err
	})
	assert.True(t, channelcall.IsTimeout(err))
	assert.True(t, channelcall.IsCommunicationFault(err))
	assert.Equal(t, channelcall.StateFaulted, report.State)
	assert.Equal(t, channelcall.DispositionAborted, report.Disposition)
}

func TestChannel_ServerGone(t *testing.T) {
	server, address := startServer(t, &UserService{})
	report, err := invoke(t, NewChannelFactory(), nil, address, func(ctx context.Context, ch *Channel) error {
		us := bind(t, ch)
		if _, err := us.GetById(ctx, &GetByIdReq{Id: 1}); err != nil {
			return err
		}
		require.NoError(t, server.Close())
		_, err := us.GetById(ctx, &GetByIdReq{Id: 2})
		return err
	})
	assert.True(t, channelcall.IsCommunicationFault(err))
	assert.Equal(t, channelcall.StateFaulted, report.State)
	assert.Equal(t, channelcall.DispositionAborted, report.Disposition)
	assert.Equal(t, 1, report.Executed)
}

func TestChannel_Oneway(t *testing.T) {
	service := &UserService{notified: make(chan int, 1)}
	_, address := startServer(t, service)
	_, err := invoke(t, NewChannelFactory(), nil, address, func(ctx context.Context, ch *Channel) error {
		resp, err := bind(t, ch).Notify(WithOneway(ctx), &GetByIdReq{Id: 7})
		assert.Empty(t, resp.Msg)
		return err
	})
	require.NoError(t, err)
	select {
	case id := <-service.notified:
		assert.Equal(t, 7, id)
	case <-time.After(time.Second):
		t.Fatal("one-way request never reached the server")
	}
}

func TestChannel_ScopeMetadata(t *testing.T) {
	_, address := startServer(t, &UserService{})
	scopes := grpcchan.NewMetadataScope(metadata.Pairs("x-request-id", "42", "x-tenant", "acme"))
	_, err := invoke(t, NewChannelFactory(), scopes, address, func(ctx context.Context, ch *Channel) error {
		resp, err := bind(t, ch).Headers(ctx, &GetByIdReq{})
		if err != nil {
			return err
		}
		assert.Equal(t, map[string]string{"x-request-id": "42", "x-tenant": "acme"}, resp.Values)
		return nil
	})
	require.NoError(t, err)
}

func TestChannel_DialFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	require.NoError(t, listener.Close())

	ran := false
	err = channelcall.Invoke[*Channel](context.Background(), nil, NewChannelFactory(), address,
		func(ctx context.Context, ch *Channel) error {
			ran = true
			return nil
		})
	assert.True(t, channelcall.IsCommunicationFault(err))
	assert.False(t, ran)
}

func TestChannel_CallAfterClose(t *testing.T) {
	_, address := startServer(t, &UserService{})
	ch, err := NewChannelFactory().CreateChannel(context.Background(), address)
	require.NoError(t, err)
	require.NoError(t, ch.Close(context.Background()))
	assert.Equal(t, channelcall.StateClosed, ch.State())
	// closing again is a no-op
	assert.NoError(t, ch.Close(context.Background()))

	err = ch.Call(context.Background(), "user-service", "GetById", &GetByIdReq{}, &GetByIdResp{})
	assert.Error(t, err)
	ch.Abort()
	assert.Equal(t, channelcall.StateClosed, ch.State())
}

func TestChannel_InvalidNames(t *testing.T) {
	_, address := startServer(t, &UserService{})
	testCases := []struct {
		name    string
		service string
		method  string
	}{
		{name: "empty service", method: "GetById"},
		{name: "newline in service", service: "user-service\nGetById", method: "GetById"},
		{name: "newline in method", service: "user-service", method: "Get\nById"},
		{name: "carriage return in method", service: "user-service", method: "Get\rById"},
	}
	report, err := invoke(t, NewChannelFactory(), nil, address, func(ctx context.Context, ch *Channel) error {
		for _, tc := range testCases {
			err := ch.Call(ctx, tc.service, tc.method, &GetByIdReq{}, &GetByIdResp{})
			assert.Equal(t, errs.InvalidServiceName, err, tc.name)
		}
		// the channel is still usable
		resp := &GetByIdResp{}
		if err := ch.Call(ctx, "user-service", "GetById", &GetByIdReq{Id: 1}, resp); err != nil {
			return err
		}
		assert.Equal(t, "user 1", resp.Msg)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, channelcall.DispositionClosed, report.Disposition)
}
