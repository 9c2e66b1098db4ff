package prometheus

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channelcall"
)

type fakeChannel struct {
	state    channelcall.State
	closeErr error
}

func (f *fakeChannel) State() channelcall.State        { return f.state }
func (f *fakeChannel) Close(ctx context.Context) error { return f.closeErr }
func (f *fakeChannel) Abort()                          {}

func TestObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o, err := ObserverBuilder{Namespace: "test", Name: "invoke", Help: "channel invocations"}.Build(reg)
	require.NoError(t, err)

	channels := []*fakeChannel{
		{state: channelcall.StateOpened},
		{state: channelcall.StateFaulted},
		{state: channelcall.StateOpened, closeErr: &channelcall.CommunicationError{Op: "close"}},
		{state: channelcall.StateOpened, closeErr: errors.New("boom")},
	}
	h := channelcall.NewHandler[*fakeChannel](channelcall.WithObserver(o))
	for _, ch := range channels {
		ch := ch
		factory := channelcall.ChannelFactoryFunc[*fakeChannel](func(ctx context.Context, address string) (*fakeChannel, error) {
			return ch, nil
		})
		_ = h.Invoke(context.Background(), nil, factory, "localhost:8081")
	}
	failing := channelcall.ChannelFactoryFunc[*fakeChannel](func(ctx context.Context, address string) (*fakeChannel, error) {
		return nil, errors.New("dial failed")
	})
	_ = h.Invoke(context.Background(), nil, failing, "localhost:8081")

	assert.Equal(t, float64(1), testutil.ToFloat64(o.dispositions.WithLabelValues("localhost:8081", "closed")))
	assert.Equal(t, float64(3), testutil.ToFloat64(o.dispositions.WithLabelValues("localhost:8081", "aborted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(o.suppressed.WithLabelValues("localhost:8081")))
	assert.Equal(t, float64(2), testutil.ToFloat64(o.failures.WithLabelValues("localhost:8081")))
	assert.Equal(t, float64(0), testutil.ToFloat64(o.active))

	// the same names cannot be registered twice
	_, err = ObserverBuilder{Namespace: "test", Name: "invoke"}.Build(reg)
	assert.Error(t, err)
}
