package channelcall

import (
	"context"
)

type channelKey struct{}

var _ ScopeFactory = ContextScope{}

// ContextScope binds the channel to a context derived from the caller's.
// Releasing the scope cancels that context.
type ContextScope struct{}

func (ContextScope) CreateOperationScope(ctx context.Context, ch Channel) (Scope, error) {
	ctx, cancel := context.WithCancel(context.WithValue(ctx, channelKey{}, ch))
	return &contextScope{ctx: ctx, cancel: cancel}, nil
}

type contextScope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *contextScope) Context() context.Context {
	return s.ctx
}

func (s *contextScope) Release() {
	s.cancel()
}

// CurrentChannel returns the channel bound to ctx by ContextScope.
func CurrentChannel(ctx context.Context) (Channel, bool) {
	ch, ok := ctx.Value(channelKey{}).(Channel)
	return ch, ok
}

// ScopeFactoryFunc adapts a function to ScopeFactory.
type ScopeFactoryFunc func(ctx context.Context, ch Channel) (Scope, error)

func (f ScopeFactoryFunc) CreateOperationScope(ctx context.Context, ch Channel) (Scope, error) {
	return f(ctx, ch)
}
