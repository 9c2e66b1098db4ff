package channelcall

import (
	"context"
	"time"

	"channelcall/internal/errs"

	"github.com/gotomicro/ekit/bean/option"
	"go.uber.org/zap"
)

// Disposition is how a channel was released by the cleanup protocol.
type Disposition uint8

const (
	// DispositionNone means no channel was acquired.
	DispositionNone Disposition = iota
	DispositionClosed
	DispositionAborted
)

func (d Disposition) String() string {
	switch d {
	case DispositionClosed:
		return "closed"
	case DispositionAborted:
		return "aborted"
	default:
		return "none"
	}
}

// Report describes one finished invocation.
type Report struct {
	Address string
	// Executed counts the operations that were started.
	Executed    int
	State       State
	Disposition Disposition
	// Suppressed is the expected close failure that was recovered by aborting.
	Suppressed error
	Err        error
	Duration   time.Duration
}

// Observer is notified around every invocation.
type Observer interface {
	Begin(ctx context.Context, address string) (context.Context, func(Report))
}

// Options holds the behaviour shared by Handlers.
type Options struct {
	logger       *zap.Logger
	observers    []Observer
	closeTimeout time.Duration
}

func WithLogger(logger *zap.Logger) option.Option[Options] {
	return func(o *Options) {
		o.logger = logger
	}
}

func WithObserver(observer Observer) option.Option[Options] {
	return func(o *Options) {
		o.observers = append(o.observers, observer)
	}
}

// WithCloseTimeout bounds the graceful close. A close that runs out of time
// is a timeout and ends in an abort.
func WithCloseTimeout(timeout time.Duration) option.Option[Options] {
	return func(o *Options) {
		o.closeTimeout = timeout
	}
}

// Handler invokes operations over channels of contract C. It holds no
// per-invocation state and is safe for concurrent use.
type Handler[C Channel] struct {
	Options
}

func NewHandler[C Channel](opts ...option.Option[Options]) *Handler[C] {
	h := &Handler[C]{
		Options: Options{
			logger: zap.NewNop(),
		},
	}
	for _, opt := range opts {
		opt(&h.Options)
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// Invoke runs ops against a single channel created by factory for address,
// then closes or aborts that channel. A nil scopes uses ContextScope.
func Invoke[C Channel](ctx context.Context, scopes ScopeFactory, factory ChannelFactory[C],
	address string, ops ...Operation[C]) error {
	return NewHandler[C]().Invoke(ctx, scopes, factory, address, ops...)
}

func (h *Handler[C]) Invoke(ctx context.Context, scopes ScopeFactory, factory ChannelFactory[C],
	address string, ops ...Operation[C]) (err error) {
	if address == "" {
		return errs.InvalidAddressError
	}
	if factory == nil {
		return errs.NilChannelFactoryError
	}
	if scopes == nil {
		scopes = ContextScope{}
	}

	report := Report{Address: address}
	start := time.Now()
	ctx, finish := h.begin(ctx, address)
	defer func() {
		report.Err = err
		report.Duration = time.Since(start)
		finish(report)
	}()

	ch, err := factory.CreateChannel(ctx, address)
	if err != nil {
		return err
	}
	// runs on every path once the channel exists, panics included
	defer func() {
		err = h.release(ctx, ch, address, err, &report)
	}()
	report.Executed, err = runScoped(ctx, scopes, ch, ops)
	return err
}

// runScoped executes ops in order inside one scope. The scope is released
// before it returns.
func runScoped[C Channel](ctx context.Context, scopes ScopeFactory, ch C, ops []Operation[C]) (executed int, err error) {
	scope, err := scopes.CreateOperationScope(ctx, ch)
	if err != nil {
		return 0, err
	}
	if scope == nil {
		return 0, errs.NilScopeError
	}
	defer scope.Release()

	scopeCtx := scope.Context()
	if scopeCtx == nil {
		scopeCtx = ctx
	}
	for _, op := range ops {
		if err = scopeCtx.Err(); err != nil {
			return executed, err
		}
		executed++
		if err = op(scopeCtx, ch); err != nil {
			return executed, err
		}
	}
	return executed, nil
}

func (h *Handler[C]) begin(ctx context.Context, address string) (context.Context, func(Report)) {
	if len(h.observers) == 0 {
		return ctx, func(Report) {}
	}
	finishes := make([]func(Report), 0, len(h.observers))
	for _, o := range h.observers {
		var finish func(Report)
		ctx, finish = o.Begin(ctx, address)
		finishes = append(finishes, finish)
	}
	return ctx, func(r Report) {
		for i := len(finishes) - 1; i >= 0; i-- {
			finishes[i](r)
		}
	}
}
