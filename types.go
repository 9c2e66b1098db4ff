package channelcall

import (
	"context"
)

// State is the lifecycle phase of a Channel.
type State int32

const (
	StateCreated State = iota
	StateOpening
	StateOpened
	StateClosing
	StateClosed
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOpening:
		return "opening"
	case StateOpened:
		return "opened"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Channel is the lifecycle view every channel exposes. Application contracts
// embed it, so the orchestrator never has to cast between the two.
//
//go:generate mockgen -package=mocks -destination=mocks/types.mock.go -source=types.go
type Channel interface {
	State() State
	// Close shuts the channel down gracefully. Communication faults and
	// timeouts are expected failures; anything else is not.
	Close(ctx context.Context) error
	// Abort tears the channel down immediately.
	Abort()
}

// ChannelFactory creates one channel bound to address.
type ChannelFactory[C Channel] interface {
	CreateChannel(ctx context.Context, address string) (C, error)
}

// Scope binds the operations of one invocation to a channel.
type Scope interface {
	Context() context.Context
	Release()
}

type ScopeFactory interface {
	CreateOperationScope(ctx context.Context, ch Channel) (Scope, error)
}

// Operation is one unit of caller work run against the channel.
type Operation[C Channel] func(ctx context.Context, ch C) error

// ChannelFactoryFunc adapts a function to ChannelFactory.
type ChannelFactoryFunc[C Channel] func(ctx context.Context, address string) (C, error)

func (f ChannelFactoryFunc[C]) CreateChannel(ctx context.Context, address string) (C, error) {
	return f(ctx, address)
}
