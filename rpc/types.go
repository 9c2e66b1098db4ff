package rpc

// Service is implemented by both client stubs and server implementations.
// Name must match on both sides.
type Service interface {
	Name() string
}
