package grpcchan

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"

	"channelcall"
)

var (
	_ channelcall.Channel       = (*Channel)(nil)
	_ grpc.ClientConnInterface = (*Channel)(nil)
)

// Channel is a grpc client connection seen as a channel. Generated clients
// accept it directly, e.g. pb.NewUserServiceClient(ch).
type Channel struct {
	*grpc.ClientConn
}

func (c *Channel) State() channelcall.State {
	return toState(c.ClientConn.GetState())
}

func toState(s connectivity.State) channelcall.State {
	switch s {
	case connectivity.Idle:
		return channelcall.StateCreated
	case connectivity.Connecting:
		return channelcall.StateOpening
	case connectivity.Ready:
		return channelcall.StateOpened
	case connectivity.TransientFailure:
		return channelcall.StateFaulted
	default:
		return channelcall.StateClosed
	}
}

// Close tears the connection down; grpc has no graceful drain on the client
// side, so ctx is not consulted.
func (c *Channel) Close(ctx context.Context) error {
	return channelcall.NewCommunicationError("close", c.ClientConn.Close())
}

func (c *Channel) Abort() {
	_ = c.ClientConn.Close()
}
