package grpcchan

import (
	"context"

	"google.golang.org/grpc/metadata"

	"channelcall"
)

var _ channelcall.ScopeFactory = (*MetadataScope)(nil)

// MetadataScope binds the channel like channelcall.ContextScope and attaches
// md as outgoing metadata, so every call made inside the scope carries it.
type MetadataScope struct {
	md metadata.MD
}

func NewMetadataScope(md metadata.MD) *MetadataScope {
	return &MetadataScope{md: md.Copy()}
}

func (s *MetadataScope) CreateOperationScope(ctx context.Context, ch channelcall.Channel) (channelcall.Scope, error) {
	if out, ok := metadata.FromOutgoingContext(ctx); ok {
		ctx = metadata.NewOutgoingContext(ctx, metadata.Join(out, s.md))
	} else {
		ctx = metadata.NewOutgoingContext(ctx, s.md.Copy())
	}
	return channelcall.ContextScope{}.CreateOperationScope(ctx, ch)
}
