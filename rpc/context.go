package rpc

import (
	"context"
	"strconv"
	"strings"
	"time"

	"google.golang.org/grpc/metadata"
)

const (
	metaOneway   = "one-way"
	metaDeadline = "deadline"
)

type onewayKey struct{}

// WithOneway marks calls made with ctx as one-way: the request is sent and
// no response is awaited.
func WithOneway(ctx context.Context) context.Context {
	return context.WithValue(ctx, onewayKey{}, true)
}

func isOneway(ctx context.Context) bool {
	val, ok := ctx.Value(onewayKey{}).(bool)
	return ok && val
}

// requestMeta collects the metadata sent along with a request: outgoing
// metadata attached by the operation scope, the deadline and the one-way flag.
func requestMeta(ctx context.Context) map[string]string {
	var meta map[string]string
	if md, ok := metadata.FromOutgoingContext(ctx); ok && md.Len() > 0 {
		meta = make(map[string]string, md.Len()+2)
		for key, values := range md {
			value := strings.Join(values, ",")
			// splitters would corrupt the header
			if strings.ContainsAny(key, "\r\n") || strings.ContainsAny(value, "\r\n") {
				continue
			}
			meta[key] = value
		}
	}
	if isOneway(ctx) {
		if meta == nil {
			meta = make(map[string]string, 2)
		}
		meta[metaOneway] = "true"
	}
	if deadline, ok := ctx.Deadline(); ok {
		if meta == nil {
			meta = make(map[string]string, 1)
		}
		meta[metaDeadline] = strconv.FormatInt(deadline.UnixMilli(), 10)
	}
	return meta
}

// incomingContext rebuilds the server side context from request metadata.
func incomingContext(meta map[string]string) (context.Context, context.CancelFunc) {
	ctx := context.Background()
	if len(meta) > 0 {
		md := metadata.New(nil)
		for key, value := range meta {
			if key == metaOneway || key == metaDeadline {
				continue
			}
			md.Set(key, value)
		}
		ctx = metadata.NewIncomingContext(ctx, md)
	}
	deadline, err := strconv.ParseInt(meta[metaDeadline], 10, 64)
	if err != nil {
		return context.WithCancel(ctx)
	}
	return context.WithDeadline(ctx, time.UnixMilli(deadline))
}
