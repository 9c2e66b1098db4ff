package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"channelcall"
	"channelcall/internal/errs"
	"channelcall/rpc/compress"
	"channelcall/rpc/message"
	"channelcall/rpc/serialize"
	"channelcall/rpc/tcp"
)

var _ channelcall.Channel = (*Channel)(nil)

// Channel is one TCP connection speaking the rpc protocol. It is owned by
// a single invocation and never reused.
type Channel struct {
	conn       net.Conn
	serializer serialize.Serializer
	compressor compress.Compressor

	state     atomic.Int32
	messageId atomic.Uint32
	// one request in flight at a time
	mu sync.Mutex
}

func newChannel(conn net.Conn, serializer serialize.Serializer, compressor compress.Compressor) *Channel {
	c := &Channel{
		conn:       conn,
		serializer: serializer,
		compressor: compressor,
	}
	c.state.Store(int32(channelcall.StateOpened))
	return c
}

func (c *Channel) State() channelcall.State {
	return channelcall.State(c.state.Load())
}

func (c *Channel) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Call sends req to service.method and decodes the reply into resp.
// Transport failures fault the channel; an error returned by the remote
// method does not.
func (c *Channel) Call(ctx context.Context, service, method string, req, resp any) error {
	if st := c.State(); st != channelcall.StateOpened {
		return fmt.Errorf("%w: %s", errs.ChannelNotOpenError, st)
	}
	// names are newline separated in the header
	if service == "" || strings.ContainsAny(service, "\r\n") || strings.ContainsAny(method, "\r\n") {
		return errs.InvalidServiceName
	}
	data, err := c.serializer.Encode(req)
	if err != nil {
		return err
	}
	data, err = c.compressor.Compress(data)
	if err != nil {
		return err
	}
	request := &message.Request{
		MessageId:   c.messageId.Add(1),
		Compresser:  c.compressor.Code(),
		Serializer:  c.serializer.Code(),
		ServiceName: service,
		MethodName:  method,
		Meta:        requestMeta(ctx),
		Data:        data,
	}
	request.CalculateHeaderLength()
	request.CalculateBodyLength()

	c.mu.Lock()
	defer c.mu.Unlock()
	deadline, _ := ctx.Deadline()
	if err = c.conn.SetDeadline(deadline); err != nil {
		return c.fault(ctx, "deadline", err)
	}
	// cancellation interrupts blocked I/O
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	if _, err = c.conn.Write(message.EncodeReq(request)); err != nil {
		return c.fault(ctx, "write", err)
	}
	if isOneway(ctx) {
		return nil
	}
	bs, err := tcp.ReadMsg(c.conn)
	if err != nil {
		return c.fault(ctx, "read", err)
	}
	response, err := message.DecodeResp(bs)
	if err != nil {
		return c.fault(ctx, "decode", err)
	}
	if response.MessageId != request.MessageId {
		return c.fault(ctx, "read", errs.InvalidMessage)
	}
	if len(response.Error) > 0 {
		return errors.New(string(response.Error))
	}
	if len(response.Data) == 0 || resp == nil {
		return nil
	}
	data, err = c.compressor.Uncompress(response.Data)
	if err != nil {
		return err
	}
	return c.serializer.Decode(data, resp)
}

func (c *Channel) fault(ctx context.Context, op string, err error) error {
	c.state.CompareAndSwap(int32(channelcall.StateOpened), int32(channelcall.StateFaulted))
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return channelcall.NewCommunicationError(op, err)
}

// Close half-closes the connection and waits for the peer to finish before
// releasing it. ctx bounds the wait.
func (c *Channel) Close(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(channelcall.StateOpened), int32(channelcall.StateClosing)) {
		switch st := c.State(); st {
		case channelcall.StateClosed:
			return nil
		default:
			return channelcall.NewCommunicationError("close", fmt.Errorf("%w: %s", errs.ChannelNotOpenError, st))
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.shutdown(ctx); err != nil {
		c.state.Store(int32(channelcall.StateFaulted))
		return channelcall.NewCommunicationError("close", err)
	}
	c.state.Store(int32(channelcall.StateClosed))
	return nil
}

func (c *Channel) shutdown(ctx context.Context) error {
	hc, ok := c.conn.(interface{ CloseWrite() error })
	if !ok {
		return c.conn.Close()
	}
	if err := hc.CloseWrite(); err != nil {
		return err
	}
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Unix(1, 0))
	})
	defer stop()
	if _, err := io.Copy(io.Discard, c.conn); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return c.conn.Close()
}

func (c *Channel) Abort() {
	c.state.Store(int32(channelcall.StateClosed))
	_ = c.conn.Close()
}
