package channelcall

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// CommunicationError reports a transport level failure of a channel.
type CommunicationError struct {
	Op  string
	Err error
}

func (e *CommunicationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("channelcall: communication failure during %s", e.Op)
	}
	return fmt.Sprintf("channelcall: communication failure during %s: %v", e.Op, e.Err)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// NewCommunicationError wraps err as a communication fault of op.
// A nil err stays nil.
func NewCommunicationError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CommunicationError{Op: op, Err: err}
}

// IsCommunicationFault reports whether err is a transport failure.
func IsCommunicationFault(err error) bool {
	var ce *CommunicationError
	if errors.As(err, &ce) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// isExpectedCloseFailure decides whether a close error can be recovered by
// aborting the channel.
func isExpectedCloseFailure(err error) bool {
	return IsCommunicationFault(err) || IsTimeout(err)
}

// CleanupError is returned when closing a channel failed unexpectedly after
// one of the operations had already failed. Err is the close failure and
// takes precedence; Cause is the operation failure.
type CleanupError struct {
	Err   error
	Cause error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("channelcall: close failed: %v (operation failed: %v)", e.Err, e.Cause)
}

func (e *CleanupError) Unwrap() []error {
	return []error{e.Err, e.Cause}
}
