package channelcall

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestCloseFailureClassification(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		wantComm      bool
		wantTimeout   bool
		wantRecovered bool
	}{
		{
			name:          "communication error",
			err:           &CommunicationError{Op: "close", Err: errors.New("reset")},
			wantComm:      true,
			wantRecovered: true,
		},
		{
			name:          "wrapped communication error",
			err:           fmt.Errorf("grpc: %w", NewCommunicationError("close", errors.New("reset"))),
			wantComm:      true,
			wantRecovered: true,
		},
		{
			name:          "net closed",
			err:           &net.OpError{Op: "close", Net: "tcp", Err: net.ErrClosed},
			wantComm:      true,
			wantRecovered: true,
		},
		{
			name:          "deadline exceeded",
			err:           context.DeadlineExceeded,
			wantTimeout:   true,
			wantRecovered: true,
		},
		{
			name:          "os deadline",
			err:           fmt.Errorf("read: %w", os.ErrDeadlineExceeded),
			wantTimeout:   true,
			wantRecovered: true,
		},
		{
			name:          "timeout method",
			err:           timeoutErr{},
			wantTimeout:   true,
			wantRecovered: true,
		},
		{
			name: "cancelled",
			err:  context.Canceled,
		},
		{
			name: "arbitrary",
			err:  errors.New("boom"),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantComm, IsCommunicationFault(tc.err))
			assert.Equal(t, tc.wantTimeout, IsTimeout(tc.err))
			assert.Equal(t, tc.wantRecovered, isExpectedCloseFailure(tc.err))
		})
	}
}

func TestNewCommunicationError(t *testing.T) {
	assert.Nil(t, NewCommunicationError("close", nil))
	cause := errors.New("reset")
	err := NewCommunicationError("close", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "channelcall: communication failure during close: reset", err.Error())
}

func TestCleanupError(t *testing.T) {
	closeErr := errors.New("close failed")
	opErr := errors.New("operation failed")
	err := error(&CleanupError{Err: closeErr, Cause: opErr})
	assert.ErrorIs(t, err, closeErr)
	assert.ErrorIs(t, err, opErr)
	assert.Equal(t, "channelcall: close failed: close failed (operation failed: operation failed)", err.Error())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "opened", StateOpened.String())
	assert.Equal(t, "faulted", StateFaulted.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.Equal(t, "aborted", DispositionAborted.String())
}
