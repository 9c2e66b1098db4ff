package channelcall

import (
	"context"

	"go.uber.org/zap"
)

// release closes ch when it is healthy and aborts it otherwise. opErr is the
// failure of the operations, if any. An unexpected close failure wins over
// opErr; both stay reachable through CleanupError.
func (h *Handler[C]) release(ctx context.Context, ch C, address string, opErr error, report *Report) error {
	state := ch.State()
	report.State = state
	logger := h.logger.With(zap.String("address", address), zap.Stringer("state", state))

	if state == StateFaulted {
		logger.Debug("channelcall: aborting faulted channel")
		ch.Abort()
		report.Disposition = DispositionAborted
		return opErr
	}

	closeErr := h.close(ctx, ch, report)
	switch {
	case closeErr == nil:
		report.Disposition = DispositionClosed
		return opErr
	case isExpectedCloseFailure(closeErr):
		logger.Warn("channelcall: close failed, channel aborted", zap.Error(closeErr))
		ch.Abort()
		report.Disposition = DispositionAborted
		report.Suppressed = closeErr
		return opErr
	default:
		logger.Error("channelcall: unexpected close failure, channel aborted", zap.Error(closeErr))
		ch.Abort()
		report.Disposition = DispositionAborted
		if opErr == nil {
			return closeErr
		}
		logger.Error("channelcall: operation failure superseded by close failure", zap.NamedError("cause", opErr))
		return &CleanupError{Err: closeErr, Cause: opErr}
	}
}

// close attempts a graceful close detached from the caller's cancellation.
// A panic in Close aborts the channel before it propagates.
func (h *Handler[C]) close(ctx context.Context, ch C, report *Report) error {
	ctx = context.WithoutCancel(ctx)
	if h.closeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.closeTimeout)
		defer cancel()
	}
	returned := false
	defer func() {
		if !returned {
			ch.Abort()
			report.Disposition = DispositionAborted
		}
	}()
	err := ch.Close(ctx)
	returned = true
	return err
}
