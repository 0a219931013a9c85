package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"solhello/internal/domain"
)

var (
	// ErrConfirmTimeout is returned when a transaction is not confirmed in time.
	ErrConfirmTimeout = errors.New("transaction not confirmed before timeout")
	// ErrTransactionFailed is returned when the cluster reports a transaction error.
	ErrTransactionFailed = errors.New("transaction failed")
)

// ConfirmTransaction waits until signature reaches the client's commitment.
func (c *Client) ConfirmTransaction(ctx context.Context, signature domain.Signature) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		statuses, err := c.GetSignatureStatuses(waitCtx, signature)
		switch {
		case err != nil && waitCtx.Err() == nil:
			return err
		case err == nil && statuses[0] != nil:
			st := statuses[0]
			if st.Err != nil {
				return fmt.Errorf("%w: %s: %s", ErrTransactionFailed, signature, st.Err)
			}
			if c.commitment.Reached(st.ConfirmationStatus) {
				c.log.Debug("transaction confirmed",
					zap.Stringer("signature", signature),
					zap.Uint64("slot", st.Slot),
					zap.Stringer("status", st.ConfirmationStatus),
				)
				return nil
			}
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %s after %s", ErrConfirmTimeout, signature, c.confirmTimeout)
		case <-ticker.C:
		}
	}
}
