package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/repository"
)

// Compensator reverses the charge of an order whose vendor submission was
// rejected. It is the only code path that refunds automatically.
type Compensator struct {
	ledger repository.LedgerRepository
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewCompensator constructs Compensator.
func NewCompensator(ledger repository.LedgerRepository, orders repository.OrderRepository, logger *slog.Logger) *Compensator {
	return &Compensator{ledger: ledger, orders: orders, logger: logger}
}

// Compensate refunds and cancels a rejected order. When the refund itself
// fails the order is parked in API_SUBMISSION_FAILED with both failures
// recorded, and the caller gets ErrCompensationFailed. Never retried.
func (c *Compensator) Compensate(ctx context.Context, orderID int64, cause string) error {
	confirmation, err := c.ledger.AutoRefundFailedOrder(ctx, orderID, cause)
	if err == nil {
		c.logger.Info("order refunded after rejected submission",
			slog.Int64("order_id", orderID),
			slog.String("cause", cause),
			slog.String("confirmation", confirmation),
		)
		return domainErrors.ErrOrderRefunded
	}

	c.logger.Error("automatic refund failed, order needs manual reconciliation",
		slog.Int64("order_id", orderID),
		slog.String("cause", cause),
		slog.Any("error", err),
	)

	reason := fmt.Sprintf("submission rejected (%s); automatic refund failed (%v)", cause, err)
	if markErr := c.orders.MarkSubmissionFailed(ctx, orderID, reason); markErr != nil {
		c.logger.Error("failed to record compensation failure",
			slog.Int64("order_id", orderID),
			slog.Any("error", markErr),
		)
	}

	return domainErrors.ErrCompensationFailed
}
