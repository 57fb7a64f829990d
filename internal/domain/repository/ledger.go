package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/votemart/votemart/internal/domain/model"
)

// LedgerRepository is the balance and order-creation authority. Every method
// runs as one transaction: the debit or credit and the order mutation either
// both happen or neither does.
type LedgerRepository interface {
	// PlaceUpvoteOrder validates funds, debits amount and creates a PENDING
	// vote order. Insufficient funds fail with no side effects.
	PlaceUpvoteOrder(ctx context.Context, userID int64, link string, service model.Service, quantity int, speed float64, amount decimal.Decimal) (*model.Order, error)

	// PlaceCommentOrder is the comment-order variant (quantity is always 1).
	PlaceCommentOrder(ctx context.Context, userID int64, link, content string, amount decimal.Decimal) (*model.Order, error)

	// RefundOrder credits the undelivered portion back to the owner and
	// cancels the order. Used by the admin refund flow. Returns a
	// confirmation message.
	RefundOrder(ctx context.Context, orderID int64) (string, error)

	// AutoRefundFailedOrder fully refunds an order whose vendor submission
	// was rejected before any delivery, cancels it and records the failure
	// reason for audit. Returns a confirmation message.
	AutoRefundFailedOrder(ctx context.Context, orderID int64, reason string) (string, error)

	// Credit adds funds to a user's wallet (deposit reconciliation).
	Credit(ctx context.Context, userID int64, sum decimal.Decimal) error
}
