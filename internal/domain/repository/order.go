package repository

import (
	"context"
	"time"

	"github.com/votemart/votemart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Status writes
// are validated against the transition table at this boundary; callers cannot
// move an order into an unreachable state.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)

	// AttachExternalOrder records the vendor's order number and moves the
	// order to SUBMITTED_TO_API. The external id is written at most once;
	// a second attach attempt fails.
	AttachExternalOrder(ctx context.Context, orderID int64, externalID string) error

	// MarkDeferred parks the order in PENDING_API_SUBMISSION after a
	// transport failure, keeping the charge in place.
	MarkDeferred(ctx context.Context, orderID int64, reason string) error

	// MarkSubmissionFailed records a rejected submission whose refund also
	// failed, appending both reasons to the audit message.
	MarkSubmissionFailed(ctx context.Context, orderID int64, reason string) error

	// UpdateStatus performs a transition-checked status write.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// RecordCheckResult atomically writes the reconciled status, the clamped
	// monotonic delivery counter and the check timestamp.
	RecordCheckResult(ctx context.Context, orderID int64, status model.OrderStatus, votesDelivered int, checkedAt time.Time) error

	// TouchStatusCheck advances only last_status_check after a failed
	// reconciliation attempt.
	TouchStatusCheck(ctx context.Context, orderID int64, checkedAt time.Time) error

	// SelectStaleTracked returns non-terminal vendor-tracked orders whose
	// last check is older than the cutoff, oldest first.
	SelectStaleTracked(ctx context.Context, checkedBefore time.Time, limit int) ([]model.Order, error)
}
