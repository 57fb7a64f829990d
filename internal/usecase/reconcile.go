package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/votemart/votemart/internal/adapter/fulfillment"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
)

const (
	refreshBatchSize = 5
	interBatchDelay  = time.Second
)

// RefreshResult is the outcome of one status check against the vendor.
type RefreshResult struct {
	Updated        bool
	Status         model.OrderStatus
	VotesDelivered int
	Reason         string
	RetryAfter     time.Duration
}

// BulkRefreshResult aggregates a bulk reconciliation pass.
type BulkRefreshResult struct {
	Updated    int
	Skipped    int
	Failed     int
	RetryAfter time.Duration
}

// ReconcileUseCase pulls delivery progress from the vendor and folds it into
// local order state. The per-order cooldown is derived from the persisted
// last_status_check timestamp, which also drives client-facing countdowns.
type ReconcileUseCase struct {
	orders   repository.OrderRepository
	client   fulfillment.Client
	cooldown time.Duration
	logger   *slog.Logger
	now      func() time.Time

	bulkMu   sync.Mutex
	bulkLast map[int64]time.Time
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(orders repository.OrderRepository, client fulfillment.Client, cooldown time.Duration, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		orders:   orders,
		client:   client,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
		bulkLast: make(map[int64]time.Time),
	}
}

// RefreshOne checks a single order against the vendor. Orders without an
// external id, terminal orders and orders inside the cooldown window are
// skipped without error; a vendor failure advances last_status_check only
// and is returned as an error.
func (u *ReconcileUseCase) RefreshOne(ctx context.Context, orderID int64) (RefreshResult, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return RefreshResult{}, err
	}
	return u.refresh(ctx, order)
}

func (u *ReconcileUseCase) refresh(ctx context.Context, order *model.Order) (RefreshResult, error) {
	unchanged := RefreshResult{Status: order.Status, VotesDelivered: order.VotesDelivered}

	if order.Status.Terminal() {
		unchanged.Reason = "order is finalized"
		return unchanged, nil
	}
	if !order.Tracked() {
		unchanged.Reason = "order is not yet tracked by the vendor"
		return unchanged, nil
	}

	now := u.now()
	if order.LastStatusCheck != nil {
		if wait := u.cooldown - now.Sub(*order.LastStatusCheck); wait > 0 {
			unchanged.Reason = "status checked recently"
			unchanged.RetryAfter = wait
			return unchanged, nil
		}
	}

	var (
		report *model.FulfillmentReport
		err    error
	)
	switch order.Kind {
	case model.OrderKindComment:
		report, err = u.client.CommentOrderStatus(ctx, *order.ExternalOrderID)
	default:
		report, err = u.client.UpvoteOrderStatus(ctx, *order.ExternalOrderID)
	}
	if err != nil {
		if touchErr := u.orders.TouchStatusCheck(ctx, order.ID, now); touchErr != nil {
			u.logger.Error("failed to advance status check timestamp",
				slog.Int64("order_id", order.ID),
				slog.Any("error", touchErr),
			)
		}
		return unchanged, err
	}

	status := report.Status.LocalStatus()
	if err := u.orders.RecordCheckResult(ctx, order.ID, status, report.VotesDelivered, now); err != nil {
		return unchanged, err
	}

	votes := report.VotesDelivered
	if votes < order.VotesDelivered {
		votes = order.VotesDelivered
	}
	if votes > order.Quantity {
		votes = order.Quantity
	}

	return RefreshResult{Updated: true, Status: status, VotesDelivered: votes}, nil
}

// RefreshMany reconciles the given orders in fixed batches of five, members
// of a batch in parallel, with a fixed delay between batch starts. One failed
// member never blocks its siblings.
func (u *ReconcileUseCase) RefreshMany(ctx context.Context, orderIDs []int64) (BulkRefreshResult, error) {
	var (
		result BulkRefreshResult
		mu     sync.Mutex
	)

	for start := 0; start < len(orderIDs); start += refreshBatchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(interBatchDelay):
			}
		}

		end := min(start+refreshBatchSize, len(orderIDs))

		g, gctx := errgroup.WithContext(ctx)
		for _, orderID := range orderIDs[start:end] {
			g.Go(func() error {
				refreshed, err := u.RefreshOne(gctx, orderID)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					result.Failed++
				case refreshed.Updated:
					result.Updated++
				default:
					result.Skipped++
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	return result, nil
}

// RefreshUserOrders reconciles every active tracked order of one user. A
// separate per-user cooldown guards the endpoint; within it the call does no
// vendor work and reports when to retry.
func (u *ReconcileUseCase) RefreshUserOrders(ctx context.Context, userID int64) (BulkRefreshResult, error) {
	if wait := u.bulkCooldown(userID); wait > 0 {
		return BulkRefreshResult{RetryAfter: wait}, nil
	}

	orders, err := u.orders.ListByUser(ctx, userID)
	if err != nil {
		return BulkRefreshResult{}, err
	}

	var orderIDs []int64
	for _, order := range orders {
		if order.Tracked() && !order.Status.Terminal() {
			orderIDs = append(orderIDs, order.ID)
		}
	}

	return u.RefreshMany(ctx, orderIDs)
}

// StaleOrders returns tracked non-terminal orders whose last check is at
// least one cooldown old, for the background sweep.
func (u *ReconcileUseCase) StaleOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectStaleTracked(ctx, u.now().Add(-u.cooldown), limit)
}

func (u *ReconcileUseCase) bulkCooldown(userID int64) time.Duration {
	u.bulkMu.Lock()
	defer u.bulkMu.Unlock()

	now := u.now()
	if last, ok := u.bulkLast[userID]; ok {
		if wait := u.cooldown - now.Sub(last); wait > 0 {
			return wait
		}
	}
	u.bulkLast[userID] = now
	return 0
}
