package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/usecase"
)

// StorefrontFacade exposes the subset of application functionality required
// by the sweeper.
type StorefrontFacade interface {
	OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error)
	ReconcileOrder(ctx context.Context, orderID int64) (usecase.RefreshResult, error)
}

// ReconcileSweeper periodically selects tracked orders with stale status and
// feeds them through a bounded worker pool. Deferred submissions are never
// picked up; those stay with the operator.
type ReconcileSweeper struct {
	facade        StorefrontFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconcileSweeper constructs the sweep worker pool.
func NewReconcileSweeper(facade StorefrontFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *ReconcileSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ReconcileSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.Order, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *ReconcileSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *ReconcileSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ReconcileSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *ReconcileSweeper) fetchAndDispatch(ctx context.Context) {
	orders, err := s.facade.OrdersForReconciliation(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch orders for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- order:
		}
	}
}

func (s *ReconcileSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleOrder(ctx, order)
		}
	}
}

func (s *ReconcileSweeper) handleOrder(ctx context.Context, order model.Order) {
	result, err := s.facade.ReconcileOrder(ctx, order.ID)
	if err != nil {
		// One failed check is terminal for this sweep; the order comes back
		// once its advanced last_status_check goes stale again.
		s.logger.Warn("status check failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	if result.Updated {
		s.logger.Info("order status reconciled",
			slog.Int64("order_id", order.ID),
			slog.String("status", string(result.Status)),
			slog.Int("votes_delivered", result.VotesDelivered),
		)
	}
}
