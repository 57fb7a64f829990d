package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/usecase"
)

type facadeStub struct {
	mu         sync.Mutex
	orders     []model.Order
	fetchErr   error
	reconcile  func(int64) (usecase.RefreshResult, error)
	reconciled []int64
}

func (s *facadeStub) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	orders := s.orders
	s.orders = nil
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *facadeStub) ReconcileOrder(ctx context.Context, orderID int64) (usecase.RefreshResult, error) {
	s.mu.Lock()
	s.reconciled = append(s.reconciled, orderID)
	s.mu.Unlock()
	if s.reconcile != nil {
		return s.reconcile(orderID)
	}
	return usecase.RefreshResult{Updated: true, Status: model.OrderStatusInProgress}, nil
}

func (s *facadeStub) reconciledIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.reconciled...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestSweeperReconcilesStaleOrders(t *testing.T) {
	facade := &facadeStub{
		orders: []model.Order{{ID: 1}, {ID: 2}, {ID: 3}},
	}
	sweeper := NewReconcileSweeper(facade, 10*time.Millisecond, 8, 2, testLogger())

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	waitFor(t, time.Second, func() bool {
		return len(facade.reconciledIDs()) >= 3
	})
}

func TestSweeperSurvivesFailures(t *testing.T) {
	facade := &facadeStub{
		orders: []model.Order{{ID: 1}, {ID: 2}},
		reconcile: func(orderID int64) (usecase.RefreshResult, error) {
			if orderID == 1 {
				return usecase.RefreshResult{}, errors.New("vendor down")
			}
			return usecase.RefreshResult{Updated: true}, nil
		},
	}
	sweeper := NewReconcileSweeper(facade, 10*time.Millisecond, 8, 2, testLogger())

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	waitFor(t, time.Second, func() bool {
		ids := facade.reconciledIDs()
		seen := map[int64]bool{}
		for _, id := range ids {
			seen[id] = true
		}
		return seen[1] && seen[2]
	})
}

func TestSweeperStopIsIdempotentAndWaits(t *testing.T) {
	facade := &facadeStub{}
	sweeper := NewReconcileSweeper(facade, 5*time.Millisecond, 0, 0, testLogger())

	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
}

func TestSweeperFetchErrorDoesNotStopLoop(t *testing.T) {
	facade := &facadeStub{fetchErr: errors.New("db down")}
	sweeper := NewReconcileSweeper(facade, 5*time.Millisecond, 4, 1, testLogger())

	sweeper.Start(context.Background())
	time.Sleep(30 * time.Millisecond)

	facade.mu.Lock()
	facade.fetchErr = nil
	facade.orders = []model.Order{{ID: 9}}
	facade.mu.Unlock()

	waitFor(t, time.Second, func() bool {
		return len(facade.reconciledIDs()) == 1
	})
	sweeper.Stop()
}
