package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/test"
)

func TestCompensateRefunds(t *testing.T) {
	ledger := &test.LedgerRepositoryStub{}
	orders := &test.OrderRepositoryStub{}
	c := NewCompensator(ledger, orders, testLogger())

	err := c.Compensate(context.Background(), 7, "vendor rejected link")
	if !errors.Is(err, domainErrors.ErrOrderRefunded) {
		t.Fatalf("expected ErrOrderRefunded, got %v", err)
	}
	if len(ledger.AutoRefunds) != 1 || ledger.AutoRefunds[0].Reason != "vendor rejected link" {
		t.Errorf("unexpected refunds: %+v", ledger.AutoRefunds)
	}
	if len(orders.Failed) != 0 {
		t.Error("successful refund must not park the order")
	}
}

func TestCompensateRefundFailureParksOrder(t *testing.T) {
	ledger := &test.LedgerRepositoryStub{
		AutoRefundFailedOrderFn: func(context.Context, int64, string) (string, error) {
			return "", errors.New("db down")
		},
	}
	orders := &test.OrderRepositoryStub{}
	c := NewCompensator(ledger, orders, testLogger())

	err := c.Compensate(context.Background(), 7, "vendor rejected link")
	if !errors.Is(err, domainErrors.ErrCompensationFailed) {
		t.Fatalf("expected ErrCompensationFailed, got %v", err)
	}
	if len(orders.Failed) != 1 || orders.Failed[0].OrderID != 7 {
		t.Fatalf("expected order parked, got %+v", orders.Failed)
	}
}
