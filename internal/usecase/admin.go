package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
)

// AdminUseCase groups operator-only actions: order oversight, refunds,
// balance credits and the reddit account inventory.
type AdminUseCase struct {
	orders   repository.OrderRepository
	ledger   repository.LedgerRepository
	accounts repository.AccountRepository
	logger   *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(
	orders repository.OrderRepository,
	ledger repository.LedgerRepository,
	accounts repository.AccountRepository,
	logger *slog.Logger,
) *AdminUseCase {
	return &AdminUseCase{orders: orders, ledger: ledger, accounts: accounts, logger: logger}
}

// ListOrders returns every order in the system, newest first.
func (u *AdminUseCase) ListOrders(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// SetOrderStatus forces an order status, still subject to the transition
// table.
func (u *AdminUseCase) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Known() {
		return domainErrors.ErrInvalidTransition
	}
	if err := u.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	u.logger.Info("order status overridden",
		slog.Int64("order_id", orderID),
		slog.String("status", string(status)),
	)
	return nil
}

// RefundOrder returns the undelivered portion of an order to its owner and
// cancels it.
func (u *AdminUseCase) RefundOrder(ctx context.Context, orderID int64) (string, error) {
	confirmation, err := u.ledger.RefundOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	u.logger.Info("order refunded by operator",
		slog.Int64("order_id", orderID),
		slog.String("confirmation", confirmation),
	)
	return confirmation, nil
}

// CreditBalance adds funds to a wallet, the escape hatch for reconciling
// confirmed external payments.
func (u *AdminUseCase) CreditBalance(ctx context.Context, userID int64, sum decimal.Decimal) error {
	if err := u.ledger.Credit(ctx, userID, sum); err != nil {
		return err
	}
	u.logger.Info("balance credited",
		slog.Int64("user_id", userID),
		slog.String("amount", sum.StringFixed(2)),
	)
	return nil
}

// CreateAccount adds an aged reddit account to the inventory.
func (u *AdminUseCase) CreateAccount(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error) {
	if account.Price.LessThanOrEqual(decimal.Zero) {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.accounts.Create(ctx, account)
}

// ListAccounts returns the whole inventory including sold entries.
func (u *AdminUseCase) ListAccounts(ctx context.Context) ([]model.RedditAccount, error) {
	return u.accounts.ListAll(ctx)
}
