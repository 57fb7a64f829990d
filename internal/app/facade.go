package app

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind one surface consumed by
// the HTTP handlers, the auth middleware and the background sweeper.
type StorefrontFacade struct {
	auth       *usecase.AuthUseCase
	orders     *usecase.OrderUseCase
	reconciler *usecase.ReconcileUseCase
	balance    *usecase.BalanceUseCase
	deposits   *usecase.DepositUseCase
	accounts   *usecase.AccountUseCase
	admin      *usecase.AdminUseCase
	tokens     TokenParser
}

// TokenParser resolves auth tokens into user identifiers.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// NewStorefrontFacade constructs StorefrontFacade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	reconciler *usecase.ReconcileUseCase,
	balance *usecase.BalanceUseCase,
	deposits *usecase.DepositUseCase,
	accounts *usecase.AccountUseCase,
	admin *usecase.AdminUseCase,
	tokens TokenParser,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:       auth,
		orders:     orders,
		reconciler: reconciler,
		balance:    balance,
		deposits:   deposits,
		accounts:   accounts,
		admin:      admin,
		tokens:     tokens,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.tokens.ParseToken(token)
}

func (f *StorefrontFacade) User(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetUser(ctx, userID)
}

func (f *StorefrontFacade) SubmitUpvoteOrder(ctx context.Context, userID int64, input usecase.UpvoteOrderInput) (*usecase.SubmitResult, error) {
	return f.orders.SubmitUpvoteOrder(ctx, userID, input)
}

func (f *StorefrontFacade) SubmitCommentOrder(ctx context.Context, userID int64, input usecase.CommentOrderInput) (*usecase.SubmitResult, error) {
	return f.orders.SubmitCommentOrder(ctx, userID, input)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.CancelOrder(ctx, userID, orderID)
}

// RefreshOrder reconciles one order on behalf of its owner.
func (f *StorefrontFacade) RefreshOrder(ctx context.Context, userID, orderID int64) (usecase.RefreshResult, error) {
	if _, err := f.orders.GetForUser(ctx, userID, orderID); err != nil {
		return usecase.RefreshResult{}, err
	}
	return f.reconciler.RefreshOne(ctx, orderID)
}

// RefreshOrders reconciles all of the user's active orders, subject to the
// per-user bulk cooldown.
func (f *StorefrontFacade) RefreshOrders(ctx context.Context, userID int64) (usecase.BulkRefreshResult, error) {
	return f.reconciler.RefreshUserOrders(ctx, userID)
}

func (f *StorefrontFacade) Balance(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	summary, err := f.balance.Summary(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &model.BalanceSummary{}, nil
		}
		return nil, err
	}
	return summary, nil
}

func (f *StorefrontFacade) BeginCardDeposit(ctx context.Context, userID, amountCents int64) (*usecase.StartedDeposit, error) {
	return f.deposits.BeginCardDeposit(ctx, userID, amountCents)
}

func (f *StorefrontFacade) BeginCryptoDeposit(ctx context.Context, userID, amountCents int64, payCurrency string) (*usecase.StartedDeposit, error) {
	return f.deposits.BeginCryptoDeposit(ctx, userID, amountCents, payCurrency)
}

func (f *StorefrontFacade) Deposits(ctx context.Context, userID int64) ([]model.Deposit, error) {
	return f.deposits.History(ctx, userID)
}

func (f *StorefrontFacade) AvailableAccounts(ctx context.Context) ([]model.RedditAccount, error) {
	return f.accounts.ListAvailable(ctx)
}

func (f *StorefrontFacade) PurchaseAccount(ctx context.Context, userID, accountID int64) (*model.RedditAccount, error) {
	return f.accounts.Purchase(ctx, userID, accountID)
}

func (f *StorefrontFacade) AdminOrders(ctx context.Context) ([]model.Order, error) {
	return f.admin.ListOrders(ctx)
}

func (f *StorefrontFacade) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.admin.SetOrderStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) RefundOrder(ctx context.Context, orderID int64) (string, error) {
	return f.admin.RefundOrder(ctx, orderID)
}

func (f *StorefrontFacade) CreditBalance(ctx context.Context, userID int64, sum decimal.Decimal) error {
	return f.admin.CreditBalance(ctx, userID, sum)
}

func (f *StorefrontFacade) CreateAccount(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error) {
	return f.admin.CreateAccount(ctx, account)
}

func (f *StorefrontFacade) AllAccounts(ctx context.Context) ([]model.RedditAccount, error) {
	return f.admin.ListAccounts(ctx)
}

// OrdersForReconciliation returns stale tracked orders for the sweeper.
func (f *StorefrontFacade) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	return f.reconciler.StaleOrders(ctx, limit)
}

// ReconcileOrder runs one background status check.
func (f *StorefrontFacade) ReconcileOrder(ctx context.Context, orderID int64) (usecase.RefreshResult, error) {
	return f.reconciler.RefreshOne(ctx, orderID)
}
