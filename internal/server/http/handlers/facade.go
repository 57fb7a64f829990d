package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	User(ctx context.Context, userID int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitUpvoteOrder(ctx context.Context, userID int64, input usecase.UpvoteOrderInput) (*usecase.SubmitResult, error)
	SubmitCommentOrder(ctx context.Context, userID int64, input usecase.CommentOrderInput) (*usecase.SubmitResult, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)
	RefreshOrder(ctx context.Context, userID, orderID int64) (usecase.RefreshResult, error)
	RefreshOrders(ctx context.Context, userID int64) (usecase.BulkRefreshResult, error)
}

// BalanceFacade provides wallet read access.
type BalanceFacade interface {
	Balance(ctx context.Context, userID int64) (*model.BalanceSummary, error)
}

// DepositFacade starts and lists wallet top-ups.
type DepositFacade interface {
	BeginCardDeposit(ctx context.Context, userID, amountCents int64) (*usecase.StartedDeposit, error)
	BeginCryptoDeposit(ctx context.Context, userID, amountCents int64, payCurrency string) (*usecase.StartedDeposit, error)
	Deposits(ctx context.Context, userID int64) ([]model.Deposit, error)
}

// AccountFacade exposes the aged account storefront.
type AccountFacade interface {
	AvailableAccounts(ctx context.Context) ([]model.RedditAccount, error)
	PurchaseAccount(ctx context.Context, userID, accountID int64) (*model.RedditAccount, error)
}

// AdminFacade groups operator-only operations.
type AdminFacade interface {
	AdminOrders(ctx context.Context) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	RefundOrder(ctx context.Context, orderID int64) (string, error)
	CreditBalance(ctx context.Context, userID int64, sum decimal.Decimal) error
	CreateAccount(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error)
	AllAccounts(ctx context.Context) ([]model.RedditAccount, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	BalanceFacade
	DepositFacade
	AccountFacade
	AdminFacade
}
