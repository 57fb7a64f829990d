package facades

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/usecase"
)

// AuthFacadeStub implements the handlers auth facade via function overrides.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, login, password string) (string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (string, error)
	ParseTokenFn   func(token string) (int64, error)
	UserFn         func(ctx context.Context, userID int64) (*model.User, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return 1, nil
}

func (s AuthFacadeStub) User(ctx context.Context, userID int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, userID)
	}
	return &model.User{ID: userID, Login: "user"}, nil
}

// SampleOrder returns a tracked upvote order for handler tests.
func SampleOrder() *model.Order {
	ext := "88211"
	checked := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &model.Order{
		ID:              1,
		UserID:          1,
		Kind:            model.OrderKindUpvote,
		Link:            "https://www.reddit.com/r/golang/comments/abc123/post/",
		Service:         model.ServicePostUpvote,
		Quantity:        100,
		Speed:           3,
		Amount:          decimal.RequireFromString("12.50"),
		Status:          model.OrderStatusInProgress,
		ExternalOrderID: &ext,
		VotesDelivered:  40,
		LastStatusCheck: &checked,
		CreatedAt:       time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
	}
}

// OrderFacadeStub implements the handlers order facade via function overrides.
type OrderFacadeStub struct {
	SubmitUpvoteOrderFn  func(ctx context.Context, userID int64, input usecase.UpvoteOrderInput) (*usecase.SubmitResult, error)
	SubmitCommentOrderFn func(ctx context.Context, userID int64, input usecase.CommentOrderInput) (*usecase.SubmitResult, error)
	OrdersFn             func(ctx context.Context, userID int64) ([]model.Order, error)
	CancelOrderFn        func(ctx context.Context, userID, orderID int64) (*model.Order, error)
	RefreshOrderFn       func(ctx context.Context, userID, orderID int64) (usecase.RefreshResult, error)
	RefreshOrdersFn      func(ctx context.Context, userID int64) (usecase.BulkRefreshResult, error)
}

func (s OrderFacadeStub) SubmitUpvoteOrder(ctx context.Context, userID int64, input usecase.UpvoteOrderInput) (*usecase.SubmitResult, error) {
	if s.SubmitUpvoteOrderFn != nil {
		return s.SubmitUpvoteOrderFn(ctx, userID, input)
	}
	return &usecase.SubmitResult{Order: SampleOrder(), Message: "Order submitted"}, nil
}

func (s OrderFacadeStub) SubmitCommentOrder(ctx context.Context, userID int64, input usecase.CommentOrderInput) (*usecase.SubmitResult, error) {
	if s.SubmitCommentOrderFn != nil {
		return s.SubmitCommentOrderFn(ctx, userID, input)
	}
	order := SampleOrder()
	order.Kind = model.OrderKindComment
	order.Content = "nice post"
	return &usecase.SubmitResult{Order: order, Message: "Order submitted"}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, userID, orderID)
	}
	order := SampleOrder()
	order.Status = model.OrderStatusCancelled
	return order, nil
}

func (s OrderFacadeStub) RefreshOrder(ctx context.Context, userID, orderID int64) (usecase.RefreshResult, error) {
	if s.RefreshOrderFn != nil {
		return s.RefreshOrderFn(ctx, userID, orderID)
	}
	return usecase.RefreshResult{Updated: true, Status: model.OrderStatusInProgress, VotesDelivered: 40}, nil
}

func (s OrderFacadeStub) RefreshOrders(ctx context.Context, userID int64) (usecase.BulkRefreshResult, error) {
	if s.RefreshOrdersFn != nil {
		return s.RefreshOrdersFn(ctx, userID)
	}
	return usecase.BulkRefreshResult{Updated: 1}, nil
}

// BalanceFacadeStub returns canned wallet summaries.
type BalanceFacadeStub struct {
	BalanceFn func(ctx context.Context, userID int64) (*model.BalanceSummary, error)
}

func (s BalanceFacadeStub) Balance(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, userID)
	}
	return &model.BalanceSummary{
		Current: decimal.RequireFromString("25.00"),
		Spent:   decimal.RequireFromString("12.50"),
	}, nil
}

// DepositFacadeStub implements the handlers deposit facade via overrides.
type DepositFacadeStub struct {
	BeginCardDepositFn   func(ctx context.Context, userID, amountCents int64) (*usecase.StartedDeposit, error)
	BeginCryptoDepositFn func(ctx context.Context, userID, amountCents int64, payCurrency string) (*usecase.StartedDeposit, error)
	DepositsFn           func(ctx context.Context, userID int64) ([]model.Deposit, error)
}

func (s DepositFacadeStub) BeginCardDeposit(ctx context.Context, userID, amountCents int64) (*usecase.StartedDeposit, error) {
	if s.BeginCardDepositFn != nil {
		return s.BeginCardDepositFn(ctx, userID, amountCents)
	}
	return startedDeposit(userID, amountCents, model.DepositMethodCard, "usd"), nil
}

func (s DepositFacadeStub) BeginCryptoDeposit(ctx context.Context, userID, amountCents int64, payCurrency string) (*usecase.StartedDeposit, error) {
	if s.BeginCryptoDepositFn != nil {
		return s.BeginCryptoDepositFn(ctx, userID, amountCents, payCurrency)
	}
	return startedDeposit(userID, amountCents, model.DepositMethodCrypto, payCurrency), nil
}

func (s DepositFacadeStub) Deposits(ctx context.Context, userID int64) ([]model.Deposit, error) {
	if s.DepositsFn != nil {
		return s.DepositsFn(ctx, userID)
	}
	return nil, nil
}

func startedDeposit(userID, amountCents int64, method model.DepositMethod, currency string) *usecase.StartedDeposit {
	return &usecase.StartedDeposit{
		Deposit: &model.Deposit{
			UserID:      userID,
			Method:      method,
			AmountCents: amountCents,
			Currency:    currency,
			Status:      model.DepositStatusPending,
		},
		RedirectURL: "https://pay.example/session",
	}
}

// SampleAccount returns an available aged account listing.
func SampleAccount() *model.RedditAccount {
	return &model.RedditAccount{
		ID:           7,
		Username:     "veteran_user",
		PostKarma:    15000,
		CommentKarma: 4200,
		AgeYears:     6,
		ProfileURL:   "https://www.reddit.com/user/veteran_user/",
		Price:        decimal.RequireFromString("45.00"),
		Status:       model.AccountStatusAvailable,
	}
}

// AccountFacadeStub implements the storefront account facade via overrides.
type AccountFacadeStub struct {
	AvailableAccountsFn func(ctx context.Context) ([]model.RedditAccount, error)
	PurchaseAccountFn   func(ctx context.Context, userID, accountID int64) (*model.RedditAccount, error)
}

func (s AccountFacadeStub) AvailableAccounts(ctx context.Context) ([]model.RedditAccount, error) {
	if s.AvailableAccountsFn != nil {
		return s.AvailableAccountsFn(ctx)
	}
	return []model.RedditAccount{*SampleAccount()}, nil
}

func (s AccountFacadeStub) PurchaseAccount(ctx context.Context, userID, accountID int64) (*model.RedditAccount, error) {
	if s.PurchaseAccountFn != nil {
		return s.PurchaseAccountFn(ctx, userID, accountID)
	}
	if accountID != SampleAccount().ID {
		return nil, domainErrors.ErrNotFound
	}
	account := SampleAccount()
	account.Status = model.AccountStatusSold
	return account, nil
}

// AdminFacadeStub implements operator operations via overrides.
type AdminFacadeStub struct {
	AdminOrdersFn    func(ctx context.Context) ([]model.Order, error)
	SetOrderStatusFn func(ctx context.Context, orderID int64, status model.OrderStatus) error
	RefundOrderFn    func(ctx context.Context, orderID int64) (string, error)
	CreditBalanceFn  func(ctx context.Context, userID int64, sum decimal.Decimal) error
	CreateAccountFn  func(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error)
	AllAccountsFn    func(ctx context.Context) ([]model.RedditAccount, error)
}

func (s AdminFacadeStub) AdminOrders(ctx context.Context) ([]model.Order, error) {
	if s.AdminOrdersFn != nil {
		return s.AdminOrdersFn(ctx)
	}
	return []model.Order{*SampleOrder()}, nil
}

func (s AdminFacadeStub) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.SetOrderStatusFn != nil {
		return s.SetOrderStatusFn(ctx, orderID, status)
	}
	return nil
}

func (s AdminFacadeStub) RefundOrder(ctx context.Context, orderID int64) (string, error) {
	if s.RefundOrderFn != nil {
		return s.RefundOrderFn(ctx, orderID)
	}
	return "Order #1 cancelled, $7.50 returned to wallet", nil
}

func (s AdminFacadeStub) CreditBalance(ctx context.Context, userID int64, sum decimal.Decimal) error {
	if s.CreditBalanceFn != nil {
		return s.CreditBalanceFn(ctx, userID, sum)
	}
	return nil
}

func (s AdminFacadeStub) CreateAccount(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error) {
	if s.CreateAccountFn != nil {
		return s.CreateAccountFn(ctx, account)
	}
	created := *account
	created.ID = 7
	created.Status = model.AccountStatusAvailable
	return &created, nil
}

func (s AdminFacadeStub) AllAccounts(ctx context.Context) ([]model.RedditAccount, error) {
	if s.AllAccountsFn != nil {
		return s.AllAccountsFn(ctx)
	}
	return []model.RedditAccount{*SampleAccount()}, nil
}

// SweeperFacadeStub implements the background sweeper facade contract.
type SweeperFacadeStub struct {
	OrdersForReconciliationFn func(ctx context.Context, limit int) ([]model.Order, error)
	ReconcileOrderFn          func(ctx context.Context, orderID int64) (usecase.RefreshResult, error)
}

func (s *SweeperFacadeStub) OrdersForReconciliation(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersForReconciliationFn != nil {
		return s.OrdersForReconciliationFn(ctx, limit)
	}
	return nil, nil
}

func (s *SweeperFacadeStub) ReconcileOrder(ctx context.Context, orderID int64) (usecase.RefreshResult, error) {
	if s.ReconcileOrderFn != nil {
		return s.ReconcileOrderFn(ctx, orderID)
	}
	return usecase.RefreshResult{}, nil
}

// StorefrontFacadeStub aggregates all facade stubs for router level tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	BalanceFacadeStub
	DepositFacadeStub
	AccountFacadeStub
	AdminFacadeStub
}
