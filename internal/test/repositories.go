package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	GetByIDFn             func(context.Context, int64) (*model.Order, error)
	ListByUserFn          func(context.Context, int64) ([]model.Order, error)
	ListAllFn             func(context.Context) ([]model.Order, error)
	AttachExternalFn      func(context.Context, int64, string) error
	MarkDeferredFn        func(context.Context, int64, string) error
	MarkSubmissionFailFn  func(context.Context, int64, string) error
	UpdateStatusFn        func(context.Context, int64, model.OrderStatus) error
	RecordCheckResultFn   func(context.Context, int64, model.OrderStatus, int, time.Time) error
	TouchStatusCheckFn    func(context.Context, int64, time.Time) error
	SelectStaleTrackedFn  func(context.Context, time.Time, int) ([]model.Order, error)

	Attached      []AttachCall
	Deferred      []ReasonCall
	Failed        []ReasonCall
	StatusUpdates []StatusCall
	CheckResults  []CheckResultCall
	Touched       []int64
}

// AttachCall records an AttachExternalOrder invocation.
type AttachCall struct {
	OrderID    int64
	ExternalID string
}

// ReasonCall records a status write that carries an audit message.
type ReasonCall struct {
	OrderID int64
	Reason  string
}

// StatusCall records an UpdateStatus invocation.
type StatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// CheckResultCall records a RecordCheckResult invocation.
type CheckResultCall struct {
	OrderID        int64
	Status         model.OrderStatus
	VotesDelivered int
	CheckedAt      time.Time
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) AttachExternalOrder(ctx context.Context, orderID int64, externalID string) error {
	s.Attached = append(s.Attached, AttachCall{OrderID: orderID, ExternalID: externalID})
	if s.AttachExternalFn != nil {
		return s.AttachExternalFn(ctx, orderID, externalID)
	}
	return nil
}

func (s *OrderRepositoryStub) MarkDeferred(ctx context.Context, orderID int64, reason string) error {
	s.Deferred = append(s.Deferred, ReasonCall{OrderID: orderID, Reason: reason})
	if s.MarkDeferredFn != nil {
		return s.MarkDeferredFn(ctx, orderID, reason)
	}
	return nil
}

func (s *OrderRepositoryStub) MarkSubmissionFailed(ctx context.Context, orderID int64, reason string) error {
	s.Failed = append(s.Failed, ReasonCall{OrderID: orderID, Reason: reason})
	if s.MarkSubmissionFailFn != nil {
		return s.MarkSubmissionFailFn(ctx, orderID, reason)
	}
	return nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	s.StatusUpdates = append(s.StatusUpdates, StatusCall{OrderID: orderID, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	return nil
}

func (s *OrderRepositoryStub) RecordCheckResult(ctx context.Context, orderID int64, status model.OrderStatus, votesDelivered int, checkedAt time.Time) error {
	s.CheckResults = append(s.CheckResults, CheckResultCall{OrderID: orderID, Status: status, VotesDelivered: votesDelivered, CheckedAt: checkedAt})
	if s.RecordCheckResultFn != nil {
		return s.RecordCheckResultFn(ctx, orderID, status, votesDelivered, checkedAt)
	}
	return nil
}

func (s *OrderRepositoryStub) TouchStatusCheck(ctx context.Context, orderID int64, checkedAt time.Time) error {
	s.Touched = append(s.Touched, orderID)
	if s.TouchStatusCheckFn != nil {
		return s.TouchStatusCheckFn(ctx, orderID, checkedAt)
	}
	return nil
}

func (s *OrderRepositoryStub) SelectStaleTracked(ctx context.Context, checkedBefore time.Time, limit int) ([]model.Order, error) {
	if s.SelectStaleTrackedFn != nil {
		return s.SelectStaleTrackedFn(ctx, checkedBefore, limit)
	}
	return nil, nil
}

// LedgerRepositoryStub customizes ledger transaction outcomes.
type LedgerRepositoryStub struct {
	PlaceUpvoteOrderFn      func(context.Context, int64, string, model.Service, int, float64, decimal.Decimal) (*model.Order, error)
	PlaceCommentOrderFn     func(context.Context, int64, string, string, decimal.Decimal) (*model.Order, error)
	RefundOrderFn           func(context.Context, int64) (string, error)
	AutoRefundFailedOrderFn func(context.Context, int64, string) (string, error)
	CreditFn                func(context.Context, int64, decimal.Decimal) error

	AutoRefunds []ReasonCall
	Refunded    []int64
	Credits     []CreditCall
}

// CreditCall records a Credit invocation.
type CreditCall struct {
	UserID int64
	Sum    decimal.Decimal
}

func (s *LedgerRepositoryStub) PlaceUpvoteOrder(ctx context.Context, userID int64, link string, service model.Service, quantity int, speed float64, amount decimal.Decimal) (*model.Order, error) {
	if s.PlaceUpvoteOrderFn != nil {
		return s.PlaceUpvoteOrderFn(ctx, userID, link, service, quantity, speed, amount)
	}
	return &model.Order{
		ID:       1,
		UserID:   userID,
		Kind:     model.OrderKindUpvote,
		Link:     link,
		Service:  service,
		Quantity: quantity,
		Speed:    speed,
		Amount:   amount,
		Status:   model.OrderStatusPending,
	}, nil
}

func (s *LedgerRepositoryStub) PlaceCommentOrder(ctx context.Context, userID int64, link, content string, amount decimal.Decimal) (*model.Order, error) {
	if s.PlaceCommentOrderFn != nil {
		return s.PlaceCommentOrderFn(ctx, userID, link, content, amount)
	}
	return &model.Order{
		ID:       1,
		UserID:   userID,
		Kind:     model.OrderKindComment,
		Link:     link,
		Content:  content,
		Quantity: 1,
		Amount:   amount,
		Status:   model.OrderStatusPending,
	}, nil
}

func (s *LedgerRepositoryStub) RefundOrder(ctx context.Context, orderID int64) (string, error) {
	s.Refunded = append(s.Refunded, orderID)
	if s.RefundOrderFn != nil {
		return s.RefundOrderFn(ctx, orderID)
	}
	return "refunded", nil
}

func (s *LedgerRepositoryStub) AutoRefundFailedOrder(ctx context.Context, orderID int64, reason string) (string, error) {
	s.AutoRefunds = append(s.AutoRefunds, ReasonCall{OrderID: orderID, Reason: reason})
	if s.AutoRefundFailedOrderFn != nil {
		return s.AutoRefundFailedOrderFn(ctx, orderID, reason)
	}
	return "refunded", nil
}

func (s *LedgerRepositoryStub) Credit(ctx context.Context, userID int64, sum decimal.Decimal) error {
	s.Credits = append(s.Credits, CreditCall{UserID: userID, Sum: sum})
	if s.CreditFn != nil {
		return s.CreditFn(ctx, userID, sum)
	}
	return nil
}

// BalanceRepositoryStub returns configured wallet summaries.
type BalanceRepositoryStub struct {
	Summary *model.BalanceSummary
	Err     error
}

func (s *BalanceRepositoryStub) GetSummary(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Summary != nil {
		return s.Summary, nil
	}
	return &model.BalanceSummary{Current: decimal.Zero, Spent: decimal.Zero}, nil
}

// DepositRepositoryStub records created deposits in-memory.
type DepositRepositoryStub struct {
	CreateFn func(context.Context, *model.Deposit) (*model.Deposit, error)
	Deposits []model.Deposit
	Err      error
}

func (s *DepositRepositoryStub) Create(ctx context.Context, deposit *model.Deposit) (*model.Deposit, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, deposit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *deposit
	stored.ID = int64(len(s.Deposits) + 1)
	s.Deposits = append(s.Deposits, stored)
	return &stored, nil
}

func (s *DepositRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Deposit, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Deposit
	for _, d := range s.Deposits {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

// AccountRepositoryStub customizes aged account inventory behaviour.
type AccountRepositoryStub struct {
	CreateFn        func(context.Context, *model.RedditAccount) (*model.RedditAccount, error)
	ListAvailableFn func(context.Context) ([]model.RedditAccount, error)
	ListAllFn       func(context.Context) ([]model.RedditAccount, error)
	PurchaseFn      func(context.Context, int64, int64) (*model.RedditAccount, error)

	Purchases []PurchaseCall
}

// PurchaseCall records a Purchase invocation.
type PurchaseCall struct {
	AccountID int64
	BuyerID   int64
}

func (s *AccountRepositoryStub) Create(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, account)
	}
	stored := *account
	stored.ID = 1
	stored.Status = model.AccountStatusAvailable
	return &stored, nil
}

func (s *AccountRepositoryStub) ListAvailable(ctx context.Context) ([]model.RedditAccount, error) {
	if s.ListAvailableFn != nil {
		return s.ListAvailableFn(ctx)
	}
	return nil, nil
}

func (s *AccountRepositoryStub) ListAll(ctx context.Context) ([]model.RedditAccount, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return nil, nil
}

func (s *AccountRepositoryStub) Purchase(ctx context.Context, accountID, buyerID int64) (*model.RedditAccount, error) {
	s.Purchases = append(s.Purchases, PurchaseCall{AccountID: accountID, BuyerID: buyerID})
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, accountID, buyerID)
	}
	return nil, domainErrors.ErrNotFound
}
