package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/votemart/votemart/internal/adapter/payment"
	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
)

const minDepositCents = 100

// DepositUseCase starts wallet top-ups through the payment providers. The
// wallet is credited out-of-band once a provider confirms payment; this
// service only records the attempt and hands back a redirect URL.
type DepositUseCase struct {
	deposits   repository.DepositRepository
	card       payment.CheckoutCreator
	crypto     payment.CryptoPaymentCreator
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

// NewDepositUseCase constructs DepositUseCase.
func NewDepositUseCase(
	deposits repository.DepositRepository,
	card payment.CheckoutCreator,
	crypto payment.CryptoPaymentCreator,
	successURL, cancelURL string,
	logger *slog.Logger,
) *DepositUseCase {
	return &DepositUseCase{
		deposits:   deposits,
		card:       card,
		crypto:     crypto,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// StartedDeposit is a recorded top-up attempt with its provider redirect.
type StartedDeposit struct {
	Deposit     *model.Deposit
	RedirectURL string
}

// BeginCardDeposit creates a Stripe checkout session and records the attempt.
func (u *DepositUseCase) BeginCardDeposit(ctx context.Context, userID, amountCents int64) (*StartedDeposit, error) {
	if amountCents < minDepositCents {
		return nil, domainErrors.ErrInvalidAmount
	}

	reference := uuid.New()
	session, err := u.card.CreateCheckout(ctx, payment.CheckoutRequest{
		Reference:   reference.String(),
		AmountCents: amountCents,
		SuccessURL:  u.successURL,
		CancelURL:   u.cancelURL,
	})
	if err != nil {
		u.logger.Error("stripe checkout failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	return u.record(ctx, &model.Deposit{
		UserID:      userID,
		Reference:   reference,
		Method:      model.DepositMethodCard,
		AmountCents: amountCents,
		Currency:    "usd",
		ProviderID:  session.ProviderID,
		Status:      model.DepositStatusPending,
	}, session.RedirectURL)
}

// BeginCryptoDeposit creates a NowPayments payment and records the attempt.
func (u *DepositUseCase) BeginCryptoDeposit(ctx context.Context, userID, amountCents int64, payCurrency string) (*StartedDeposit, error) {
	if amountCents < minDepositCents {
		return nil, domainErrors.ErrInvalidAmount
	}

	reference := uuid.New()
	created, err := u.crypto.CreatePayment(ctx, payment.CryptoPaymentRequest{
		Reference:   reference.String(),
		AmountCents: amountCents,
		PayCurrency: payCurrency,
		SuccessURL:  u.successURL,
		CancelURL:   u.cancelURL,
	})
	if err != nil {
		u.logger.Error("crypto payment failed", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, err
	}

	return u.record(ctx, &model.Deposit{
		UserID:      userID,
		Reference:   reference,
		Method:      model.DepositMethodCrypto,
		AmountCents: amountCents,
		Currency:    created.PayCurrency,
		ProviderID:  created.ProviderID,
		Status:      model.DepositStatusPending,
	}, created.RedirectURL)
}

func (u *DepositUseCase) record(ctx context.Context, deposit *model.Deposit, redirectURL string) (*StartedDeposit, error) {
	stored, err := u.deposits.Create(ctx, deposit)
	if err != nil {
		// The provider session exists but was not recorded; the reference in
		// the log line is the key for manual reconciliation.
		u.logger.Error("provider session created but deposit not recorded",
			slog.String("reference", deposit.Reference.String()),
			slog.String("provider_id", deposit.ProviderID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &StartedDeposit{Deposit: stored, RedirectURL: redirectURL}, nil
}

// History returns the user's top-up attempts, newest first.
func (u *DepositUseCase) History(ctx context.Context, userID int64) ([]model.Deposit, error) {
	return u.deposits.ListByUser(ctx, userID)
}
