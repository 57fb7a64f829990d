package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/votemart/votemart/internal/adapter/payment"
	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/test"
)

func newDepositUC(deposits *test.DepositRepositoryStub, card *test.CheckoutCreatorStub, crypto *test.CryptoPaymentCreatorStub) *DepositUseCase {
	return NewDepositUseCase(deposits, card, crypto, "https://shop.example/ok", "https://shop.example/no", testLogger())
}

func TestBeginCardDeposit(t *testing.T) {
	deposits := &test.DepositRepositoryStub{}
	card := &test.CheckoutCreatorStub{}
	uc := newDepositUC(deposits, card, &test.CryptoPaymentCreatorStub{})

	started, err := uc.BeginCardDeposit(context.Background(), 3, 2500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started.RedirectURL == "" {
		t.Error("expected redirect URL")
	}
	if started.Deposit.Method != model.DepositMethodCard || started.Deposit.Status != model.DepositStatusPending {
		t.Errorf("unexpected deposit: %+v", started.Deposit)
	}
	if len(card.Requests) != 1 || card.Requests[0].AmountCents != 2500 {
		t.Errorf("unexpected provider request: %+v", card.Requests)
	}
	if len(deposits.Deposits) != 1 {
		t.Errorf("expected recorded deposit, got %d", len(deposits.Deposits))
	}
}

func TestBeginCardDepositBelowMinimum(t *testing.T) {
	uc := newDepositUC(&test.DepositRepositoryStub{}, &test.CheckoutCreatorStub{}, &test.CryptoPaymentCreatorStub{})

	_, err := uc.BeginCardDeposit(context.Background(), 3, 50)
	if !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestBeginCryptoDeposit(t *testing.T) {
	deposits := &test.DepositRepositoryStub{}
	crypto := &test.CryptoPaymentCreatorStub{}
	uc := newDepositUC(deposits, &test.CheckoutCreatorStub{}, crypto)

	started, err := uc.BeginCryptoDeposit(context.Background(), 3, 2500, "USDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if started.Deposit.Method != model.DepositMethodCrypto || started.Deposit.Currency != "USDT" {
		t.Errorf("unexpected deposit: %+v", started.Deposit)
	}
	if len(crypto.Requests) != 1 || crypto.Requests[0].PayCurrency != "USDT" {
		t.Errorf("unexpected provider request: %+v", crypto.Requests)
	}
}

func TestBeginCryptoDepositProviderFailure(t *testing.T) {
	deposits := &test.DepositRepositoryStub{}
	crypto := &test.CryptoPaymentCreatorStub{
		CreateFn: func(context.Context, payment.CryptoPaymentRequest) (*payment.CryptoPayment, error) {
			return nil, errors.New("invalid api key")
		},
	}
	uc := newDepositUC(deposits, &test.CheckoutCreatorStub{}, crypto)

	if _, err := uc.BeginCryptoDeposit(context.Background(), 3, 2500, "USDT"); err == nil {
		t.Fatal("expected error")
	}
	if len(deposits.Deposits) != 0 {
		t.Error("failed provider call must not record a deposit")
	}
}
