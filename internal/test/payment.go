package test

import (
	"context"

	"github.com/votemart/votemart/internal/adapter/payment"
)

// CheckoutCreatorStub simulates the card payment provider.
type CheckoutCreatorStub struct {
	CreateFn func(context.Context, payment.CheckoutRequest) (*payment.CheckoutSession, error)
	Requests []payment.CheckoutRequest
}

var _ payment.CheckoutCreator = (*CheckoutCreatorStub)(nil)

func (s *CheckoutCreatorStub) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &payment.CheckoutSession{ProviderID: "cs_test", RedirectURL: "https://pay.example/cs_test"}, nil
}

// CryptoPaymentCreatorStub simulates the crypto payment provider.
type CryptoPaymentCreatorStub struct {
	CreateFn func(context.Context, payment.CryptoPaymentRequest) (*payment.CryptoPayment, error)
	Requests []payment.CryptoPaymentRequest
}

var _ payment.CryptoPaymentCreator = (*CryptoPaymentCreatorStub)(nil)

func (s *CryptoPaymentCreatorStub) CreatePayment(ctx context.Context, req payment.CryptoPaymentRequest) (*payment.CryptoPayment, error) {
	s.Requests = append(s.Requests, req)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &payment.CryptoPayment{ProviderID: "np_test", RedirectURL: "https://crypto.example/np_test", PayCurrency: "USDT"}, nil
}
