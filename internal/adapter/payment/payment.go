package payment

import "context"

// CheckoutRequest describes a wallet top-up to collect by card.
type CheckoutRequest struct {
	Reference   string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
}

// CheckoutSession is the provider's hosted payment page.
type CheckoutSession struct {
	ProviderID  string
	RedirectURL string
}

// CheckoutCreator creates hosted card checkout sessions.
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// CryptoPaymentRequest describes a wallet top-up paid in cryptocurrency.
type CryptoPaymentRequest struct {
	Reference   string
	AmountCents int64
	PayCurrency string
	SuccessURL  string
	CancelURL   string
}

// CryptoPayment is the created crypto invoice.
type CryptoPayment struct {
	ProviderID   string
	RedirectURL  string
	CryptoAmount string
	PayCurrency  string
}

// CryptoPaymentCreator creates crypto payment invoices.
type CryptoPaymentCreator interface {
	CreatePayment(ctx context.Context, req CryptoPaymentRequest) (*CryptoPayment, error)
}
