package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeCheckout creates hosted checkout sessions for card deposits.
type StripeCheckout struct {
	api    *client.API
	logger *slog.Logger
}

// NewStripeCheckout builds the Stripe adapter with a dedicated API client.
func NewStripeCheckout(secretKey string, logger *slog.Logger) (*StripeCheckout, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCheckout{api: api, logger: logger}, nil
}

// CreateCheckout creates a one-off payment session for the deposit amount and
// returns the hosted page URL the customer is redirected to.
func (s *StripeCheckout) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if req.AmountCents < 100 {
		return nil, fmt.Errorf("minimum deposit amount is $1")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.Reference),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(req.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Wallet deposit"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		s.logger.Error("stripe checkout creation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{ProviderID: sess.ID, RedirectURL: sess.URL}, nil
}
