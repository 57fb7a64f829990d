package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/votemart/votemart/internal/config"
)

// Module wires payment providers into the fx graph.
var Module = fx.Provide(
	newCheckoutCreator,
	newCryptoPaymentCreator,
)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCheckoutCreator(p providerParams) (CheckoutCreator, error) {
	return NewStripeCheckout(p.Config.StripeSecretKey, p.Logger)
}

func newCryptoPaymentCreator(p providerParams) (CryptoPaymentCreator, error) {
	return NewNowPaymentsClient(p.Config.NowPaymentsBaseURL, p.Config.NowPaymentsAPIKey, p.Logger)
}
