package fulfillment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/votemart/votemart/internal/config"
)

// Module exposes the fulfillment client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.FulfillmentBaseURL, p.Config.FulfillmentAPIKey, p.Logger)
}
