package di

import (
	"go.uber.org/fx"

	"github.com/votemart/votemart/internal/adapter/fulfillment"
	"github.com/votemart/votemart/internal/adapter/payment"
	"github.com/votemart/votemart/internal/app"
	"github.com/votemart/votemart/internal/config"
	"github.com/votemart/votemart/internal/logger"
	"github.com/votemart/votemart/internal/pkg/auth"
	"github.com/votemart/votemart/internal/server/http/handlers"
	"github.com/votemart/votemart/internal/server/http/router"
	"github.com/votemart/votemart/internal/storage/postgres"
	"github.com/votemart/votemart/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fulfillment.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
