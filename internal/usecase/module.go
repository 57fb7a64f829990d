package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/votemart/votemart/internal/adapter/fulfillment"
	"github.com/votemart/votemart/internal/adapter/payment"
	"github.com/votemart/votemart/internal/config"
	"github.com/votemart/votemart/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewBalanceUseCase,
	NewCompensator,
	NewAccountUseCase,
	NewAdminUseCase,
	NewOrderUseCase,
	newReconcileUseCase,
	newDepositUseCase,
)

type reconcileParams struct {
	fx.In

	Orders repository.OrderRepository
	Client fulfillment.Client
	Config *config.Config
	Logger *slog.Logger
}

func newReconcileUseCase(p reconcileParams) *ReconcileUseCase {
	return NewReconcileUseCase(p.Orders, p.Client, p.Config.StatusCooldown, p.Logger)
}

type depositParams struct {
	fx.In

	Deposits repository.DepositRepository
	Card     payment.CheckoutCreator
	Crypto   payment.CryptoPaymentCreator
	Config   *config.Config
	Logger   *slog.Logger
}

func newDepositUseCase(p depositParams) *DepositUseCase {
	return NewDepositUseCase(p.Deposits, p.Card, p.Crypto, p.Config.CheckoutSuccessURL, p.Config.CheckoutCancelURL, p.Logger)
}
