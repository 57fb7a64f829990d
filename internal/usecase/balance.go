package usecase

import (
	"context"

	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
)

// BalanceUseCase reads wallet state.
type BalanceUseCase struct {
	balances repository.BalanceRepository
}

// NewBalanceUseCase constructs BalanceUseCase.
func NewBalanceUseCase(balances repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{balances: balances}
}

// Summary returns current and lifetime-spent amounts for a user.
func (u *BalanceUseCase) Summary(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	return u.balances.GetSummary(ctx, userID)
}
