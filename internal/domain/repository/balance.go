package repository

import (
	"context"

	"github.com/votemart/votemart/internal/domain/model"
)

// BalanceRepository reads wallet state. Mutations go through LedgerRepository.
type BalanceRepository interface {
	GetSummary(ctx context.Context, userID int64) (*model.BalanceSummary, error)
}
