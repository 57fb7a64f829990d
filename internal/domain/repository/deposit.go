package repository

import (
	"context"

	"github.com/votemart/votemart/internal/domain/model"
)

// DepositRepository stores wallet top-up attempts.
type DepositRepository interface {
	Create(ctx context.Context, deposit *model.Deposit) (*model.Deposit, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Deposit, error)
}
