package usecase

import (
	"context"

	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
)

// AccountUseCase sells aged reddit accounts from the inventory.
type AccountUseCase struct {
	accounts repository.AccountRepository
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(accounts repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// ListAvailable returns accounts currently for sale.
func (u *AccountUseCase) ListAvailable(ctx context.Context) ([]model.RedditAccount, error) {
	return u.accounts.ListAvailable(ctx)
}

// Purchase debits the buyer and marks the account sold in one transaction.
func (u *AccountUseCase) Purchase(ctx context.Context, userID, accountID int64) (*model.RedditAccount, error) {
	return u.accounts.Purchase(ctx, accountID, userID)
}
