package repository

import (
	"context"

	"github.com/votemart/votemart/internal/domain/model"
)

// AccountRepository manages the aged Reddit account inventory.
type AccountRepository interface {
	Create(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error)
	ListAvailable(ctx context.Context) ([]model.RedditAccount, error)
	ListAll(ctx context.Context) ([]model.RedditAccount, error)

	// Purchase debits the buyer's wallet by the account price and marks the
	// account sold, all in one transaction.
	Purchase(ctx context.Context, accountID, buyerID int64) (*model.RedditAccount, error)
}
