package watchlist

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	Add(ctx context.Context, item Item) error
	Remove(ctx context.Context, userID, playerID string) (bool, error)
}
