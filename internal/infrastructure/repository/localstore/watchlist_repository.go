package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/watchlist"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type watchlistRecord struct {
	PlayerID string `json:"playerId"`
	UserID   string `json:"userId"`
	AddedAt  int64  `json:"addedAt"`
	Notes    string `json:"notes,omitempty"`
}

func (r watchlistRecord) toDomain() watchlist.Item {
	return watchlist.Item{PlayerID: r.PlayerID, UserID: r.UserID, AddedAt: fromMillis(r.AddedAt), Notes: r.Notes}
}

type WatchlistRepository struct {
	items *collection.Collection[watchlistRecord]
}

func NewWatchlistRepository(store kv.Store, logger *logging.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		items: newCollection(store, KeyWatchlist, nil, func(r watchlistRecord) string { return r.UserID + ":" + r.PlayerID }, logger),
	}
}

func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]watchlist.Item, error) {
	var out []watchlist.Item
	for _, rec := range r.items.List(ctx) {
		if rec.UserID == userID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *WatchlistRepository) Add(ctx context.Context, item watchlist.Item) error {
	rec := watchlistRecord{PlayerID: item.PlayerID, UserID: item.UserID, AddedAt: toMillis(item.AddedAt), Notes: item.Notes}
	if err := r.items.Append(ctx, rec); err != nil {
		return errors.Wrap(err, "add watchlist item")
	}
	return nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, userID, playerID string) (bool, error) {
	removed, err := r.items.Remove(ctx, func(rec watchlistRecord) bool {
		return rec.UserID == userID && rec.PlayerID == playerID
	})
	if err != nil {
		return false, errors.Wrap(err, "remove watchlist item")
	}
	return removed > 0, nil
}
