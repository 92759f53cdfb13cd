package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type leagueRecord struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	OwnerID    string `json:"ownerId"`
	Visibility string `json:"visibility"`
	CreatedAt  int64  `json:"createdAt"`
}

func (r leagueRecord) toDomain() league.League {
	return league.League{
		ID:         r.ID,
		Slug:       r.Slug,
		Name:       r.Name,
		OwnerID:    r.OwnerID,
		Visibility: league.Visibility(r.Visibility),
		CreatedAt:  fromMillis(r.CreatedAt),
	}
}

type LeagueRepository struct {
	leagues *collection.Collection[leagueRecord]
}

func NewLeagueRepository(store kv.Store, logger *logging.Logger) *LeagueRepository {
	return &LeagueRepository{
		leagues: newCollection(store, KeyLeagues, nil, func(r leagueRecord) string { return r.ID }, logger),
	}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	records := r.leagues.List(ctx)
	out := make([]league.League, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *LeagueRepository) GetBySlug(ctx context.Context, slug string) (league.League, bool, error) {
	rec, ok := r.leagues.Find(ctx, func(rec leagueRecord) bool { return rec.Slug == slug })
	if !ok {
		return league.League{}, false, nil
	}
	return rec.toDomain(), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	rec := leagueRecord{
		ID:         l.ID,
		Slug:       l.Slug,
		Name:       l.Name,
		OwnerID:    l.OwnerID,
		Visibility: string(l.Visibility),
		CreatedAt:  toMillis(l.CreatedAt),
	}
	if err := r.leagues.Append(ctx, rec); err != nil {
		return errors.Wrap(err, "create league")
	}
	return nil
}
