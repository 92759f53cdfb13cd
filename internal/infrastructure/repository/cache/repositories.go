package cache

import (
	"context"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	basecache "github.com/riskibarqy/blueprint-fantasy/internal/platform/cache"
)

const listKey = "list"

// RankingRepository caches the custom ranking list. Writes go through and
// drop the cached copy.
type RankingRepository struct {
	next  player.RankingRepository
	lists *basecache.Store[[]player.Player]
}

func NewRankingRepository(next player.RankingRepository, ttl time.Duration, clock clockwork.Clock) *RankingRepository {
	return &RankingRepository{
		next:  next,
		lists: basecache.NewStore[[]player.Player](ttl, clock),
	}
}

func (r *RankingRepository) List(ctx context.Context) ([]player.Player, error) {
	items, err := r.lists.GetOrLoad(ctx, listKey, r.next.List)
	if err != nil {
		return nil, err
	}
	return player.Clone(items), nil
}

func (r *RankingRepository) Replace(ctx context.Context, players []player.Player) error {
	defer r.lists.Clear()
	return r.next.Replace(ctx, players)
}

func (r *RankingRepository) Clear(ctx context.Context) error {
	defer r.lists.Clear()
	return r.next.Clear(ctx)
}

type slugLookup struct {
	league league.League
	exists bool
}

// LeagueRepository caches the league list and slug lookups, misses included.
// Create drops both.
type LeagueRepository struct {
	next  league.Repository
	lists *basecache.Store[[]league.League]
	slugs *basecache.Store[slugLookup]
}

func NewLeagueRepository(next league.Repository, ttl time.Duration, clock clockwork.Clock) *LeagueRepository {
	return &LeagueRepository{
		next:  next,
		lists: basecache.NewStore[[]league.League](ttl, clock),
		slugs: basecache.NewStore[slugLookup](ttl, clock),
	}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := r.lists.GetOrLoad(ctx, listKey, r.next.List)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *LeagueRepository) GetBySlug(ctx context.Context, slug string) (league.League, bool, error) {
	found, err := r.slugs.GetOrLoad(ctx, slug, func(ctx context.Context) (slugLookup, error) {
		l, exists, err := r.next.GetBySlug(ctx, slug)
		return slugLookup{league: l, exists: exists}, err
	})
	if err != nil {
		return league.League{}, false, err
	}
	return found.league, found.exists, nil
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League) error {
	defer func() {
		r.lists.Clear()
		r.slugs.Clear()
	}()
	return r.next.Create(ctx, l)
}
