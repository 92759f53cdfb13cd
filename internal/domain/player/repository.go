package player

import "context"

// RankingRepository stores the user-edited ranking list. An empty list means
// the default catalog applies.
type RankingRepository interface {
	List(ctx context.Context) ([]Player, error)
	Replace(ctx context.Context, players []Player) error
	Clear(ctx context.Context) error
}
