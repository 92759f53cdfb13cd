package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type playerRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Position string  `json:"position"`
	Age      int     `json:"age"`
	PPG      float64 `json:"ppg"`
	RPG      float64 `json:"rpg"`
	APG      float64 `json:"apg"`
	SPG      float64 `json:"spg"`
	BPG      float64 `json:"bpg"`
	FG       float64 `json:"fg"`
	FT       float64 `json:"ft"`
	TOV      float64 `json:"tov"`
	GP       int     `json:"gp"`
	ADP      float64 `json:"adp"`
	Rank     int     `json:"rank"`
	Trend    string  `json:"trend"`
	Injury   string  `json:"injury,omitempty"`
}

func (r playerRecord) toDomain() player.Player {
	return player.Player{
		ID:       r.ID,
		Name:     r.Name,
		Team:     r.Team,
		Position: player.Position(r.Position),
		Age:      r.Age,
		Stats: player.Stats{
			PPG: r.PPG,
			RPG: r.RPG,
			APG: r.APG,
			SPG: r.SPG,
			BPG: r.BPG,
			FG:  r.FG,
			FT:  r.FT,
			TOV: r.TOV,
			GP:  r.GP,
		},
		ADP:    r.ADP,
		Rank:   r.Rank,
		Trend:  player.Trend(r.Trend),
		Injury: r.Injury,
	}
}

func playerRecordFromDomain(p player.Player) playerRecord {
	return playerRecord{
		ID:       p.ID,
		Name:     p.Name,
		Team:     p.Team,
		Position: string(p.Position),
		Age:      p.Age,
		PPG:      p.Stats.PPG,
		RPG:      p.Stats.RPG,
		APG:      p.Stats.APG,
		SPG:      p.Stats.SPG,
		BPG:      p.Stats.BPG,
		FG:       p.Stats.FG,
		FT:       p.Stats.FT,
		TOV:      p.Stats.TOV,
		GP:       p.Stats.GP,
		ADP:      p.ADP,
		Rank:     p.Rank,
		Trend:    string(p.Trend),
		Injury:   p.Injury,
	}
}

type RankingRepository struct {
	rankings *collection.Collection[playerRecord]
}

func NewRankingRepository(store kv.Store, logger *logging.Logger) *RankingRepository {
	return &RankingRepository{
		rankings: newCollection(store, KeyPlayerRankings, nil, func(r playerRecord) string { return r.ID }, logger),
	}
}

func (r *RankingRepository) List(ctx context.Context) ([]player.Player, error) {
	records := r.rankings.List(ctx)
	out := make([]player.Player, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *RankingRepository) Replace(ctx context.Context, players []player.Player) error {
	records := make([]playerRecord, 0, len(players))
	for _, p := range players {
		records = append(records, playerRecordFromDomain(p))
	}
	if err := r.rankings.Replace(ctx, records); err != nil {
		return errors.Wrap(err, "replace player rankings")
	}
	return nil
}

func (r *RankingRepository) Clear(ctx context.Context) error {
	if err := r.rankings.Clear(ctx); err != nil {
		return errors.Wrap(err, "clear player rankings")
	}
	return nil
}
