package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/myteam"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type teamRecord struct {
	ID        string   `json:"id"`
	LeagueID  string   `json:"leagueId"`
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	Players   []string `json:"players"`
	CreatedAt int64    `json:"createdAt"`
}

func (r teamRecord) toDomain() myteam.Team {
	return myteam.Team{
		ID:        r.ID,
		LeagueID:  r.LeagueID,
		UserID:    r.UserID,
		Name:      r.Name,
		PlayerIDs: append([]string(nil), r.Players...),
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

func teamRecordFromDomain(t myteam.Team) teamRecord {
	players := append([]string{}, t.PlayerIDs...)
	return teamRecord{
		ID:        t.ID,
		LeagueID:  t.LeagueID,
		UserID:    t.UserID,
		Name:      t.Name,
		Players:   players,
		CreatedAt: toMillis(t.CreatedAt),
	}
}

type TeamRepository struct {
	teams *collection.Collection[teamRecord]
}

func NewTeamRepository(store kv.Store, logger *logging.Logger) *TeamRepository {
	return &TeamRepository{
		teams: newCollection(store, KeyMyTeams, nil, func(r teamRecord) string { return r.ID }, logger),
	}
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]myteam.Team, error) {
	var out []myteam.Team
	for _, rec := range r.teams.List(ctx) {
		if rec.UserID == userID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (myteam.Team, bool, error) {
	rec, ok := r.teams.Get(ctx, teamID)
	if !ok {
		return myteam.Team{}, false, nil
	}
	return rec.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t myteam.Team) error {
	if err := r.teams.Append(ctx, teamRecordFromDomain(t)); err != nil {
		return errors.Wrap(err, "create team")
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, t myteam.Team) error {
	_, err := r.teams.Update(ctx, t.ID, func(rec *teamRecord) error {
		*rec = teamRecordFromDomain(t)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "update team %s", t.ID)
	}
	return nil
}
