package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/cheatsheet"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

// The browser app stored the drafted marks as a bare array of player ids.
const cheatSheetLegacyField = "playerId"

type cheatSheetRecord struct {
	PlayerID string `json:"playerId"`
	MarkedAt int64  `json:"markedAt,omitempty"`
}

func (r cheatSheetRecord) toDomain() cheatsheet.Mark {
	return cheatsheet.Mark{PlayerID: r.PlayerID, MarkedAt: fromMillis(r.MarkedAt)}
}

type CheatSheetRepository struct {
	marks *collection.Collection[cheatSheetRecord]
}

func NewCheatSheetRepository(store kv.Store, logger *logging.Logger) *CheatSheetRepository {
	return &CheatSheetRepository{
		marks: collection.New(store, collection.Options[cheatSheetRecord]{
			Key:          KeyCheatSheetDrafted,
			Version:      schemaVersion,
			Migrations:   []collection.Migration{collection.Identity},
			IDOf:         func(r cheatSheetRecord) string { return r.PlayerID },
			LegacyScalar: cheatSheetLegacyField,
			Logger:       logger,
		}),
	}
}

func (r *CheatSheetRepository) List(ctx context.Context) ([]cheatsheet.Mark, error) {
	records := r.marks.List(ctx)
	out := make([]cheatsheet.Mark, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *CheatSheetRepository) Add(ctx context.Context, mark cheatsheet.Mark) error {
	rec := cheatSheetRecord{PlayerID: mark.PlayerID, MarkedAt: toMillis(mark.MarkedAt)}
	if _, err := r.marks.Upsert(ctx, rec); err != nil {
		return errors.Wrap(err, "mark player drafted")
	}
	return nil
}

func (r *CheatSheetRepository) Remove(ctx context.Context, playerID string) (bool, error) {
	removed, err := r.marks.Remove(ctx, func(rec cheatSheetRecord) bool { return rec.PlayerID == playerID })
	if err != nil {
		return false, errors.Wrap(err, "unmark player drafted")
	}
	return removed > 0, nil
}

func (r *CheatSheetRepository) Clear(ctx context.Context) error {
	if err := r.marks.Clear(ctx); err != nil {
		return errors.Wrap(err, "clear drafted marks")
	}
	return nil
}
