package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type draftRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerID      string `json:"ownerId"`
	LeagueID     string `json:"leagueId,omitempty"`
	Type         string `json:"type"`
	TeamCount    int    `json:"teamCount"`
	RoundCount   int    `json:"roundCount"`
	UserSeat     int    `json:"userSeat"`
	Status       string `json:"status"`
	CurrentRound int    `json:"currentRound"`
	CurrentPick  int    `json:"currentPick"`
	CreatedAt    int64  `json:"createdAt"`
	CompletedAt  *int64 `json:"completedAt,omitempty"`
}

func (r draftRecord) toDomain() draft.Draft {
	d := draft.Draft{
		ID:           r.ID,
		Name:         r.Name,
		OwnerID:      r.OwnerID,
		LeagueID:     r.LeagueID,
		Type:         draft.Type(r.Type),
		TeamCount:    r.TeamCount,
		RoundCount:   r.RoundCount,
		UserSeat:     r.UserSeat,
		Status:       draft.Status(r.Status),
		CurrentRound: r.CurrentRound,
		CurrentPick:  r.CurrentPick,
		CreatedAt:    fromMillis(r.CreatedAt),
	}
	if r.CompletedAt != nil {
		completedAt := fromMillis(*r.CompletedAt)
		d.CompletedAt = &completedAt
	}
	return d
}

func draftRecordFromDomain(d draft.Draft) draftRecord {
	rec := draftRecord{
		ID:           d.ID,
		Name:         d.Name,
		OwnerID:      d.OwnerID,
		LeagueID:     d.LeagueID,
		Type:         string(d.Type),
		TeamCount:    d.TeamCount,
		RoundCount:   d.RoundCount,
		UserSeat:     d.UserSeat,
		Status:       string(d.Status),
		CurrentRound: d.CurrentRound,
		CurrentPick:  d.CurrentPick,
		CreatedAt:    toMillis(d.CreatedAt),
	}
	if d.CompletedAt != nil {
		completedAt := toMillis(*d.CompletedAt)
		rec.CompletedAt = &completedAt
	}
	return rec
}

type pickRecord struct {
	ID        string `json:"id"`
	DraftID   string `json:"draftId"`
	Round     int    `json:"round"`
	Pick      int    `json:"pick"`
	PlayerID  string `json:"playerId"`
	SeatID    int    `json:"seatId"`
	Origin    string `json:"origin"`
	Timestamp int64  `json:"timestamp"`
}

func (r pickRecord) toDomain() draft.Pick {
	return draft.Pick{
		ID:        r.ID,
		DraftID:   r.DraftID,
		Round:     r.Round,
		Number:    r.Pick,
		PlayerID:  r.PlayerID,
		Seat:      r.SeatID,
		Origin:    draft.Origin(r.Origin),
		Timestamp: fromMillis(r.Timestamp),
	}
}

var migrateLegacyDrafts = collection.RenameFields(map[string]string{
	"userId":       "ownerId",
	"teams":        "teamCount",
	"rounds":       "roundCount",
	"userPosition": "userSeat",
})

// migrateLegacyPicks maps the browser layout, where only user picks were
// logged with teamId "user" and no seat number. The seat is filled in from
// the draft when the session is resumed.
func migrateLegacyPicks(rows []map[string]any) ([]map[string]any, error) {
	rows, err := collection.RenameFields(map[string]string{"odraftId": "draftId"})(rows)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row == nil {
			continue
		}
		teamID, hasTeam := row["teamId"]
		if !hasTeam {
			continue
		}
		delete(row, "teamId")
		if _, ok := row["origin"]; ok {
			continue
		}
		if teamID == "user" {
			row["origin"] = string(draft.OriginUser)
		} else {
			row["origin"] = string(draft.OriginSimulated)
		}
	}
	return rows, nil
}

type DraftRepository struct {
	drafts *collection.Collection[draftRecord]
}

func NewDraftRepository(store kv.Store, logger *logging.Logger) *DraftRepository {
	return &DraftRepository{
		drafts: newCollection(store, KeyDrafts, migrateLegacyDrafts, func(r draftRecord) string { return r.ID }, logger),
	}
}

func (r *DraftRepository) ListByOwner(ctx context.Context, ownerID string) ([]draft.Draft, error) {
	var out []draft.Draft
	for _, rec := range r.drafts.List(ctx) {
		if rec.OwnerID == ownerID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *DraftRepository) GetByID(ctx context.Context, draftID string) (draft.Draft, bool, error) {
	rec, ok := r.drafts.Get(ctx, draftID)
	if !ok {
		return draft.Draft{}, false, nil
	}
	return rec.toDomain(), true, nil
}

func (r *DraftRepository) Create(ctx context.Context, d draft.Draft) error {
	if err := r.drafts.Append(ctx, draftRecordFromDomain(d)); err != nil {
		return errors.Wrap(err, "create draft")
	}
	return nil
}

// Update replaces the stored draft wholesale.
func (r *DraftRepository) Update(ctx context.Context, d draft.Draft) error {
	_, err := r.drafts.Update(ctx, d.ID, func(rec *draftRecord) error {
		*rec = draftRecordFromDomain(d)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "update draft %s", d.ID)
	}
	return nil
}

type PickRepository struct {
	picks *collection.Collection[pickRecord]
}

func NewPickRepository(store kv.Store, logger *logging.Logger) *PickRepository {
	return &PickRepository{
		picks: newCollection(store, KeyDraftPicks, migrateLegacyPicks, func(r pickRecord) string { return r.ID }, logger),
	}
}

func (r *PickRepository) ListByDraft(ctx context.Context, draftID string) ([]draft.Pick, error) {
	var out []draft.Pick
	for _, rec := range r.picks.List(ctx) {
		if rec.DraftID == draftID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *PickRepository) Append(ctx context.Context, picks ...draft.Pick) error {
	if len(picks) == 0 {
		return nil
	}
	records := make([]pickRecord, 0, len(picks))
	for _, p := range picks {
		records = append(records, pickRecord{
			ID:        p.ID,
			DraftID:   p.DraftID,
			Round:     p.Round,
			Pick:      p.Number,
			PlayerID:  p.PlayerID,
			SeatID:    p.Seat,
			Origin:    string(p.Origin),
			Timestamp: toMillis(p.Timestamp),
		})
	}
	if err := r.picks.Append(ctx, records...); err != nil {
		return errors.Wrap(err, "append draft picks")
	}
	return nil
}
