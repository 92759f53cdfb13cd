// Package localstore implements the domain repositories on top of versioned
// collections in a local key-value byte store.
package localstore

import (
	"context"
	"time"

	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

// Storage keys. They match the keys the browser app wrote, so an exported
// local storage dump can be imported as-is.
const (
	KeyUsers             = "bp_users"
	KeySession           = "bp_session"
	KeyLeagues           = "bp_leagues"
	KeyInsights          = "bp_insights"
	KeyComments          = "bp_comments"
	KeyDrafts            = "bp_drafts"
	KeyDraftPicks        = "bp_draft_picks"
	KeyMyTeams           = "bp_my_teams"
	KeyWatchlist         = "bp_watchlist"
	KeyPlayerRankings    = "bp_player_rankings"
	KeyCheatSheetDrafted = "bp_cheatsheet_drafted"
)

// AllKeys lists every collection key in a stable order.
var AllKeys = []string{
	KeyUsers,
	KeySession,
	KeyLeagues,
	KeyInsights,
	KeyComments,
	KeyDrafts,
	KeyDraftPicks,
	KeyMyTeams,
	KeyWatchlist,
	KeyPlayerRankings,
	KeyCheatSheetDrafted,
}

// schemaVersion is the envelope version written for every collection.
// Version 0 is the bare array layout of the browser app.
const schemaVersion = 1

func newCollection[T any](store kv.Store, key string, v0 collection.Migration, idOf func(T) string, logger *logging.Logger) *collection.Collection[T] {
	if v0 == nil {
		v0 = collection.Identity
	}
	return collection.New(store, collection.Options[T]{
		Key:        key,
		Version:    schemaVersion,
		Migrations: []collection.Migration{v0},
		IDOf:       idOf,
		Logger:     logger,
	})
}

// Inspect reports the load state of every collection, for diagnostics.
func Inspect(ctx context.Context, store kv.Store) []CollectionStatus {
	out := make([]CollectionStatus, 0, len(AllKeys))
	for _, key := range AllKeys {
		c := collection.New(store, collection.Options[map[string]any]{
			Key:          key,
			Version:      schemaVersion,
			Migrations:   []collection.Migration{collection.Identity},
			LegacyObject: key == KeySession,
			LegacyScalar: legacyScalarField(key),
			Logger:       logging.NewNop(),
		})
		snap := c.Load(ctx)
		status := CollectionStatus{Key: key, State: snap.State, Version: snap.Version, Records: len(snap.Records)}
		if snap.Err != nil {
			status.Error = snap.Err.Error()
		}
		out = append(out, status)
	}
	return out
}

func legacyScalarField(key string) string {
	if key == KeyCheatSheetDrafted {
		return cheatSheetLegacyField
	}
	return ""
}

type CollectionStatus struct {
	Key     string
	State   collection.State
	Version int
	Records int
	Error   string
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
