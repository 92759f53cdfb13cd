package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/cheatsheet"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/repository/localstore"
)

func TestCheatSheetService_SheetGroupsByRankTier(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()

	sheet, err := env.sheet.Sheet(ctx, user.Principal{})
	require.NoError(t, err)
	require.Len(t, sheet.Tiers, len(cheatsheet.Tiers))
	require.Zero(t, sheet.Drafted)

	total := 0
	for _, tier := range sheet.Tiers {
		prev := 0
		for _, entry := range tier.Entries {
			require.Equal(t, tier.Tier, cheatsheet.TierOf(entry.Player.Rank))
			require.Greater(t, entry.Player.Rank, prev)
			require.False(t, entry.Watched)
			prev = entry.Player.Rank
		}
		total += len(tier.Entries)
	}
	require.Equal(t, len(player.DefaultCatalog()), total)
	require.Len(t, sheet.Tiers[0].Entries, 5)
	require.Len(t, sheet.Tiers[1].Entries, 7)
	require.Empty(t, sheet.Tiers[4].Entries)
}

func TestCheatSheetService_ToggleAndClear(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	ada := env.signup(t, "Ada", "ada@example.com")
	_, err := env.watch.Add(ctx, ada, "p7", "")
	require.NoError(t, err)

	drafted, err := env.sheet.ToggleDrafted(ctx, " p1 ")
	require.NoError(t, err)
	require.True(t, drafted)
	env.clock.Advance(time.Minute)
	drafted, err = env.sheet.ToggleDrafted(ctx, "p7")
	require.NoError(t, err)
	require.True(t, drafted)

	_, err = env.sheet.ToggleDrafted(ctx, "p999")
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	_, err = env.sheet.ToggleDrafted(ctx, "")
	require.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)

	sheet, err := env.sheet.Sheet(ctx, ada)
	require.NoError(t, err)
	require.Equal(t, 2, sheet.Drafted)
	require.True(t, sheet.Tiers[0].Entries[0].Drafted)
	tatum := sheet.Tiers[1].Entries[1]
	require.Equal(t, "p7", tatum.Player.ID)
	require.True(t, tatum.Drafted)
	require.True(t, tatum.Watched)

	drafted, err = env.sheet.ToggleDrafted(ctx, "p1")
	require.NoError(t, err)
	require.False(t, drafted)

	marks, err := env.sheet.Drafted(ctx)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	require.Equal(t, "p7", marks[0].PlayerID)
	require.Equal(t, env.clock.Now(), marks[0].MarkedAt)

	require.NoError(t, env.sheet.ClearDrafted(ctx))
	_, ok, err := env.store.Get(ctx, localstore.KeyCheatSheetDrafted)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheatSheetService_UnavailableStore(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	env.store.SetDisabled(true)

	sheet, err := env.sheet.Sheet(ctx, user.Principal{})
	require.NoError(t, err)
	require.Len(t, sheet.Tiers[0].Entries, 5)

	_, err = env.sheet.ToggleDrafted(ctx, "p1")
	require.True(t, errors.Is(err, ErrStorageUnavailable), "got %v", err)
	err = env.sheet.ClearDrafted(ctx)
	require.True(t, errors.Is(err, ErrStorageUnavailable), "got %v", err)
}
