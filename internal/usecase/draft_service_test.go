package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	draftmock "github.com/riskibarqy/blueprint-fantasy/internal/mocks/domain/draft"
	playermock "github.com/riskibarqy/blueprint-fantasy/internal/mocks/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

func TestDraftService_SnakeSeatSixRunsToCompletion(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	owner := env.signup(t, "Ada", "ada@example.com")

	state, err := env.drafts.StartDraft(ctx, owner, StartDraftInput{
		Name: "Mock 1", Type: "snake", TeamCount: 12, RoundCount: 2, UserSeat: 6,
	})
	require.NoError(t, err)
	require.Equal(t, draft.StatusActive, state.Draft.Status)
	require.Equal(t, 6, state.Draft.CurrentPick)
	require.Equal(t, 1, state.Draft.CurrentRound)
	require.True(t, state.OnClock)
	require.Equal(t, 6, state.Current.Seat)
	require.Len(t, state.Selections, 5)
	require.Len(t, state.Picks, 5)
	for i, sel := range state.Selections {
		require.Equal(t, i+1, sel.Pick)
		require.Equal(t, i+1, sel.Seat)
		require.Equal(t, draft.OriginSimulated, sel.Origin)
	}

	state, err = env.drafts.MakePick(ctx, owner, state.Draft.ID, state.Available[0].ID)
	require.NoError(t, err)
	require.Len(t, state.Selections, 13)
	require.Equal(t, draft.OriginUser, state.Selections[0].Origin)
	require.Equal(t, 6, state.Selections[0].Seat)
	seatOf := map[int]int{}
	for _, sel := range state.Selections {
		seatOf[sel.Pick] = sel.Seat
	}
	require.Equal(t, 12, seatOf[13])
	require.Equal(t, 7, seatOf[18])
	require.Equal(t, 19, state.Draft.CurrentPick)
	require.Equal(t, 2, state.Draft.CurrentRound)
	require.Equal(t, 6, state.Current.Seat)

	env.clock.Advance(time.Second)
	state, err = env.drafts.MakePick(ctx, owner, state.Draft.ID, state.Available[0].ID)
	require.NoError(t, err)
	require.Equal(t, draft.StatusCompleted, state.Draft.Status)
	require.Equal(t, 25, state.Draft.CurrentPick)
	require.NotNil(t, state.Draft.CompletedAt)
	require.False(t, state.OnClock)
	require.Len(t, state.UserRoster, 2)

	picks, err := env.drafts.ListPicks(ctx, owner, state.Draft.ID)
	require.NoError(t, err)
	require.Len(t, picks, 24)
	seen := map[string]bool{}
	userPicks := 0
	for _, p := range picks {
		if seen[p.PlayerID] {
			t.Fatalf("player %s drafted twice", p.PlayerID)
		}
		seen[p.PlayerID] = true
		if p.Origin == draft.OriginUser {
			userPicks++
			require.Equal(t, 6, p.Seat)
		}
	}
	require.Equal(t, 2, userPicks)

	_, err = env.drafts.MakePick(ctx, owner, state.Draft.ID, state.Available[0].ID)
	require.True(t, errors.Is(err, ErrConflict), "got %v", err)
	require.True(t, errors.Is(err, draft.ErrDraftNotActive), "got %v", err)

	drafts, err := env.drafts.ListDrafts(ctx, owner)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, draft.StatusCompleted, drafts[0].Status)
}

func TestDraftService_LinearSeatOne(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	owner := env.signup(t, "Ada", "ada@example.com")

	state, err := env.drafts.StartDraft(ctx, owner, StartDraftInput{
		Name: "Linear", Type: "linear", TeamCount: 10, RoundCount: 3, UserSeat: 1,
	})
	require.NoError(t, err)
	require.Empty(t, state.Selections)
	require.Equal(t, 1, state.Draft.CurrentPick)

	state, err = env.drafts.MakePick(ctx, owner, state.Draft.ID, "p1")
	require.NoError(t, err)
	require.Len(t, state.Selections, 10)
	require.Equal(t, 11, state.Draft.CurrentPick)
	require.Equal(t, 1, state.Current.Seat)

	reloaded, err := env.drafts.GetDraftState(ctx, owner, state.Draft.ID)
	require.NoError(t, err)
	require.Equal(t, 11, reloaded.Draft.CurrentPick)
	require.True(t, reloaded.OnClock)
	require.Equal(t, []string{"p1"}, reloaded.UserRoster)
	require.Len(t, reloaded.Available, len(player.DefaultCatalog())-10)
}

func TestDraftService_ReportUserPicksOnlyKeepsPoolAcrossResume(t *testing.T) {
	cfg := DefaultDraftConfig()
	cfg.ReportSimulatedPicks = false
	env := newTestEnv(t, cfg)
	ctx := context.Background()
	owner := env.signup(t, "Ada", "ada@example.com")

	state, err := env.drafts.StartDraft(ctx, owner, StartDraftInput{
		Name: "Legacy", Type: "linear", TeamCount: 2, RoundCount: 2, UserSeat: 2,
	})
	require.NoError(t, err)
	require.Len(t, state.Selections, 1)
	require.Empty(t, state.Picks)
	takenBySeatOne := state.Selections[0].Player.ID

	picks, err := env.drafts.ListPicks(ctx, owner, state.Draft.ID)
	require.NoError(t, err)
	require.Empty(t, picks)

	reloaded, err := env.drafts.GetDraftState(ctx, owner, state.Draft.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Available, len(player.DefaultCatalog())-1)
	for _, p := range reloaded.Available {
		require.NotEqual(t, takenBySeatOne, p.ID)
	}

	_, err = env.drafts.MakePick(ctx, owner, state.Draft.ID, takenBySeatOne)
	require.True(t, errors.Is(err, draft.ErrPlayerUnavailable), "got %v", err)
	require.True(t, errors.Is(err, ErrConflict), "got %v", err)

	mine := reloaded.Available[0].ID
	state, err = env.drafts.MakePick(ctx, owner, state.Draft.ID, mine)
	require.NoError(t, err)
	require.Equal(t, []string{mine}, state.UserRoster)
	require.Equal(t, 4, state.Draft.CurrentPick)
	for _, p := range state.Picks {
		require.Equal(t, draft.OriginUser, p.Origin)
	}

	picks, err = env.drafts.ListPicks(ctx, owner, state.Draft.ID)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	require.Equal(t, draft.OriginUser, picks[0].Origin)
	require.Equal(t, 2, picks[0].Seat)
	require.Equal(t, 2, picks[0].Number)

	reloaded, err = env.drafts.GetDraftState(ctx, owner, state.Draft.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Available, len(player.DefaultCatalog())-3)
}

func TestDraftService_Preconditions(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	ada := env.signup(t, "Ada", "ada@example.com")
	bob := env.signup(t, "Bob", "bob@example.com")

	_, err := env.drafts.StartDraft(ctx, user.Principal{}, StartDraftInput{Name: "x", TeamCount: 2, RoundCount: 1, UserSeat: 1})
	require.True(t, errors.Is(err, ErrLoginRequired), "got %v", err)

	invalid := []StartDraftInput{
		{Name: "x", TeamCount: 1, RoundCount: 1, UserSeat: 1},
		{Name: "x", TeamCount: 21, RoundCount: 1, UserSeat: 1},
		{Name: "x", TeamCount: 12, RoundCount: 0, UserSeat: 1},
		{Name: "x", TeamCount: 12, RoundCount: 2, UserSeat: 0},
		{Name: "x", TeamCount: 12, RoundCount: 2, UserSeat: 13},
		{Name: "x", Type: "keeper", TeamCount: 12, RoundCount: 2, UserSeat: 1},
		{Name: "", TeamCount: 12, RoundCount: 2, UserSeat: 1},
	}
	for _, in := range invalid {
		if _, err := env.drafts.StartDraft(ctx, ada, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}

	state, err := env.drafts.StartDraft(ctx, ada, StartDraftInput{Name: "Mine", TeamCount: 2, RoundCount: 2, UserSeat: 2})
	require.NoError(t, err)
	taken := state.Selections[0].Player.ID

	_, err = env.drafts.MakePick(ctx, ada, state.Draft.ID, taken)
	require.True(t, errors.Is(err, ErrConflict), "got %v", err)
	require.True(t, errors.Is(err, draft.ErrPlayerUnavailable), "got %v", err)

	_, err = env.drafts.GetDraftState(ctx, bob, state.Draft.ID)
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	_, err = env.drafts.MakePick(ctx, bob, state.Draft.ID, "p2")
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestDraftService_StartDraft_PickStoreUnavailableUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	draftRepo := draftmock.NewRepository(t)
	pickRepo := draftmock.NewPickRepository(t)
	rankingRepo := playermock.NewRankingRepository(t)
	players := NewPlayerService(rankingRepo, logging.NewNop())
	cfg := DefaultDraftConfig()
	cfg.NewPolicy = func() draft.OpponentPolicy { return draft.BestAvailable{} }
	service := NewDraftService(draftRepo, pickRepo, nil, players, &sequenceIDs{}, clockwork.NewFakeClock(), cfg, logging.NewNop())

	rankingRepo.
		On("List", mock.Anything).
		Return([]player.Player{}, nil).
		Once()
	pickRepo.
		On("Append", mock.Anything, mock.MatchedBy(func(p draft.Pick) bool {
			return p.Number == 1 && p.Seat == 1 && p.Origin == draft.OriginSimulated
		})).
		Return(errors.Wrap(kv.ErrUnavailable, "write bp_draft_picks")).
		Once()

	_, err := service.StartDraft(ctx, user.Principal{UserID: "u_1"}, StartDraftInput{
		Name: "Flaky", TeamCount: 2, RoundCount: 1, UserSeat: 2,
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	draftRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDraftService_GetDraftState_LegacyUserPicksUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	draftRepo := draftmock.NewRepository(t)
	pickRepo := draftmock.NewPickRepository(t)
	rankingRepo := playermock.NewRankingRepository(t)
	service := NewDraftService(draftRepo, pickRepo, nil, NewPlayerService(rankingRepo, nil), &sequenceIDs{}, nil, DefaultDraftConfig(), nil)

	stored := draft.Draft{
		ID:           "draft_legacy",
		Name:         "Old",
		OwnerID:      "u_1",
		Type:         draft.TypeSnake,
		TeamCount:    2,
		RoundCount:   2,
		UserSeat:     1,
		Status:       draft.StatusActive,
		CurrentRound: 2,
		CurrentPick:  4,
	}
	draftRepo.On("GetByID", mock.Anything, "draft_legacy").Return(stored, true, nil).Once()
	pickRepo.
		On("ListByDraft", mock.Anything, "draft_legacy").
		Return([]draft.Pick{{ID: "pick_1", DraftID: "draft_legacy", Round: 1, Number: 1, PlayerID: "p1", Origin: draft.OriginUser}}, nil).
		Once()
	rankingRepo.On("List", mock.Anything).Return([]player.Player{}, nil).Once()

	state, err := service.GetDraftState(ctx, user.Principal{UserID: "u_1"}, "draft_legacy")
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, state.UserRoster)
	require.Equal(t, 1, state.Picks[0].Seat)
	require.True(t, state.OnClock)
	require.Len(t, state.Available, len(player.DefaultCatalog())-1)
}

func TestDraftService_MakePick_FailedAppendKeepsDraftUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	draftRepo := draftmock.NewRepository(t)
	pickRepo := draftmock.NewPickRepository(t)
	rankingRepo := playermock.NewRankingRepository(t)
	cfg := DefaultDraftConfig()
	cfg.NewPolicy = func() draft.OpponentPolicy { return draft.BestAvailable{} }
	service := NewDraftService(draftRepo, pickRepo, nil, NewPlayerService(rankingRepo, nil), &sequenceIDs{}, clockwork.NewFakeClock(), cfg, nil)

	stored := draft.Draft{
		ID:           "draft_1",
		Name:         "Flaky",
		OwnerID:      "u_1",
		Type:         draft.TypeLinear,
		TeamCount:    2,
		RoundCount:   1,
		UserSeat:     1,
		Status:       draft.StatusActive,
		CurrentRound: 1,
		CurrentPick:  1,
	}
	draftRepo.On("GetByID", mock.Anything, "draft_1").Return(stored, true, nil).Once()
	pickRepo.On("ListByDraft", mock.Anything, "draft_1").Return([]draft.Pick{}, nil).Once()
	rankingRepo.On("List", mock.Anything).Return([]player.Player{}, nil).Once()
	pickRepo.
		On("Append", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.Wrap(kv.ErrUnavailable, "write bp_draft_picks")).
		Once()

	_, err := service.MakePick(ctx, user.Principal{UserID: "u_1"}, "draft_1", "p1")
	require.True(t, errors.Is(err, ErrStorageUnavailable), "got %v", err)
	draftRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
