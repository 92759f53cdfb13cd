package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	leaguemock "github.com/riskibarqy/blueprint-fantasy/internal/mocks/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

func TestLeagueService_CreateLeague(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	owner := env.signup(t, "Ada", "ada@example.com")

	first, err := env.leagues.CreateLeague(ctx, owner, CreateLeagueInput{Name: "Dynasty League"})
	require.NoError(t, err)
	require.Equal(t, "dynasty-league", first.Slug)
	require.Equal(t, league.VisibilityPublic, first.Visibility)
	require.Equal(t, owner.UserID, first.OwnerID)

	second, err := env.leagues.CreateLeague(ctx, owner, CreateLeagueInput{Name: "Dynasty  league!", Visibility: "private"})
	require.NoError(t, err)
	require.Equal(t, "dynasty-league-2", second.Slug)
	require.Equal(t, league.VisibilityPrivate, second.Visibility)

	got, err := env.leagues.GetLeagueBySlug(ctx, "dynasty-league-2")
	require.NoError(t, err)
	require.Equal(t, second.ID, got.ID)

	all, err := env.leagues.ListLeagues(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.ID, all[0].ID)
}

func TestLeagueService_Preconditions(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()

	_, err := env.leagues.CreateLeague(ctx, user.Principal{}, CreateLeagueInput{Name: "Nope"})
	if !errors.Is(err, ErrLoginRequired) || !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected login required, got %v", err)
	}

	owner := env.signup(t, "Ada", "ada@example.com")
	for _, in := range []CreateLeagueInput{{Name: ""}, {Name: "!!!"}, {Name: "Ok", Visibility: "secret"}} {
		if _, err := env.leagues.CreateLeague(ctx, owner, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}

	if _, err := env.leagues.GetLeagueBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_ListOwnedLeagues(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	ada := env.signup(t, "Ada", "ada@example.com")
	bob := env.signup(t, "Bob", "bob@example.com")

	_, err := env.leagues.CreateLeague(ctx, ada, CreateLeagueInput{Name: "Ada League"})
	require.NoError(t, err)
	_, err = env.leagues.CreateLeague(ctx, bob, CreateLeagueInput{Name: "Bob League"})
	require.NoError(t, err)

	owned, err := env.leagues.ListOwnedLeagues(ctx, bob)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Equal(t, "bob-league", owned[0].Slug)
}

func TestLeagueService_CreateLeague_StorageUnavailableUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	service := NewLeagueService(leagueRepo, &sequenceIDs{}, clockwork.NewFakeClock(), logging.NewNop())
	caller := user.Principal{UserID: "u_1", Username: "ada", Name: "Ada"}

	leagueRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return([]league.League{}, nil).
		Once()
	leagueRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(l league.League) bool { return l.Slug == "hoops" && l.OwnerID == "u_1" })).
		Return(errors.Wrap(kv.ErrQuotaExceeded, "write bp_leagues")).
		Once()

	_, err := service.CreateLeague(ctx, caller, CreateLeagueInput{Name: "Hoops"})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if !errors.Is(err, kv.ErrQuotaExceeded) {
		t.Fatalf("expected quota cause in chain, got %v", err)
	}
}
