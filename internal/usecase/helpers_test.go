package usecase

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/repository/localstore"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID(prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return prefix + "_" + strconv.Itoa(g.n), nil
}

type testEnv struct {
	store   *kv.MemoryStore
	clock   *clockwork.FakeClock
	ids     *sequenceIDs
	auth    *AuthService
	leagues *LeagueService
	posts   *InsightService
	players *PlayerService
	watch   *WatchlistService
	teams   *TeamService
	drafts  *DraftService
	sheet   *CheatSheetService
	profile *ProfileService
}

func newTestEnv(t *testing.T, draftCfg DraftConfig) *testEnv {
	t.Helper()

	store := kv.NewMemoryStore(0)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
	ids := &sequenceIDs{}
	logger := logging.NewNop()

	leagueRepo := localstore.NewLeagueRepository(store, logger)
	players := NewPlayerService(localstore.NewRankingRepository(store, logger), logger)
	if draftCfg.NewPolicy == nil {
		draftCfg.NewPolicy = func() draft.OpponentPolicy { return draft.BestAvailable{} }
	}

	userRepo := localstore.NewUserRepository(store, logger)
	watchlistRepo := localstore.NewWatchlistRepository(store, logger)

	env := &testEnv{
		store: store,
		clock: clock,
		ids:   ids,
		auth: NewAuthService(
			userRepo,
			localstore.NewSessionRepository(store, logger),
			ids,
			logger,
		).WithHashCost(bcrypt.MinCost),
		leagues: NewLeagueService(leagueRepo, ids, clock, logger),
		posts: NewInsightService(
			localstore.NewInsightRepository(store, logger),
			localstore.NewCommentRepository(store, logger),
			leagueRepo,
			ids,
			clock,
			logger,
		),
		players: players,
		watch:   NewWatchlistService(watchlistRepo, players, clock, logger),
		teams:   NewTeamService(localstore.NewTeamRepository(store, logger), leagueRepo, players, ids, clock, logger),
		drafts: NewDraftService(
			localstore.NewDraftRepository(store, logger),
			localstore.NewPickRepository(store, logger),
			leagueRepo,
			players,
			ids,
			clock,
			draftCfg,
			logger,
		),
		sheet: NewCheatSheetService(localstore.NewCheatSheetRepository(store, logger), watchlistRepo, players, clock, logger),
	}
	env.profile = NewProfileService(userRepo, env.leagues, env.posts, logger)
	return env
}

func (e *testEnv) signup(t *testing.T, name, email string) user.Principal {
	t.Helper()

	u, err := e.auth.Signup(context.Background(), SignupInput{Name: name, Email: email, Password: "secret123"})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return user.PrincipalOf(u)
}
