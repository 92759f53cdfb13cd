package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/cheatsheet"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/insight"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/myteam"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/watchlist"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

var testTime = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func TestDraftRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(kv.NewMemoryStore(0), logging.NewNop())

	completedAt := testTime.Add(time.Hour)
	in := draft.Draft{
		ID:           "draft_1",
		Name:         "Mock 1",
		OwnerID:      "u_1",
		LeagueID:     "lg_1",
		Type:         draft.TypeSnake,
		TeamCount:    12,
		RoundCount:   13,
		UserSeat:     6,
		Status:       draft.StatusCompleted,
		CurrentRound: 13,
		CurrentPick:  157,
		CreatedAt:    testTime,
		CompletedAt:  &completedAt,
	}
	require.NoError(t, repo.Create(ctx, in))
	require.NoError(t, repo.Create(ctx, draft.Draft{ID: "draft_2", OwnerID: "u_2", CreatedAt: testTime}))

	got, ok, err := repo.GetByID(ctx, "draft_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, got)

	mine, err := repo.ListByOwner(ctx, "u_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	in.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, in))
	got, _, _ = repo.GetByID(ctx, "draft_1")
	require.Equal(t, "Renamed", got.Name)

	err = repo.Update(ctx, draft.Draft{ID: "missing"})
	require.ErrorIs(t, err, collection.ErrRecordNotFound)
}

func TestPickRepository_AppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewPickRepository(kv.NewMemoryStore(0), logging.NewNop())

	first := draft.Pick{ID: "pick_1", DraftID: "d1", Round: 1, Number: 1, PlayerID: "p1", Seat: 1, Origin: draft.OriginSimulated, Timestamp: testTime}
	second := draft.Pick{ID: "pick_2", DraftID: "d1", Round: 1, Number: 2, PlayerID: "p3", Seat: 2, Origin: draft.OriginUser, Timestamp: testTime}
	other := draft.Pick{ID: "pick_3", DraftID: "d2", Round: 1, Number: 1, PlayerID: "p1", Seat: 1, Origin: draft.OriginUser, Timestamp: testTime}

	require.NoError(t, repo.Append(ctx, first, second))
	require.NoError(t, repo.Append(ctx, other))
	require.NoError(t, repo.Append(ctx))

	got, err := repo.ListByDraft(ctx, "d1")
	require.NoError(t, err)
	require.Equal(t, []draft.Pick{first, second}, got)
}

func TestLegacyBrowserLayout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)

	legacy := map[string]string{
		KeyUsers:      `[{"user":{"id":"u_1","name":"Ann","email":"ann@example.com","username":"ann"},"password":"hunter2"}]`,
		KeySession:    `{"id":"u_1","name":"Ann","email":"ann@example.com","username":"ann"}`,
		KeyDrafts:     `[{"id":"draft_1","name":"Mock","userId":"u_1","type":"snake","teams":12,"rounds":13,"userPosition":6,"status":"active","currentRound":1,"currentPick":1,"createdAt":1767225600000}]`,
		KeyDraftPicks: `[{"id":"pick_1","odraftId":"draft_1","round":1,"pick":6,"playerId":"p4","teamId":"user","timestamp":1767225600000}]`,
		KeyMyTeams:    `[{"id":"team_1","leagueId":"lg_1","userId":"u_1","name":"Bench","players":["p1","p2"],"createdAt":1767225600000}]`,
	}
	for key, payload := range legacy {
		require.NoError(t, store.Set(ctx, key, []byte(payload)))
	}
	logger := logging.NewNop()

	account, ok, err := NewUserRepository(store, logger).GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ann", account.User.Username)
	require.NoError(t, bcrypt.CompareHashAndPassword(account.PasswordHash, []byte("hunter2")))

	users := Inspect(ctx, store)[0]
	require.Equal(t, KeyUsers, users.Key)
	require.Equal(t, schemaVersion, users.Version, "legacy users are rewritten on first read")
	again, _, err := NewUserRepository(store, logger).GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, account.PasswordHash, again.PasswordHash, "password is hashed once")

	current, ok, err := NewSessionRepository(store, logger).Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u_1", current.ID)

	d, ok, err := NewDraftRepository(store, logger).GetByID(ctx, "draft_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u_1", d.OwnerID)
	require.Equal(t, 12, d.TeamCount)
	require.Equal(t, 13, d.RoundCount)
	require.Equal(t, 6, d.UserSeat)
	require.Equal(t, time.UnixMilli(1767225600000).UTC(), d.CreatedAt)

	picks, err := NewPickRepository(store, logger).ListByDraft(ctx, "draft_1")
	require.NoError(t, err)
	require.Len(t, picks, 1)
	require.Equal(t, draft.OriginUser, picks[0].Origin)
	require.Zero(t, picks[0].Seat)

	teams, err := NewTeamRepository(store, logger).ListByUser(ctx, "u_1")
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2"}, teams[0].PlayerIDs)

	statuses := Inspect(ctx, store)
	require.Len(t, statuses, len(AllKeys))
	byKey := make(map[string]CollectionStatus)
	for _, s := range statuses {
		byKey[s.Key] = s
	}
	require.Equal(t, collection.StateOK, byKey[KeyDrafts].State)
	require.Equal(t, 0, byKey[KeyDrafts].Version)
	require.Equal(t, 1, byKey[KeySession].Records)
	require.Equal(t, collection.StateAbsent, byKey[KeyWatchlist].State)
}

func TestRepositories_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	logger := logging.NewNop()

	leagues := NewLeagueRepository(store, logger)
	l := league.League{ID: "lg_1", Slug: "dynasty", Name: "Dynasty", OwnerID: "u_1", Visibility: league.VisibilityPrivate, CreatedAt: testTime}
	require.NoError(t, leagues.Create(ctx, l))
	gotLeague, ok, err := leagues.GetBySlug(ctx, "dynasty")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, l, gotLeague)

	insights := NewInsightRepository(store, logger)
	older := insight.Insight{ID: "ins_1", Title: "Old", Body: "b", AuthorID: "u_1", Author: "Ann", CreatedAt: testTime, Heat: 100}
	newer := insight.Insight{ID: "ins_2", Title: "New", Body: "b", LeagueSlug: "dynasty", AuthorID: "u_1", Author: "Ann", CreatedAt: testTime, Heat: 200}
	require.NoError(t, insights.Create(ctx, older))
	require.NoError(t, insights.Create(ctx, newer))
	feed, err := insights.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []insight.Insight{newer, older}, feed)

	comments := NewCommentRepository(store, logger)
	c := insight.Comment{ID: "c_1", InsightID: "ins_1", AuthorID: "u_1", Author: "Ann", Body: "nice", CreatedAt: testTime}
	require.NoError(t, comments.Create(ctx, c))
	gotComments, err := comments.ListByInsight(ctx, "ins_1")
	require.NoError(t, err)
	require.Equal(t, []insight.Comment{c}, gotComments)

	rankings := NewRankingRepository(store, logger)
	catalog := player.DefaultCatalog()
	require.NoError(t, rankings.Replace(ctx, catalog))
	gotPlayers, err := rankings.List(ctx)
	require.NoError(t, err)
	require.Equal(t, catalog, gotPlayers)
	require.NoError(t, rankings.Clear(ctx))
	gotPlayers, err = rankings.List(ctx)
	require.NoError(t, err)
	require.Empty(t, gotPlayers)

	items := NewWatchlistRepository(store, logger)
	item := watchlist.Item{PlayerID: "p1", UserID: "u_1", AddedAt: testTime, Notes: "breakout"}
	require.NoError(t, items.Add(ctx, item))
	gotItems, err := items.ListByUser(ctx, "u_1")
	require.NoError(t, err)
	require.Equal(t, []watchlist.Item{item}, gotItems)
	removed, err := items.Remove(ctx, "u_1", "p1")
	require.NoError(t, err)
	require.True(t, removed)

	teams := NewTeamRepository(store, logger)
	team := myteam.Team{ID: "team_1", LeagueID: "lg_1", UserID: "u_1", Name: "Bench", PlayerIDs: []string{}, CreatedAt: testTime}
	require.NoError(t, teams.Create(ctx, team))
	team.AddPlayer("p7")
	require.NoError(t, teams.Update(ctx, team))
	gotTeam, ok, err := teams.GetByID(ctx, "team_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"p7"}, gotTeam.PlayerIDs)

	users := NewUserRepository(store, logger)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	u := user.User{ID: "u_1", Name: "Ann", Email: "ann@example.com", Username: "ann"}
	require.NoError(t, users.Create(ctx, user.Account{User: u, PasswordHash: hash}))
	gotUser, ok, err := users.GetByID(ctx, "u_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u, gotUser)
	gotUser, ok, err = users.GetByUsername(ctx, "ANN")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u, gotUser)

	sessions := NewSessionRepository(store, logger)
	require.NoError(t, sessions.Set(ctx, u))
	current, ok, err := sessions.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u, current)
	require.NoError(t, sessions.Clear(ctx))
	_, ok, err = sessions.Current(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRepositories_UnavailableStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	store.SetDisabled(true)
	logger := logging.NewNop()

	leagues := NewLeagueRepository(store, logger)
	list, err := leagues.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	err = leagues.Create(ctx, league.League{ID: "lg_1"})
	require.ErrorIs(t, err, kv.ErrUnavailable)

	for _, status := range Inspect(ctx, store) {
		require.Equal(t, collection.StateUnavailable, status.State)
	}
}

func TestCheatSheetRepository_LegacyIDListAndClear(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore(0)
	logger := logging.NewNop()
	require.NoError(t, store.Set(ctx, KeyCheatSheetDrafted, []byte(`["p3","p1"]`)))

	repo := NewCheatSheetRepository(store, logger)
	marks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []cheatsheet.Mark{{PlayerID: "p3"}, {PlayerID: "p1"}}, marks)

	statuses := Inspect(ctx, store)
	require.Equal(t, KeyCheatSheetDrafted, statuses[len(statuses)-1].Key)
	require.Equal(t, collection.StateOK, statuses[len(statuses)-1].State)
	require.Equal(t, 2, statuses[len(statuses)-1].Records)

	require.NoError(t, repo.Add(ctx, cheatsheet.Mark{PlayerID: "p9", MarkedAt: testTime}))
	require.NoError(t, repo.Add(ctx, cheatsheet.Mark{PlayerID: "p9", MarkedAt: testTime}))
	removed, err := repo.Remove(ctx, "p3")
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = repo.Remove(ctx, "p3")
	require.NoError(t, err)
	require.False(t, removed)

	marks, err = repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []cheatsheet.Mark{{PlayerID: "p1"}, {PlayerID: "p9", MarkedAt: testTime}}, marks)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err := store.Get(ctx, KeyCheatSheetDrafted)
	require.NoError(t, err)
	require.False(t, ok)
}
