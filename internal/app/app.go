package app

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/config"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/kv/sqlite"
	cacherepo "github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/blueprint-fantasy/internal/infrastructure/repository/localstore"
	idgen "github.com/riskibarqy/blueprint-fantasy/internal/platform/id"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

// App holds the wired services for one process.
type App struct {
	Store kv.Store

	breaker *resilience.CircuitBreaker

	Auth       *usecase.AuthService
	Leagues    *usecase.LeagueService
	Insights   *usecase.InsightService
	Players    *usecase.PlayerService
	Watchlist  *usecase.WatchlistService
	CheatSheet *usecase.CheatSheetService
	Profiles   *usecase.ProfileService
	Teams      *usecase.TeamService
	Drafts     *usecase.DraftService
	Simulation *usecase.SimulationService

	closers []func() error
}

type Option func(*options)

type options struct {
	clock clockwork.Clock
	store kv.Store
}

// WithClock replaces the wall clock used for timestamps and the breaker.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithStore bypasses STORAGE_DRIVER and uses store as the byte store.
func WithStore(store kv.Store) Option {
	return func(o *options) { o.store = store }
}

func New(cfg config.Config, logger *logging.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	o := options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{}
	base := o.store
	if base == nil {
		opened, closer, err := openStore(cfg, o.clock)
		switch {
		case errors.Is(err, errUnsupportedDriver):
			return nil, err
		case err != nil:
			// Reads still work against an unavailable store: collections read
			// as empty and the catalog falls back to the defaults.
			logger.Warn("storage unavailable, running without persistence",
				"driver", cfg.StorageDriver,
				"path", cfg.StoragePath,
				"error", err,
			)
			opened = unavailableStore()
		case closer != nil:
			a.closers = append(a.closers, closer)
		}
		base = opened
	}

	store := base
	if cfg.StorageCircuitEnabled {
		a.breaker = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.StorageCircuitFailureCount,
			OpenTimeout:      cfg.StorageCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StorageCircuitHalfOpenMaxReq,
		}, o.clock)
		store = kv.NewGuarded(base, a.breaker, logger.Named("storage"))
	}
	a.Store = store

	var (
		rankingRepo player.RankingRepository = localstore.NewRankingRepository(store, logger)
		leagueRepo  league.Repository        = localstore.NewLeagueRepository(store, logger)
	)
	if cfg.CacheEnabled {
		rankingRepo = cacherepo.NewRankingRepository(rankingRepo, cfg.CacheTTL, o.clock)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, cfg.CacheTTL, o.clock)
	}

	ids := idgen.NewRandomGenerator(o.clock)
	draftCfg := usecase.DraftConfig{
		OpponentTopK:         cfg.DraftOpponentTopK,
		ReportSimulatedPicks: cfg.DraftReportSimulatedPicks,
	}

	userRepo := localstore.NewUserRepository(store, logger)
	watchlistRepo := localstore.NewWatchlistRepository(store, logger)

	a.Auth = usecase.NewAuthService(
		userRepo,
		localstore.NewSessionRepository(store, logger),
		ids,
		logger,
	)
	a.Leagues = usecase.NewLeagueService(leagueRepo, ids, o.clock, logger)
	a.Insights = usecase.NewInsightService(
		localstore.NewInsightRepository(store, logger),
		localstore.NewCommentRepository(store, logger),
		leagueRepo,
		ids,
		o.clock,
		logger,
	)
	a.Players = usecase.NewPlayerService(rankingRepo, logger)
	a.Watchlist = usecase.NewWatchlistService(watchlistRepo, a.Players, o.clock, logger)
	a.CheatSheet = usecase.NewCheatSheetService(localstore.NewCheatSheetRepository(store, logger), watchlistRepo, a.Players, o.clock, logger)
	a.Profiles = usecase.NewProfileService(userRepo, a.Leagues, a.Insights, logger)
	a.Teams = usecase.NewTeamService(localstore.NewTeamRepository(store, logger), leagueRepo, a.Players, ids, o.clock, logger)
	a.Drafts = usecase.NewDraftService(
		localstore.NewDraftRepository(store, logger),
		localstore.NewPickRepository(store, logger),
		leagueRepo,
		a.Players,
		ids,
		o.clock,
		draftCfg,
		logger,
	)
	a.Simulation = usecase.NewSimulationService(a.Players, cfg.SimulationWorkers, cfg.DraftOpponentTopK, logger)

	logger.Debug("app wired",
		"storage_driver", cfg.StorageDriver,
		"circuit_enabled", cfg.StorageCircuitEnabled,
		"cache_enabled", cfg.CacheEnabled,
	)
	return a, nil
}

var errUnsupportedDriver = errors.New("unsupported storage driver")

func unavailableStore() kv.Store {
	store := kv.NewMemoryStore(0)
	store.SetDisabled(true)
	return store
}

func openStore(cfg config.Config, clock clockwork.Clock) (kv.Store, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return kv.NewMemoryStore(cfg.StorageQuotaBytes), nil, nil
	case config.StorageSQLite, "":
		store, err := sqlite.Open(cfg.StoragePath, sqlite.WithClock(clock))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open sqlite store %s", cfg.StoragePath)
		}
		return store, store.Close, nil
	default:
		return nil, nil, errors.Wrapf(errUnsupportedDriver, "driver %q", cfg.StorageDriver)
	}
}

// Available probes the byte store with a write and a delete.
func (a *App) Available(ctx context.Context) bool {
	return kv.Available(ctx, a.Store)
}

// Breaker reports the storage circuit breaker, if one is configured.
func (a *App) Breaker() (resilience.Snapshot, bool) {
	if a.breaker == nil {
		return resilience.Snapshot{}, false
	}
	return a.breaker.Snapshot(), true
}

// Inspect reports the state of every persisted collection.
func (a *App) Inspect(ctx context.Context) []localstore.CollectionStatus {
	return localstore.Inspect(ctx, a.Store)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
