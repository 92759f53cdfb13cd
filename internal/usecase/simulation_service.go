package usecase

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

const maxSimulationRuns = 10000

type SimulateADPInput struct {
	Runs       int
	Type       string
	TeamCount  int
	RoundCount int
	// Seed makes runs reproducible. Zero picks a random seed.
	Seed uint64
	// Apply writes the averaged positions into the ranking list.
	Apply bool
}

// PlayerADP is the average absolute pick of a player across the runs that
// drafted them.
type PlayerADP struct {
	PlayerID string
	Name     string
	ADP      float64
	Drafted  int
}

type SimulationReport struct {
	Runs    int
	Failed  int
	Players []PlayerADP
	Applied int
}

// SimulationService runs fully simulated drafts to estimate average draft
// position.
type SimulationService struct {
	players *PlayerService
	workers int
	topK    int
	logger  *logging.Logger
}

func NewSimulationService(players *PlayerService, workers, topK int, logger *logging.Logger) *SimulationService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = 4
	}
	if topK <= 0 {
		topK = draft.DefaultTopK
	}

	return &SimulationService{
		players: players,
		workers: workers,
		topK:    topK,
		logger:  logger,
	}
}

type runResult struct {
	picks map[string]int
	err   error
}

func (s *SimulationService) SimulateADP(ctx context.Context, input SimulateADPInput) (SimulationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SimulationService.SimulateADP",
		attribute.Int("simulation.runs", input.Runs),
		attribute.Int("simulation.workers", s.workers),
	)
	defer span.End()

	if input.Runs < 1 || input.Runs > maxSimulationRuns {
		return SimulationReport{}, invalidInputf("runs must be between 1 and %d, got %d", maxSimulationRuns, input.Runs)
	}
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Type == "" {
		input.Type = string(draft.TypeSnake)
	}
	template := draft.Draft{
		Type:       draft.Type(input.Type),
		TeamCount:  input.TeamCount,
		RoundCount: input.RoundCount,
	}
	if err := template.Validate(); err != nil {
		return SimulationReport{}, draftError(err)
	}

	catalog, err := s.players.Catalog(ctx)
	if err != nil {
		return SimulationReport{}, err
	}

	seed := input.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return SimulationReport{}, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	results := make([]runResult, input.Runs)
	var workers sync.WaitGroup
	for i := 0; i < input.Runs; i++ {
		run := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if ctx.Err() != nil {
				results[run] = runResult{err: ctx.Err()}
				return
			}

			var catcher panics.Catcher
			catcher.Try(func() {
				results[run] = s.simulateOnce(template, catalog, seed, uint64(run))
			})
			if recovered := catcher.Recovered(); recovered != nil {
				results[run] = runResult{err: recovered.AsError()}
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return SimulationReport{}, errors.Wrap(err, "submit simulation to worker pool")
		}
	}
	workers.Wait()

	report := aggregateADP(results, catalog)
	for _, res := range results {
		if res.err != nil {
			s.logger.WarnContext(ctx, "simulated draft failed", "error", res.err)
		}
	}
	if report.Failed == report.Runs {
		return report, errors.Newf("all %d simulated drafts failed", report.Runs)
	}

	if input.Apply {
		adp := make(map[string]float64, len(report.Players))
		for _, p := range report.Players {
			adp[p.PlayerID] = p.ADP
		}
		applied, err := s.players.UpdateADP(ctx, adp)
		if err != nil {
			return report, err
		}
		report.Applied = applied
	}

	s.logger.InfoContext(ctx, "adp simulation finished",
		"runs", report.Runs,
		"failed", report.Failed,
		"players", len(report.Players),
		"applied", report.Applied,
	)
	return report, nil
}

func (s *SimulationService) simulateOnce(template draft.Draft, catalog []player.Player, seed, stream uint64) runResult {
	policy := draft.NewTopKRandom(s.topK, rand.NewPCG(seed, stream))
	session, err := draft.NewSession(template, catalog, policy)
	if err != nil {
		return runResult{err: err}
	}
	selections, err := session.Start()
	if err != nil {
		return runResult{err: err}
	}

	picks := make(map[string]int, len(selections))
	for _, sel := range selections {
		picks[sel.Player.ID] = sel.Pick
	}
	return runResult{picks: picks}
}

func aggregateADP(results []runResult, catalog []player.Player) SimulationReport {
	report := SimulationReport{Runs: len(results)}
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, res := range results {
		if res.err != nil {
			report.Failed++
			continue
		}
		for playerID, pick := range res.picks {
			sums[playerID] += pick
			counts[playerID]++
		}
	}

	byID := player.Index(catalog)
	for playerID, n := range counts {
		report.Players = append(report.Players, PlayerADP{
			PlayerID: playerID,
			Name:     byID[playerID].Name,
			ADP:      float64(sums[playerID]) / float64(n),
			Drafted:  n,
		})
	}
	slices.SortFunc(report.Players, func(a, b PlayerADP) int {
		if c := cmp.Compare(a.ADP, b.ADP); c != 0 {
			return c
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	return report
}
