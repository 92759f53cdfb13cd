package usecase

import (
	"cmp"
	"context"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type PlayerSort string

const (
	SortByRank PlayerSort = "rank"
	SortByADP  PlayerSort = "adp"
	SortByPPG  PlayerSort = "ppg"
	SortByRPG  PlayerSort = "rpg"
	SortByAPG  PlayerSort = "apg"
	SortByName PlayerSort = "name"
)

// PlayerQuery filters and orders the board. Zero value lists everyone by
// rank.
type PlayerQuery struct {
	Position    player.Position
	Search      string
	HealthyOnly bool
	SortBy      PlayerSort
	Desc        bool
	Limit       int
}

const (
	minCompare = 2
	maxCompare = 5
)

type PlayerService struct {
	rankingRepo player.RankingRepository
	logger      *logging.Logger
	defaults    func() []player.Player
}

func NewPlayerService(rankingRepo player.RankingRepository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		rankingRepo: rankingRepo,
		logger:      logger,
		defaults:    player.DefaultCatalog,
	}
}

// Catalog returns the custom ranking list, or the default catalog when no
// custom list is stored.
func (s *PlayerService) Catalog(ctx context.Context) ([]player.Player, error) {
	ranked, err := s.rankingRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list player rankings")
	}
	if len(ranked) == 0 {
		return s.defaults(), nil
	}
	return ranked, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context, query PlayerQuery) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	query.Position = player.Position(strings.ToUpper(strings.TrimSpace(string(query.Position))))
	if query.Position != "" {
		if _, ok := player.AllPositions[query.Position]; !ok {
			return nil, invalidInputf("unknown position %q", query.Position)
		}
	}
	less, err := playerOrdering(query.SortBy)
	if err != nil {
		return nil, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	out := make([]player.Player, 0, len(catalog))
	for _, p := range catalog {
		if query.Position != "" && p.Position != query.Position {
			continue
		}
		if query.HealthyOnly && !p.Healthy() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.EqualFold(p.Team, search) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b player.Player) int {
		c := less(a, b)
		if query.Desc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.Rank, b.Rank)
		}
		return c
	})

	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func playerOrdering(sortBy PlayerSort) (func(a, b player.Player) int, error) {
	switch PlayerSort(strings.ToLower(strings.TrimSpace(string(sortBy)))) {
	case "", SortByRank:
		return func(a, b player.Player) int { return cmp.Compare(a.Rank, b.Rank) }, nil
	case SortByADP:
		return func(a, b player.Player) int { return cmp.Compare(a.ADP, b.ADP) }, nil
	case SortByPPG:
		return func(a, b player.Player) int { return cmp.Compare(a.Stats.PPG, b.Stats.PPG) }, nil
	case SortByRPG:
		return func(a, b player.Player) int { return cmp.Compare(a.Stats.RPG, b.Stats.RPG) }, nil
	case SortByAPG:
		return func(a, b player.Player) int { return cmp.Compare(a.Stats.APG, b.Stats.APG) }, nil
	case SortByName:
		return func(a, b player.Player) int { return strings.Compare(a.Name, b.Name) }, nil
	default:
		return nil, invalidInputf("unknown sort %q", sortBy)
	}
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, invalidInputf("player id is required")
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return player.Player{}, err
	}
	idx := slices.IndexFunc(catalog, func(p player.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return player.Player{}, notFoundf("player=%s", playerID)
	}
	return catalog[idx], nil
}

// ComparePlayers returns the requested players in request order.
func (s *PlayerService) ComparePlayers(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	ids := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, raw := range playerIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) < minCompare || len(ids) > maxCompare {
		return nil, invalidInputf("compare needs between %d and %d distinct players, got %d", minCompare, maxCompare, len(ids))
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	byID := player.Index(catalog)

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, notFoundf("player=%s", id)
		}
		out = append(out, p)
	}
	return out, nil
}

// UpdateRanking moves a player to newRank, re-sorts the board by rank and
// stores it as the custom ranking list.
func (s *PlayerService) UpdateRanking(ctx context.Context, playerID string, newRank int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateRanking")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, invalidInputf("player id is required")
	}
	if newRank < 1 {
		return nil, invalidInputf("rank must be >= 1, got %d", newRank)
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(catalog, func(p player.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return nil, notFoundf("player=%s", playerID)
	}

	catalog[idx].Rank = newRank
	slices.SortStableFunc(catalog, func(a, b player.Player) int { return cmp.Compare(a.Rank, b.Rank) })

	if err := s.rankingRepo.Replace(ctx, catalog); err != nil {
		return nil, storageError(err, "store player rankings")
	}

	s.logger.InfoContext(ctx, "player ranking updated", "player_id", playerID, "rank", newRank)
	return catalog, nil
}

// UpdateADP overwrites the average draft position of the given players and
// stores the result as the custom ranking list. Unknown ids are ignored.
func (s *PlayerService) UpdateADP(ctx context.Context, adp map[string]float64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdateADP")
	defer span.End()

	if len(adp) == 0 {
		return 0, nil
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range catalog {
		if value, ok := adp[catalog[i].ID]; ok && value > 0 {
			catalog[i].ADP = value
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}

	if err := s.rankingRepo.Replace(ctx, catalog); err != nil {
		return 0, storageError(err, "store player rankings")
	}

	s.logger.InfoContext(ctx, "player adp updated", "players", updated)
	return updated, nil
}

type catalogFile struct {
	Players []catalogEntry `yaml:"players"`
}

type catalogEntry struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Team     string  `yaml:"team"`
	Position string  `yaml:"position"`
	Age      int     `yaml:"age"`
	PPG      float64 `yaml:"ppg"`
	RPG      float64 `yaml:"rpg"`
	APG      float64 `yaml:"apg"`
	SPG      float64 `yaml:"spg"`
	BPG      float64 `yaml:"bpg"`
	FG       float64 `yaml:"fg"`
	FT       float64 `yaml:"ft"`
	TOV      float64 `yaml:"tov"`
	GP       int     `yaml:"gp"`
	ADP      float64 `yaml:"adp"`
	Rank     int     `yaml:"rank"`
	Trend    string  `yaml:"trend"`
	Injury   string  `yaml:"injury"`
}

func (e catalogEntry) toDomain() player.Player {
	trend := player.Trend(strings.ToLower(strings.TrimSpace(e.Trend)))
	if trend == "" {
		trend = player.TrendSame
	}
	return player.Player{
		ID:       strings.TrimSpace(e.ID),
		Name:     strings.TrimSpace(e.Name),
		Team:     strings.ToUpper(strings.TrimSpace(e.Team)),
		Position: player.Position(strings.ToUpper(strings.TrimSpace(e.Position))),
		Age:      e.Age,
		Stats: player.Stats{
			PPG: e.PPG,
			RPG: e.RPG,
			APG: e.APG,
			SPG: e.SPG,
			BPG: e.BPG,
			FG:  e.FG,
			FT:  e.FT,
			TOV: e.TOV,
			GP:  e.GP,
		},
		ADP:    e.ADP,
		Rank:   e.Rank,
		Trend:  trend,
		Injury: strings.TrimSpace(e.Injury),
	}
}

// ImportCatalog replaces the ranking list with players read from a YAML
// document with a top-level "players" list.
func (s *PlayerService) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ImportCatalog")
	defer span.End()

	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "decode catalog: %v", err)
	}
	if len(file.Players) == 0 {
		return 0, invalidInputf("catalog has no players")
	}

	players := make([]player.Player, 0, len(file.Players))
	seen := make(map[string]struct{}, len(file.Players))
	for i, entry := range file.Players {
		p := entry.toDomain()
		if err := p.Validate(); err != nil {
			return 0, errors.Wrapf(ErrInvalidInput, "player #%d: %v", i+1, err)
		}
		if _, dup := seen[p.ID]; dup {
			return 0, invalidInputf("duplicate player id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
		players = append(players, p)
	}
	slices.SortStableFunc(players, func(a, b player.Player) int { return cmp.Compare(a.Rank, b.Rank) })

	if err := s.rankingRepo.Replace(ctx, players); err != nil {
		return 0, storageError(err, "store player rankings")
	}

	s.logger.InfoContext(ctx, "player catalog imported", "players", len(players))
	return len(players), nil
}

// ResetRankings drops the custom ranking list so the default catalog applies.
func (s *PlayerService) ResetRankings(ctx context.Context) error {
	if err := s.rankingRepo.Clear(ctx); err != nil {
		return storageError(err, "clear player rankings")
	}
	s.logger.InfoContext(ctx, "player rankings reset")
	return nil
}
