package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/blueprint-fantasy/internal/platform/id"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/slug"
)

type CreateLeagueInput struct {
	Name       string `validate:"required,max=80"`
	Visibility string `validate:"omitempty,oneof=public private"`
}

type LeagueService struct {
	leagueRepo league.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	clock      clockwork.Clock
}

func NewLeagueService(leagueRepo league.Repository, idGen idgen.Generator, clock clockwork.Clock, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		logger:     logger,
		clock:      clock,
	}
}

// CreateLeague stores a league owned by the caller. The slug comes from the
// name; a taken slug gets a numeric suffix.
func (s *LeagueService) CreateLeague(ctx context.Context, caller user.Principal, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	if err := requireLogin(caller); err != nil {
		return league.League{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Visibility = strings.ToLower(strings.TrimSpace(input.Visibility))
	if err := validateInput(ctx, input); err != nil {
		return league.League{}, err
	}
	if input.Visibility == "" {
		input.Visibility = string(league.VisibilityPublic)
	}

	base := slug.Make(input.Name)
	if base == "" {
		return league.League{}, invalidInputf("league name %q has no usable characters", input.Name)
	}

	existing, err := s.leagueRepo.List(ctx)
	if err != nil {
		return league.League{}, storageError(err, "list leagues")
	}
	taken := make(map[string]struct{}, len(existing))
	for _, l := range existing {
		taken[l.Slug] = struct{}{}
	}

	leagueID, err := s.idGen.NewID("lg")
	if err != nil {
		return league.League{}, errors.Wrap(err, "generate league id")
	}

	item := league.League{
		ID: leagueID,
		Slug: slug.Unique(base, func(candidate string) bool {
			_, ok := taken[candidate]
			return ok
		}),
		Name:       input.Name,
		OwnerID:    caller.UserID,
		Visibility: league.Visibility(input.Visibility),
		CreatedAt:  s.clock.Now(),
	}
	if err := item.Validate(); err != nil {
		return league.League{}, errors.Wrap(ErrInvalidInput, err.Error())
	}

	if err := s.leagueRepo.Create(ctx, item); err != nil {
		return league.League{}, storageError(err, "create league")
	}

	s.logger.InfoContext(ctx, "league created", "league_id", item.ID, "slug", item.Slug, "owner_id", item.OwnerID)
	return item, nil
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list leagues")
	}

	return leagues, nil
}

// ListOwnedLeagues returns the caller's leagues in creation order.
func (s *LeagueService) ListOwnedLeagues(ctx context.Context, caller user.Principal) ([]league.League, error) {
	if err := requireLogin(caller); err != nil {
		return nil, err
	}

	return s.ListLeaguesByOwner(ctx, caller.UserID)
}

// ListLeaguesByOwner returns the leagues ownerID created, in creation order.
func (s *LeagueService) ListLeaguesByOwner(ctx context.Context, ownerID string) ([]league.League, error) {
	leagues, err := s.ListLeagues(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]league.League, 0, len(leagues))
	for _, l := range leagues {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *LeagueService) GetLeagueBySlug(ctx context.Context, leagueSlug string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeagueBySlug")
	defer span.End()

	leagueSlug = strings.TrimSpace(leagueSlug)
	if leagueSlug == "" {
		return league.League{}, invalidInputf("league slug is required")
	}

	item, exists, err := s.leagueRepo.GetBySlug(ctx, leagueSlug)
	if err != nil {
		return league.League{}, storageError(err, "get league by slug")
	}
	if !exists {
		return league.League{}, notFoundf("league=%s", leagueSlug)
	}

	return item, nil
}
