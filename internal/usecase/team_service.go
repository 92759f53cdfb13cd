package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/myteam"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/blueprint-fantasy/internal/platform/id"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type CreateTeamInput struct {
	LeagueSlug string
	Name       string `validate:"required,max=80"`
}

// TeamService manages the caller's own rosters.
type TeamService struct {
	teamRepo   myteam.Repository
	leagueRepo league.Repository
	players    *PlayerService
	idGen      idgen.Generator
	logger     *logging.Logger
	clock      clockwork.Clock
}

func NewTeamService(
	teamRepo myteam.Repository,
	leagueRepo league.Repository,
	players *PlayerService,
	idGen idgen.Generator,
	clock clockwork.Clock,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		players:    players,
		idGen:      idGen,
		logger:     logger,
		clock:      clock,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, caller user.Principal, input CreateTeamInput) (myteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	if err := requireLogin(caller); err != nil {
		return myteam.Team{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.LeagueSlug = strings.TrimSpace(input.LeagueSlug)
	if err := validateInput(ctx, input); err != nil {
		return myteam.Team{}, err
	}

	leagueID := ""
	if input.LeagueSlug != "" {
		lg, exists, err := s.leagueRepo.GetBySlug(ctx, input.LeagueSlug)
		if err != nil {
			return myteam.Team{}, storageError(err, "get league by slug")
		}
		if !exists {
			return myteam.Team{}, notFoundf("league=%s", input.LeagueSlug)
		}
		leagueID = lg.ID
	}

	teamID, err := s.idGen.NewID("team")
	if err != nil {
		return myteam.Team{}, errors.Wrap(err, "generate team id")
	}

	t := myteam.Team{
		ID:        teamID,
		LeagueID:  leagueID,
		UserID:    caller.UserID,
		Name:      input.Name,
		PlayerIDs: []string{},
		CreatedAt: s.clock.Now(),
	}
	if err := t.Validate(); err != nil {
		return myteam.Team{}, errors.Wrap(ErrInvalidInput, err.Error())
	}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return myteam.Team{}, storageError(err, "create team")
	}

	s.logger.InfoContext(ctx, "team created", "team_id", t.ID, "user_id", t.UserID)
	return t, nil
}

func (s *TeamService) ListTeams(ctx context.Context, caller user.Principal) ([]myteam.Team, error) {
	if err := requireLogin(caller); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, storageError(err, "list teams")
	}
	return teams, nil
}

// GetTeam returns one of the caller's teams. Teams owned by someone else are
// reported as not found.
func (s *TeamService) GetTeam(ctx context.Context, caller user.Principal, teamID string) (myteam.Team, error) {
	if err := requireLogin(caller); err != nil {
		return myteam.Team{}, err
	}

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return myteam.Team{}, invalidInputf("team id is required")
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return myteam.Team{}, storageError(err, "get team")
	}
	if !exists || t.UserID != caller.UserID {
		return myteam.Team{}, notFoundf("team=%s", teamID)
	}
	return t, nil
}

// AddPlayer is idempotent: adding a rostered player is a no-op.
func (s *TeamService) AddPlayer(ctx context.Context, caller user.Principal, teamID, playerID string) (myteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayer")
	defer span.End()

	t, err := s.GetTeam(ctx, caller, teamID)
	if err != nil {
		return myteam.Team{}, err
	}
	p, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return myteam.Team{}, err
	}

	if !t.AddPlayer(p.ID) {
		return t, nil
	}
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return myteam.Team{}, storageError(err, "update team")
	}

	s.logger.InfoContext(ctx, "player added to team", "team_id", t.ID, "player_id", p.ID)
	return t, nil
}

func (s *TeamService) RemovePlayer(ctx context.Context, caller user.Principal, teamID, playerID string) (myteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemovePlayer")
	defer span.End()

	t, err := s.GetTeam(ctx, caller, teamID)
	if err != nil {
		return myteam.Team{}, err
	}

	if !t.RemovePlayer(strings.TrimSpace(playerID)) {
		return t, nil
	}
	if err := s.teamRepo.Update(ctx, t); err != nil {
		return myteam.Team{}, storageError(err, "update team")
	}

	s.logger.InfoContext(ctx, "player removed from team", "team_id", t.ID, "player_id", playerID)
	return t, nil
}
