package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/insight"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

// Profile is the public page of a user. Own is set when the caller is that
// user; only then are private leagues included.
type Profile struct {
	User     user.User
	Own      bool
	Leagues  []league.League
	Insights []insight.Insight
}

type ProfileService struct {
	userRepo user.Repository
	leagues  *LeagueService
	insights *InsightService
	logger   *logging.Logger
}

func NewProfileService(userRepo user.Repository, leagues *LeagueService, insights *InsightService, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileService{
		userRepo: userRepo,
		leagues:  leagues,
		insights: insights,
		logger:   logger,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, caller user.Principal, username string) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile")
	defer span.End()

	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return Profile{}, invalidInputf("username is required")
	}

	u, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return Profile{}, storageError(err, "get user by username")
	}
	if !exists {
		return Profile{}, notFoundf("user=%s", username)
	}

	profile := Profile{User: u, Own: caller.UserID == u.ID}

	owned, err := s.leagues.ListLeaguesByOwner(ctx, u.ID)
	if err != nil {
		return Profile{}, err
	}
	profile.Leagues = make([]league.League, 0, len(owned))
	for _, l := range owned {
		if profile.Own || l.Visibility != league.VisibilityPrivate {
			profile.Leagues = append(profile.Leagues, l)
		}
	}

	profile.Insights, err = s.insights.ListInsightsByAuthor(ctx, u)
	if err != nil {
		return Profile{}, err
	}
	return profile, nil
}
