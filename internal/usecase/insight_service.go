package usecase

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/insight"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/blueprint-fantasy/internal/platform/id"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type CreateInsightInput struct {
	Title      string `validate:"required,max=140"`
	Body       string `validate:"required,max=5000"`
	LeagueSlug string
}

type InsightService struct {
	insightRepo insight.Repository
	commentRepo insight.CommentRepository
	leagueRepo  league.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	clock       clockwork.Clock
	heat        func() int
}

func NewInsightService(
	insightRepo insight.Repository,
	commentRepo insight.CommentRepository,
	leagueRepo league.Repository,
	idGen idgen.Generator,
	clock clockwork.Clock,
	logger *logging.Logger,
) *InsightService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &InsightService{
		insightRepo: insightRepo,
		commentRepo: commentRepo,
		leagueRepo:  leagueRepo,
		idGen:       idGen,
		logger:      logger,
		clock:       clock,
		heat: func() int {
			return insight.MinHeat + rand.IntN(insight.HeatSpan)
		},
	}
}

func authorName(caller user.Principal) string {
	if name := strings.TrimSpace(caller.Name); name != "" {
		return name
	}
	return caller.Username
}

// CreateInsight posts an insight for the caller. Anonymous callers get
// ErrLoginRequired and nothing is written.
func (s *InsightService) CreateInsight(ctx context.Context, caller user.Principal, input CreateInsightInput) (insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.CreateInsight")
	defer span.End()

	if err := requireLogin(caller); err != nil {
		return insight.Insight{}, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	input.LeagueSlug = strings.TrimSpace(input.LeagueSlug)
	if err := validateInput(ctx, input); err != nil {
		return insight.Insight{}, err
	}

	if input.LeagueSlug != "" && s.leagueRepo != nil {
		_, exists, err := s.leagueRepo.GetBySlug(ctx, input.LeagueSlug)
		if err != nil {
			return insight.Insight{}, storageError(err, "get league by slug")
		}
		if !exists {
			return insight.Insight{}, notFoundf("league=%s", input.LeagueSlug)
		}
	}

	insightID, err := s.idGen.NewID("ins")
	if err != nil {
		return insight.Insight{}, errors.Wrap(err, "generate insight id")
	}

	item := insight.Insight{
		ID:         insightID,
		Title:      input.Title,
		Body:       input.Body,
		LeagueSlug: input.LeagueSlug,
		AuthorID:   caller.UserID,
		Author:     authorName(caller),
		CreatedAt:  s.clock.Now(),
		Heat:       s.heat(),
	}
	if err := item.Validate(); err != nil {
		return insight.Insight{}, errors.Wrap(ErrInvalidInput, err.Error())
	}

	if err := s.insightRepo.Create(ctx, item); err != nil {
		return insight.Insight{}, storageError(err, "create insight")
	}

	s.logger.InfoContext(ctx, "insight created", "insight_id", item.ID, "author_id", item.AuthorID)
	return item, nil
}

func (s *InsightService) GetInsight(ctx context.Context, insightID string) (insight.Insight, error) {
	insightID = strings.TrimSpace(insightID)
	if insightID == "" {
		return insight.Insight{}, invalidInputf("insight id is required")
	}

	item, exists, err := s.insightRepo.GetByID(ctx, insightID)
	if err != nil {
		return insight.Insight{}, storageError(err, "get insight")
	}
	if !exists {
		return insight.Insight{}, notFoundf("insight=%s", insightID)
	}
	return item, nil
}

// ListInsights returns insights newest first, optionally only those tagged
// with leagueSlug.
func (s *InsightService) ListInsights(ctx context.Context, leagueSlug string) ([]insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.ListInsights")
	defer span.End()

	items, err := s.insightRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list insights")
	}

	leagueSlug = strings.TrimSpace(leagueSlug)
	if leagueSlug == "" {
		return items, nil
	}
	out := make([]insight.Insight, 0, len(items))
	for _, item := range items {
		if item.LeagueSlug == leagueSlug {
			out = append(out, item)
		}
	}
	return out, nil
}

// ListInsightsByAuthor returns the insights u wrote, newest first. Imported
// insights without an author id match on the username, with or without a
// leading "@".
func (s *InsightService) ListInsightsByAuthor(ctx context.Context, u user.User) ([]insight.Insight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.ListInsightsByAuthor")
	defer span.End()

	if u.ID == "" {
		return nil, invalidInputf("author id is required")
	}

	items, err := s.insightRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list insights")
	}

	out := make([]insight.Insight, 0, len(items))
	for _, item := range items {
		if writtenBy(item, u) {
			out = append(out, item)
		}
	}
	return out, nil
}

func writtenBy(item insight.Insight, u user.User) bool {
	if item.AuthorID != "" {
		return item.AuthorID == u.ID
	}
	if u.Username == "" {
		return false
	}
	return strings.EqualFold(strings.TrimPrefix(item.Author, "@"), u.Username)
}

func (s *InsightService) AddComment(ctx context.Context, caller user.Principal, insightID, body string) (insight.Comment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightService.AddComment")
	defer span.End()

	if err := requireLogin(caller); err != nil {
		return insight.Comment{}, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return insight.Comment{}, invalidInputf("comment body is required")
	}
	if _, err := s.GetInsight(ctx, insightID); err != nil {
		return insight.Comment{}, err
	}

	commentID, err := s.idGen.NewID("c")
	if err != nil {
		return insight.Comment{}, errors.Wrap(err, "generate comment id")
	}

	c := insight.Comment{
		ID:        commentID,
		InsightID: strings.TrimSpace(insightID),
		AuthorID:  caller.UserID,
		Author:    authorName(caller),
		Body:      body,
		CreatedAt: s.clock.Now(),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return insight.Comment{}, storageError(err, "create comment")
	}

	s.logger.InfoContext(ctx, "comment added", "comment_id", c.ID, "insight_id", c.InsightID)
	return c, nil
}

func (s *InsightService) ListComments(ctx context.Context, insightID string) ([]insight.Comment, error) {
	insightID = strings.TrimSpace(insightID)
	if insightID == "" {
		return nil, invalidInputf("insight id is required")
	}

	comments, err := s.commentRepo.ListByInsight(ctx, insightID)
	if err != nil {
		return nil, storageError(err, "list comments")
	}
	return comments, nil
}
