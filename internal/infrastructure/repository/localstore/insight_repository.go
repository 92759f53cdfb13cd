package localstore

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/insight"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/collection"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type insightRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	LeagueSlug string `json:"leagueSlug,omitempty"`
	AuthorID   string `json:"authorId,omitempty"`
	Author     string `json:"author"`
	CreatedAt  int64  `json:"createdAt"`
	Heat       int    `json:"heat"`
}

func (r insightRecord) toDomain() insight.Insight {
	return insight.Insight{
		ID:         r.ID,
		Title:      r.Title,
		Body:       r.Body,
		LeagueSlug: r.LeagueSlug,
		AuthorID:   r.AuthorID,
		Author:     r.Author,
		CreatedAt:  fromMillis(r.CreatedAt),
		Heat:       r.Heat,
	}
}

type commentRecord struct {
	ID        string `json:"id"`
	InsightID string `json:"insightId"`
	AuthorID  string `json:"authorId,omitempty"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"`
}

func (r commentRecord) toDomain() insight.Comment {
	return insight.Comment{
		ID:        r.ID,
		InsightID: r.InsightID,
		AuthorID:  r.AuthorID,
		Author:    r.Author,
		Body:      r.Body,
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

type InsightRepository struct {
	insights *collection.Collection[insightRecord]
}

func NewInsightRepository(store kv.Store, logger *logging.Logger) *InsightRepository {
	return &InsightRepository{
		insights: newCollection(store, KeyInsights, nil, func(r insightRecord) string { return r.ID }, logger),
	}
}

func (r *InsightRepository) List(ctx context.Context) ([]insight.Insight, error) {
	records := r.insights.List(ctx)
	out := make([]insight.Insight, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *InsightRepository) GetByID(ctx context.Context, insightID string) (insight.Insight, bool, error) {
	rec, ok := r.insights.Get(ctx, insightID)
	if !ok {
		return insight.Insight{}, false, nil
	}
	return rec.toDomain(), true, nil
}

// Create puts the insight first so the feed reads newest first.
func (r *InsightRepository) Create(ctx context.Context, in insight.Insight) error {
	rec := insightRecord{
		ID:         in.ID,
		Title:      in.Title,
		Body:       in.Body,
		LeagueSlug: in.LeagueSlug,
		AuthorID:   in.AuthorID,
		Author:     in.Author,
		CreatedAt:  toMillis(in.CreatedAt),
		Heat:       in.Heat,
	}
	if err := r.insights.Prepend(ctx, rec); err != nil {
		return errors.Wrap(err, "create insight")
	}
	return nil
}

type CommentRepository struct {
	comments *collection.Collection[commentRecord]
}

func NewCommentRepository(store kv.Store, logger *logging.Logger) *CommentRepository {
	return &CommentRepository{
		comments: newCollection(store, KeyComments, nil, func(r commentRecord) string { return r.ID }, logger),
	}
}

func (r *CommentRepository) ListByInsight(ctx context.Context, insightID string) ([]insight.Comment, error) {
	var out []insight.Comment
	for _, rec := range r.comments.List(ctx) {
		if rec.InsightID == insightID {
			out = append(out, rec.toDomain())
		}
	}
	return out, nil
}

func (r *CommentRepository) Create(ctx context.Context, c insight.Comment) error {
	rec := commentRecord{
		ID:        c.ID,
		InsightID: c.InsightID,
		AuthorID:  c.AuthorID,
		Author:    c.Author,
		Body:      c.Body,
		CreatedAt: toMillis(c.CreatedAt),
	}
	if err := r.comments.Append(ctx, rec); err != nil {
		return errors.Wrap(err, "create comment")
	}
	return nil
}
