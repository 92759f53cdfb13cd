package insight

import "context"

// Repository keeps insights newest first.
type Repository interface {
	List(ctx context.Context) ([]Insight, error)
	GetByID(ctx context.Context, insightID string) (Insight, bool, error)
	Create(ctx context.Context, in Insight) error
}

type CommentRepository interface {
	ListByInsight(ctx context.Context, insightID string) ([]Comment, error)
	Create(ctx context.Context, c Comment) error
}
