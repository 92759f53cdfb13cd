package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetBySlug(ctx context.Context, slug string) (League, bool, error)
	Create(ctx context.Context, l League) error
}
