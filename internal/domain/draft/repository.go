package draft

import "context"

// Repository describes draft persistence needs from use cases.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]Draft, error)
	GetByID(ctx context.Context, draftID string) (Draft, bool, error)
	Create(ctx context.Context, d Draft) error
	Update(ctx context.Context, d Draft) error
}

// PickRepository is an append-only pick log.
type PickRepository interface {
	ListByDraft(ctx context.Context, draftID string) ([]Pick, error)
	Append(ctx context.Context, picks ...Pick) error
}
