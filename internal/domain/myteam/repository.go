package myteam

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	Create(ctx context.Context, t Team) error
	Update(ctx context.Context, t Team) error
}
