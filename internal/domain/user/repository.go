package user

import "context"

// Repository describes account persistence needs from use cases.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (Account, bool, error)
	GetByID(ctx context.Context, userID string) (User, bool, error)
	// GetByUsername matches case-insensitively and returns the earliest
	// account when several share a username.
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	Create(ctx context.Context, account Account) error
}

// SessionRepository stores the user signed in on this machine.
type SessionRepository interface {
	Current(ctx context.Context) (User, bool, error)
	Set(ctx context.Context, u User) error
	Clear(ctx context.Context) error
}
