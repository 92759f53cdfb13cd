package cheatsheet

import "context"

// Repository stores the drafted marks of the single local cheat sheet.
type Repository interface {
	List(ctx context.Context) ([]Mark, error)
	Add(ctx context.Context, mark Mark) error
	Remove(ctx context.Context, playerID string) (bool, error)
	Clear(ctx context.Context) error
}
