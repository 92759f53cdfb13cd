package usecase

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/kv"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrLoginRequired      = errors.Wrap(ErrUnauthorized, "login required")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func invalidInputf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

func notFoundf(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// storageError wraps a repository failure. Store outages and quota failures
// are marked as ErrStorageUnavailable.
func storageError(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, op)
	if errors.Is(err, kv.ErrUnavailable) || errors.Is(err, kv.ErrQuotaExceeded) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Mark(wrapped, ErrStorageUnavailable)
	}
	return wrapped
}

func requireLogin(p user.Principal) error {
	if p.Anonymous() {
		return ErrLoginRequired
	}
	return nil
}
