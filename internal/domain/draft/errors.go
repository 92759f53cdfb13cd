package draft

import "github.com/cockroachdb/errors"

var (
	ErrInvalidConfig     = errors.New("invalid draft configuration")
	ErrAlreadyStarted    = errors.New("draft already started")
	ErrDraftNotActive    = errors.New("draft is not active")
	ErrNotUserTurn       = errors.New("user is not on the clock")
	ErrPlayerUnavailable = errors.New("player is not available")
)

func invalidConfigf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
