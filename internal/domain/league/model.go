package league

import (
	"time"

	"github.com/cockroachdb/errors"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// League is a user-created fantasy league addressed by its slug.
type League struct {
	ID         string
	Slug       string
	Name       string
	OwnerID    string
	Visibility Visibility
	CreatedAt  time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return errors.New("league id is required")
	}
	if l.Slug == "" {
		return errors.New("league slug is required")
	}
	if l.Name == "" {
		return errors.New("league name is required")
	}
	if l.OwnerID == "" {
		return errors.New("league owner is required")
	}
	switch l.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	default:
		return errors.Newf("invalid league visibility: %s", l.Visibility)
	}
	return nil
}
