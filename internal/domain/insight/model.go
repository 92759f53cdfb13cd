package insight

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Insight is a short analysis post. Heat is a display score.
type Insight struct {
	ID         string
	Title      string
	Body       string
	LeagueSlug string
	AuthorID   string
	Author     string
	CreatedAt  time.Time
	Heat       int
}

type Comment struct {
	ID        string
	InsightID string
	AuthorID  string
	Author    string
	Body      string
	CreatedAt time.Time
}

const (
	MinHeat  = 80
	HeatSpan = 200
)

func (i Insight) Validate() error {
	if i.ID == "" {
		return errors.New("insight id is required")
	}
	if i.Title == "" {
		return errors.New("insight title is required")
	}
	if i.Body == "" {
		return errors.New("insight body is required")
	}
	return nil
}

func (c Comment) Validate() error {
	if c.ID == "" {
		return errors.New("comment id is required")
	}
	if c.InsightID == "" {
		return errors.New("comment insight id is required")
	}
	if c.Body == "" {
		return errors.New("comment body is required")
	}
	return nil
}
