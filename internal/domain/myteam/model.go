package myteam

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
)

// Team is a user's own roster inside a league.
type Team struct {
	ID        string
	LeagueID  string
	UserID    string
	Name      string
	PlayerIDs []string
	CreatedAt time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return errors.New("team id is required")
	}
	if t.UserID == "" {
		return errors.New("team owner is required")
	}
	if t.Name == "" {
		return errors.New("team name is required")
	}
	return nil
}

// AddPlayer appends playerID unless it is already on the roster.
func (t *Team) AddPlayer(playerID string) bool {
	if slices.Contains(t.PlayerIDs, playerID) {
		return false
	}
	t.PlayerIDs = append(t.PlayerIDs, playerID)
	return true
}

func (t *Team) RemovePlayer(playerID string) bool {
	before := len(t.PlayerIDs)
	t.PlayerIDs = slices.DeleteFunc(t.PlayerIDs, func(id string) bool { return id == playerID })
	return len(t.PlayerIDs) != before
}
