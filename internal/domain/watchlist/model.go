package watchlist

import "time"

// Item marks a player a user is tracking. Unique per user and player.
type Item struct {
	PlayerID string
	UserID   string
	AddedAt  time.Time
	Notes    string
}
