package player

import (
	"github.com/cockroachdb/errors"
)

// Position is a basketball position label.
type Position string

const (
	PositionPointGuard    Position = "PG"
	PositionShootingGuard Position = "SG"
	PositionSmallForward  Position = "SF"
	PositionPowerForward  Position = "PF"
	PositionCenter        Position = "C"
)

var AllPositions = map[Position]struct{}{
	PositionPointGuard:    {},
	PositionShootingGuard: {},
	PositionSmallForward:  {},
	PositionPowerForward:  {},
	PositionCenter:        {},
}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// Stats are per-game averages. FG and FT are percentages.
type Stats struct {
	PPG float64
	RPG float64
	APG float64
	SPG float64
	BPG float64
	FG  float64
	FT  float64
	TOV float64
	GP  int
}

// Player is a catalog entry. Rank and ADP order the draft board.
type Player struct {
	ID       string
	Name     string
	Team     string
	Position Position
	Age      int
	Stats    Stats
	ADP      float64
	Rank     int
	Trend    Trend
	Injury   string
}

func (p Player) Healthy() bool {
	return p.Injury == ""
}

func (p Player) Validate() error {
	if p.ID == "" {
		return errors.New("player id is required")
	}
	if p.Name == "" {
		return errors.New("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return errors.Newf("invalid player position: %s", p.Position)
	}
	if p.Rank <= 0 {
		return errors.New("player rank must be greater than zero")
	}
	switch p.Trend {
	case TrendUp, TrendDown, TrendSame, "":
	default:
		return errors.Newf("invalid player trend: %s", p.Trend)
	}
	return nil
}

// Clone copies a slice of players so callers can mutate it freely.
func Clone(players []Player) []Player {
	if players == nil {
		return []Player{}
	}
	return append([]Player(nil), players...)
}

// Index maps player ids to players.
func Index(players []Player) map[string]Player {
	out := make(map[string]Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}
