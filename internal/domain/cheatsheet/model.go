package cheatsheet

import (
	"fmt"
	"time"
)

// Tier groups players on the cheat sheet by overall rank.
type Tier int

const (
	TierElite Tier = iota + 1
	TierFirstRound
	TierSecondRound
	TierMidRound
	TierLateRound
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierElite, TierFirstRound, TierSecondRound, TierMidRound, TierLateRound}

// tierCeilings holds the last rank of each tier except the open-ended last.
var tierCeilings = [...]int{5, 12, 24, 50}

// TierOf returns the tier a player of the given rank falls in.
func TierOf(rank int) Tier {
	for i, ceiling := range tierCeilings {
		if rank <= ceiling {
			return Tier(i + 1)
		}
	}
	return TierLateRound
}

func (t Tier) Label() string {
	switch t {
	case TierElite:
		return "Elite"
	case TierFirstRound:
		return "First round"
	case TierSecondRound:
		return "Second round"
	case TierMidRound:
		return "Mid round"
	case TierLateRound:
		return "Late round"
	default:
		return "Unknown"
	}
}

func (t Tier) String() string {
	return fmt.Sprintf("Tier %d - %s", int(t), t.Label())
}

// Mark crosses a player off the cheat sheet as taken in a live draft.
type Mark struct {
	PlayerID string
	MarkedAt time.Time
}
