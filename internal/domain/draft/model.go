package draft

import (
	"time"
)

// Type is the pick order of a draft.
type Type string

const (
	TypeSnake  Type = "snake"
	TypeLinear Type = "linear"
	// TypeAuction has no nomination model here and is sequenced like linear.
	TypeAuction Type = "auction"
)

var AllTypes = map[Type]struct{}{
	TypeSnake:   {},
	TypeLinear:  {},
	TypeAuction: {},
}

type Status string

const (
	StatusSetup     Status = "setup"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Origin tells whether a pick came from the user or a simulated opponent.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginSimulated Origin = "simulated"
)

const (
	MinTeams  = 2
	MaxTeams  = 20
	MinRounds = 1
	MaxRounds = 30
)

// Draft is one mock draft run. UserSeat is 1-indexed; zero means every seat
// is simulated.
type Draft struct {
	ID           string
	Name         string
	OwnerID      string
	LeagueID     string
	Type         Type
	TeamCount    int
	RoundCount   int
	UserSeat     int
	Status       Status
	CurrentRound int
	CurrentPick  int
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

func (d Draft) Order() Order {
	return Order{Type: d.Type, TeamCount: d.TeamCount, RoundCount: d.RoundCount}
}

// Validate checks the sequencing configuration.
func (d Draft) Validate() error {
	if err := d.Order().Validate(); err != nil {
		return err
	}
	if d.UserSeat < 0 || d.UserSeat > d.TeamCount {
		return invalidConfigf("user seat must be between 1 and %d, got %d", d.TeamCount, d.UserSeat)
	}
	return nil
}

// Pick is one persisted selection. Number is the absolute pick across all
// rounds.
type Pick struct {
	ID        string
	DraftID   string
	Round     int
	Number    int
	PlayerID  string
	Seat      int
	Origin    Origin
	Timestamp time.Time
}
