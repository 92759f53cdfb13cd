package draft

// Order computes which seat is on the clock for an absolute pick number.
// Pick numbers and seats are 1-indexed.
type Order struct {
	Type       Type
	TeamCount  int
	RoundCount int
}

func (o Order) Validate() error {
	if _, ok := AllTypes[o.Type]; !ok {
		return invalidConfigf("unknown draft type %q", o.Type)
	}
	if o.TeamCount < MinTeams || o.TeamCount > MaxTeams {
		return invalidConfigf("team count must be between %d and %d, got %d", MinTeams, MaxTeams, o.TeamCount)
	}
	if o.RoundCount < MinRounds || o.RoundCount > MaxRounds {
		return invalidConfigf("round count must be between %d and %d, got %d", MinRounds, MaxRounds, o.RoundCount)
	}
	return nil
}

func (o Order) TotalPicks() int {
	if o.TeamCount <= 0 || o.RoundCount <= 0 {
		return 0
	}
	return o.TeamCount * o.RoundCount
}

// RoundOf returns ceil(pick / teams).
func (o Order) RoundOf(pick int) int {
	if o.TeamCount <= 0 || pick <= 0 {
		return 0
	}
	return (pick + o.TeamCount - 1) / o.TeamCount
}

func (o Order) SeatInRound(pick int) int {
	if o.TeamCount <= 0 || pick <= 0 {
		return 0
	}
	return (pick-1)%o.TeamCount + 1
}

// SeatOnClock reverses the order on even rounds of a snake draft.
func (o Order) SeatOnClock(pick int) int {
	seat := o.SeatInRound(pick)
	if seat == 0 {
		return 0
	}
	if o.Type == TypeSnake && o.RoundOf(pick)%2 == 0 {
		return o.TeamCount - seat + 1
	}
	return seat
}

func (o Order) IsUserPick(pick, userSeat int) bool {
	return userSeat > 0 && o.SeatOnClock(pick) == userSeat
}

// PicksForSeat lists every pick number the seat makes, in order.
func (o Order) PicksForSeat(seat int) []int {
	total := o.TotalPicks()
	if seat <= 0 || seat > o.TeamCount {
		return nil
	}
	out := make([]int, 0, o.RoundCount)
	for p := 1; p <= total; p++ {
		if o.SeatOnClock(p) == seat {
			out = append(out, p)
		}
	}
	return out
}

// NextUserPick returns the first pick >= from where userSeat is on the clock,
// or TotalPicks()+1 when there is none.
func (o Order) NextUserPick(from, userSeat int) int {
	total := o.TotalPicks()
	if from < 1 {
		from = 1
	}
	for p := from; p <= total; p++ {
		if o.IsUserPick(p, userSeat) {
			return p
		}
	}
	return total + 1
}
