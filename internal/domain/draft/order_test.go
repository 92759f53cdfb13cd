package draft

import (
	"slices"
	"testing"
)

func TestOrder_SeatOnClockIsBijectionPerRound(t *testing.T) {
	for _, typ := range []Type{TypeSnake, TypeLinear, TypeAuction} {
		for teams := MinTeams; teams <= MaxTeams; teams++ {
			order := Order{Type: typ, TeamCount: teams, RoundCount: 5}
			for round := 1; round <= order.RoundCount; round++ {
				seen := make(map[int]bool, teams)
				for k := 1; k <= teams; k++ {
					p := (round-1)*teams + k
					seat := order.SeatOnClock(p)
					if seat < 1 || seat > teams {
						t.Fatalf("%s T=%d pick %d: seat %d out of range", typ, teams, p, seat)
					}
					if seen[seat] {
						t.Fatalf("%s T=%d round %d: seat %d on the clock twice", typ, teams, round, seat)
					}
					seen[seat] = true
				}
			}
		}
	}
}

func TestOrder_SnakeReversesBetweenRounds(t *testing.T) {
	for teams := MinTeams; teams <= MaxTeams; teams++ {
		order := Order{Type: TypeSnake, TeamCount: teams, RoundCount: 6}
		for round := 1; round < order.RoundCount; round += 2 {
			for k := 1; k <= teams; k++ {
				odd := order.SeatOnClock((round-1)*teams + k)
				even := order.SeatOnClock(round*teams + (teams - k + 1))
				if odd != even {
					t.Fatalf("T=%d round %d k=%d: %d != %d", teams, round, k, odd, even)
				}
			}
		}
	}
}

func TestOrder_LinearIgnoresRound(t *testing.T) {
	for _, typ := range []Type{TypeLinear, TypeAuction} {
		order := Order{Type: typ, TeamCount: 8, RoundCount: 10}
		for k := 1; k <= 8; k++ {
			want := order.SeatOnClock(k)
			for round := 2; round <= order.RoundCount; round++ {
				if got := order.SeatOnClock((round-1)*8 + k); got != want {
					t.Fatalf("%s round %d k=%d: got seat %d want %d", typ, round, k, got, want)
				}
			}
		}
	}
}

func TestOrder_SeatOnClockIsIdempotent(t *testing.T) {
	order := Order{Type: TypeSnake, TeamCount: 12, RoundCount: 13}
	for p := 1; p <= order.TotalPicks(); p++ {
		first := order.SeatOnClock(p)
		for i := 0; i < 3; i++ {
			if again := order.SeatOnClock(p); again != first {
				t.Fatalf("pick %d: %d then %d", p, first, again)
			}
		}
	}
}

func TestOrder_SnakeTwelveTeamScenario(t *testing.T) {
	order := Order{Type: TypeSnake, TeamCount: 12, RoundCount: 13}

	tests := []struct {
		pick  int
		round int
		seat  int
	}{
		{pick: 1, round: 1, seat: 1},
		{pick: 6, round: 1, seat: 6},
		{pick: 12, round: 1, seat: 12},
		{pick: 13, round: 2, seat: 12},
		{pick: 18, round: 2, seat: 7},
		{pick: 19, round: 2, seat: 6},
		{pick: 24, round: 2, seat: 1},
		{pick: 25, round: 3, seat: 1},
	}
	for _, tc := range tests {
		if got := order.RoundOf(tc.pick); got != tc.round {
			t.Fatalf("RoundOf(%d)=%d want %d", tc.pick, got, tc.round)
		}
		if got := order.SeatOnClock(tc.pick); got != tc.seat {
			t.Fatalf("SeatOnClock(%d)=%d want %d", tc.pick, got, tc.seat)
		}
	}

	picks := order.PicksForSeat(6)
	if len(picks) != 13 || picks[0] != 6 || picks[1] != 19 {
		t.Fatalf("unexpected picks for seat 6: %v", picks)
	}
	if !order.IsUserPick(19, 6) || order.IsUserPick(18, 6) {
		t.Fatalf("user seat 6 should be on the clock at 19 and not at 18")
	}
	if got := order.NextUserPick(7, 6); got != 19 {
		t.Fatalf("NextUserPick(7, 6)=%d want 19", got)
	}
}

func TestOrder_LinearTenTeamScenario(t *testing.T) {
	order := Order{Type: TypeLinear, TeamCount: 10, RoundCount: 10}

	want := []int{1, 11, 21, 31, 41, 51, 61, 71, 81, 91}
	if got := order.PicksForSeat(1); !slices.Equal(got, want) {
		t.Fatalf("PicksForSeat(1)=%v want %v", got, want)
	}
	if got := order.NextUserPick(92, 1); got != order.TotalPicks()+1 {
		t.Fatalf("expected completion sentinel, got %d", got)
	}
}

func TestOrder_DegenerateInputs(t *testing.T) {
	var zero Order
	if zero.TotalPicks() != 0 || zero.SeatOnClock(1) != 0 || zero.RoundOf(3) != 0 {
		t.Fatalf("zero order should report zero everywhere")
	}
	order := Order{Type: TypeSnake, TeamCount: 4, RoundCount: 2}
	if order.SeatOnClock(0) != 0 || order.SeatOnClock(-3) != 0 {
		t.Fatalf("non-positive picks have no seat")
	}
	if order.IsUserPick(1, 0) {
		t.Fatalf("seat 0 is never on the clock")
	}
	if order.PicksForSeat(5) != nil {
		t.Fatalf("seat outside the table has no picks")
	}
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{name: "ok", order: Order{Type: TypeSnake, TeamCount: 12, RoundCount: 13}},
		{name: "unknown type", order: Order{Type: "keeper", TeamCount: 12, RoundCount: 13}, wantErr: true},
		{name: "one team", order: Order{Type: TypeLinear, TeamCount: 1, RoundCount: 13}, wantErr: true},
		{name: "zero rounds", order: Order{Type: TypeLinear, TeamCount: 8, RoundCount: 0}, wantErr: true},
		{name: "too many rounds", order: Order{Type: TypeLinear, TeamCount: 8, RoundCount: MaxRounds + 1}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.order.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
