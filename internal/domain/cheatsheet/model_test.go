package cheatsheet

import "testing"

func TestTierOf(t *testing.T) {
	cases := map[int]Tier{
		1:   TierElite,
		5:   TierElite,
		6:   TierFirstRound,
		12:  TierFirstRound,
		13:  TierSecondRound,
		24:  TierSecondRound,
		25:  TierMidRound,
		50:  TierMidRound,
		51:  TierLateRound,
		300: TierLateRound,
	}
	for rank, want := range cases {
		if got := TierOf(rank); got != want {
			t.Errorf("TierOf(%d) = %v, want %v", rank, got, want)
		}
	}
	if got := TierMidRound.String(); got != "Tier 4 - Mid round" {
		t.Fatalf("unexpected label %q", got)
	}
}
