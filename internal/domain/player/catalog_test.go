package player

import "testing"

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 30 {
		t.Fatalf("expected 30 players, got %d", len(catalog))
	}

	seen := make(map[string]struct{}, len(catalog))
	for i, p := range catalog {
		if err := p.Validate(); err != nil {
			t.Fatalf("player %s invalid: %v", p.ID, err)
		}
		if p.Rank != i+1 {
			t.Fatalf("catalog must be in rank order: index %d has rank %d", i, p.Rank)
		}
		if _, dup := seen[p.ID]; dup {
			t.Fatalf("duplicate player id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
}

func TestDefaultCatalog_ReturnsCopy(t *testing.T) {
	first := DefaultCatalog()
	first[0].Rank = 99

	if DefaultCatalog()[0].Rank != 1 {
		t.Fatalf("mutating a returned catalog leaked into the default")
	}
}

func TestPlayer_Validate(t *testing.T) {
	valid := Player{ID: "p1", Name: "A", Position: PositionCenter, Rank: 1, Trend: TrendUp}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Player)
	}{
		{name: "missing id", mutate: func(p *Player) { p.ID = "" }},
		{name: "bad position", mutate: func(p *Player) { p.Position = "GK" }},
		{name: "zero rank", mutate: func(p *Player) { p.Rank = 0 }},
		{name: "bad trend", mutate: func(p *Player) { p.Trend = "sideways" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
