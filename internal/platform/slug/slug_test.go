package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"  Dynasty League  ":          "dynasty-league",
		"Café Société!!":              "cafe-societe",
		"--Hoops & Dreams 2025--":     "hoops-dreams-2025",
		"***":                         "",
		"ÉLITE   ballers":             "elite-ballers",
		strings.Repeat("abc ", 20):    "abc-abc-abc-abc-abc-abc-abc-abc-abc-abc",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q)=%q want %q", in, got, want)
		}
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"dynasty": true, "dynasty-2": true}
	got := Unique("dynasty", func(s string) bool { return taken[s] })
	if got != "dynasty-3" {
		t.Fatalf("unexpected slug: %s", got)
	}

	if got := Unique("fresh", func(string) bool { return false }); got != "fresh" {
		t.Fatalf("unexpected slug: %s", got)
	}

	long := strings.Repeat("a", MaxLength)
	got = Unique(long, func(s string) bool { return s == long })
	if len(got) > MaxLength || !strings.HasSuffix(got, "-2") {
		t.Fatalf("unexpected long slug: %s", got)
	}
}
