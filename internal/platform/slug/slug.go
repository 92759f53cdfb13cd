package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs.
const MaxLength = 40

// Make lower-cases input, folds accents and joins runs of anything outside
// [a-z0-9] with a single dash.
func Make(input string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), input)
	if err != nil {
		folded = input
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var b strings.Builder
	b.Grow(len(folded))
	dash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// Unique returns base, or base with the first numeric suffix that taken
// does not report.
func Unique(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		suffix := "-" + strconv.Itoa(n)
		head := base
		if len(head)+len(suffix) > MaxLength {
			head = strings.TrimRight(head[:MaxLength-len(suffix)], "-")
		}
		if candidate := head + suffix; !taken(candidate) {
			return candidate
		}
	}
}
