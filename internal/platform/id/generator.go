package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
)

// Generator creates opaque record IDs. Uniqueness is probabilistic.
type Generator interface {
	NewID(prefix string) (string, error)
}

// RandomGenerator produces "<prefix>_<random hex>_<unix ms hex>".
type RandomGenerator struct {
	clock clockwork.Clock
}

func NewRandomGenerator(clock clockwork.Clock) *RandomGenerator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RandomGenerator{clock: clock}
}

func (g *RandomGenerator) NewID(prefix string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "id"
	}

	var b strings.Builder
	b.Grow(len(prefix) + 2 + 16 + 12)
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(hex.EncodeToString(buf))
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(g.clock.Now().UnixMilli(), 16))
	return b.String(), nil
}
