package draft

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
)

// Turn identifies the pick being made.
type Turn struct {
	Pick  int
	Round int
	Seat  int
}

// OpponentPolicy chooses a player for a simulated seat. It returns the index
// into available, or false to pass.
type OpponentPolicy interface {
	Choose(available []player.Player, turn Turn) (int, bool)
}

type PolicyFunc func(available []player.Player, turn Turn) (int, bool)

func (f PolicyFunc) Choose(available []player.Player, turn Turn) (int, bool) {
	return f(available, turn)
}

const DefaultTopK = 3

// TopKRandom picks uniformly among the first K available players.
type TopKRandom struct {
	k   int
	mu  sync.Mutex
	rng *rand.Rand
}

func NewTopKRandom(k int, src rand.Source) *TopKRandom {
	if k <= 0 {
		k = DefaultTopK
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &TopKRandom{k: k, rng: rand.New(src)}
}

func (p *TopKRandom) Choose(available []player.Player, _ Turn) (int, bool) {
	if len(available) == 0 {
		return 0, false
	}
	k := min(p.k, len(available))

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(k), true
}

// BestAvailable takes the lowest ADP. Players without an ADP go last and
// ties fall back to rank.
type BestAvailable struct{}

func (BestAvailable) Choose(available []player.Player, _ Turn) (int, bool) {
	if len(available) == 0 {
		return 0, false
	}
	best := 0
	for i := 1; i < len(available); i++ {
		if lessByADP(available[i], available[best]) {
			best = i
		}
	}
	return best, true
}

func lessByADP(a, b player.Player) bool {
	aa, ba := adpKey(a), adpKey(b)
	if aa != ba {
		return aa < ba
	}
	return a.Rank < b.Rank
}

func adpKey(p player.Player) float64 {
	if p.ADP <= 0 {
		return math.Inf(1)
	}
	return p.ADP
}
