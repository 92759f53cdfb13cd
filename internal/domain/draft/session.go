package draft

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
)

// Selection is one pick made during a session.
type Selection struct {
	Turn
	Player    player.Player
	Origin    Origin
	Timestamp time.Time
}

// Session runs a draft in memory: Setup, then Active, then Completed. It is
// not safe for concurrent use.
type Session struct {
	draft     Draft
	order     Order
	policy    OpponentPolicy
	clock     clockwork.Clock
	catalog   []player.Player
	available []player.Player
	rosters   map[int][]string
}

type SessionOption func(*Session)

func WithClock(clock clockwork.Clock) SessionOption {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewSession prepares a draft in the setup state. The catalog order is the
// board order opponents draft from.
func NewSession(d Draft, catalog []player.Player, policy OpponentPolicy, opts ...SessionOption) (*Session, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		policy = NewTopKRandom(DefaultTopK, nil)
	}

	d.Status = StatusSetup
	d.CurrentRound = 0
	d.CurrentPick = 0
	d.CompletedAt = nil

	s := &Session{
		draft:   d,
		order:   d.Order(),
		policy:  policy,
		clock:   clockwork.NewRealClock(),
		catalog: player.Clone(catalog),
		rosters: make(map[int][]string, d.TeamCount),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start activates the draft and simulates every pick before the user's first
// turn.
func (s *Session) Start() ([]Selection, error) {
	if s.draft.Status != StatusSetup {
		return nil, errors.Wrapf(ErrAlreadyStarted, "draft %s is %s", s.draft.ID, s.draft.Status)
	}

	s.available = player.Clone(s.catalog)
	s.draft.Status = StatusActive
	s.setCurrent(1)

	return s.advance(1), nil
}

// Pick records the user's selection and simulates opponents up to the
// user's next turn or the end of the draft. If the pool runs dry first, the
// user's remaining turns pass without a pick and the draft completes.
func (s *Session) Pick(playerID string) ([]Selection, error) {
	if s.draft.Status != StatusActive {
		return nil, errors.Wrapf(ErrDraftNotActive, "draft %s is %s", s.draft.ID, s.draft.Status)
	}
	current := s.draft.CurrentPick
	if !s.order.IsUserPick(current, s.draft.UserSeat) {
		return nil, errors.Wrapf(ErrNotUserTurn, "pick %d belongs to seat %d", current, s.order.SeatOnClock(current))
	}

	idx := slices.IndexFunc(s.available, func(p player.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return nil, errors.Wrapf(ErrPlayerUnavailable, "player %s", playerID)
	}

	selections := []Selection{s.take(idx, s.turn(current), OriginUser)}
	return append(selections, s.advance(current+1)...), nil
}

// Settle simulates forward when the current pick is not the user's. Resumed
// sessions use it to finish an interrupted auto-advance.
func (s *Session) Settle() []Selection {
	if s.draft.Status != StatusActive || s.order.IsUserPick(s.draft.CurrentPick, s.draft.UserSeat) {
		return nil
	}
	return s.advance(s.draft.CurrentPick)
}

// advance simulates every non-user pick from `from` on. It stops at the
// user's turn or completes the draft, and runs at most TotalPicks times.
//
// An empty pool is the one exception to stopping at the user's turn: with
// nothing left to pick, user turns are passed like opponent turns so the
// draft reaches completed instead of waiting on a pick that cannot happen.
func (s *Session) advance(from int) []Selection {
	total := s.order.TotalPicks()
	var out []Selection

	p := from
	for ; p <= total; p++ {
		if s.order.IsUserPick(p, s.draft.UserSeat) && len(s.available) > 0 {
			break
		}
		if sel, ok := s.simulate(p); ok {
			out = append(out, sel)
		}
	}

	s.setCurrent(p)
	return out
}

func (s *Session) simulate(pick int) (Selection, bool) {
	if len(s.available) == 0 {
		return Selection{}, false
	}
	turn := s.turn(pick)
	idx, ok := s.policy.Choose(player.Clone(s.available), turn)
	if !ok || idx < 0 || idx >= len(s.available) {
		return Selection{}, false
	}
	return s.take(idx, turn, OriginSimulated), true
}

func (s *Session) take(idx int, turn Turn, origin Origin) Selection {
	chosen := s.available[idx]
	s.available = slices.Delete(s.available, idx, idx+1)
	s.rosters[turn.Seat] = append(s.rosters[turn.Seat], chosen.ID)
	return Selection{Turn: turn, Player: chosen, Origin: origin, Timestamp: s.clock.Now()}
}

func (s *Session) turn(pick int) Turn {
	return Turn{Pick: pick, Round: s.order.RoundOf(pick), Seat: s.order.SeatOnClock(pick)}
}

func (s *Session) setCurrent(pick int) {
	total := s.order.TotalPicks()
	s.draft.CurrentPick = pick
	if pick > total {
		s.draft.CurrentRound = s.order.RoundCount
		s.draft.Status = StatusCompleted
		completedAt := s.clock.Now()
		s.draft.CompletedAt = &completedAt
		return
	}
	s.draft.CurrentRound = s.order.RoundOf(pick)
}

// Draft returns the draft with the session's current status and counters.
func (s *Session) Draft() Draft {
	d := s.draft
	if d.CompletedAt != nil {
		completedAt := *d.CompletedAt
		d.CompletedAt = &completedAt
	}
	return d
}

func (s *Session) Status() Status {
	return s.draft.Status
}

// Current reports the pick on the clock while the draft is active.
func (s *Session) Current() (Turn, bool) {
	if s.draft.Status != StatusActive {
		return Turn{}, false
	}
	return s.turn(s.draft.CurrentPick), true
}

func (s *Session) UserOnClock() bool {
	return s.draft.Status == StatusActive && s.order.IsUserPick(s.draft.CurrentPick, s.draft.UserSeat)
}

func (s *Session) Available() []player.Player {
	return player.Clone(s.available)
}

// Roster returns the player ids drafted by seat, in pick order.
func (s *Session) Roster(seat int) []string {
	return append([]string(nil), s.rosters[seat]...)
}

// Resume rebuilds an active or completed session from persisted picks. The
// available pool is the catalog minus every picked player.
func Resume(d Draft, catalog []player.Player, picks []Pick, policy OpponentPolicy, opts ...SessionOption) (*Session, error) {
	status := d.Status
	switch status {
	case StatusActive, StatusCompleted:
	default:
		return nil, errors.Wrapf(ErrDraftNotActive, "cannot resume draft %s in status %s", d.ID, status)
	}

	current, round, completedAt := d.CurrentPick, d.CurrentRound, d.CompletedAt
	s, err := NewSession(d, catalog, policy, opts...)
	if err != nil {
		return nil, err
	}

	ordered := slices.Clone(picks)
	slices.SortStableFunc(ordered, func(a, b Pick) int { return a.Number - b.Number })

	taken := make(map[string]struct{}, len(ordered))
	for _, p := range ordered {
		if p.DraftID != "" && p.DraftID != d.ID {
			continue
		}
		taken[p.PlayerID] = struct{}{}
		s.rosters[p.Seat] = append(s.rosters[p.Seat], p.PlayerID)
	}
	s.available = slices.DeleteFunc(player.Clone(s.catalog), func(p player.Player) bool {
		_, ok := taken[p.ID]
		return ok
	})

	if current < 1 {
		current = 1
	}
	s.draft.Status = status
	s.draft.CurrentPick = current
	s.draft.CurrentRound = round
	s.draft.CompletedAt = completedAt
	if status == StatusActive {
		s.setCurrent(current)
	}
	return s, nil
}
