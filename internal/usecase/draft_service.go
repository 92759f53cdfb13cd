package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/draft"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/league"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/blueprint-fantasy/internal/platform/id"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type StartDraftInput struct {
	Name       string `validate:"required,max=80"`
	Type       string `validate:"omitempty,oneof=snake linear auction"`
	TeamCount  int
	RoundCount int
	UserSeat   int
	LeagueSlug string
}

// DraftConfig tunes opponent behavior and which picks are reported.
type DraftConfig struct {
	OpponentTopK int
	// ReportSimulatedPicks includes opponent picks in ListPicks and
	// DraftState.Picks. Every pick is stored either way; resumed sessions
	// rebuild the available pool from the full log.
	ReportSimulatedPicks bool
	// NewPolicy builds the opponent policy for one session. Nil uses top-K
	// random.
	NewPolicy func() draft.OpponentPolicy
}

func DefaultDraftConfig() DraftConfig {
	return DraftConfig{
		OpponentTopK:          draft.DefaultTopK,
		ReportSimulatedPicks: true,
	}
}

// DraftState is a draft as seen after an operation.
type DraftState struct {
	Draft draft.Draft
	// Selections are the picks made by the call that produced this state.
	Selections []draft.Selection
	Picks      []draft.Pick
	Current    draft.Turn
	OnClock    bool
	Available  []player.Player
	UserRoster []string
}

type DraftService struct {
	draftRepo  draft.Repository
	pickRepo   draft.PickRepository
	leagueRepo league.Repository
	players    *PlayerService
	idGen      idgen.Generator
	logger     *logging.Logger
	clock      clockwork.Clock
	cfg        DraftConfig
}

func NewDraftService(
	draftRepo draft.Repository,
	pickRepo draft.PickRepository,
	leagueRepo league.Repository,
	players *PlayerService,
	idGen idgen.Generator,
	clock clockwork.Clock,
	cfg DraftConfig,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.OpponentTopK <= 0 {
		cfg.OpponentTopK = draft.DefaultTopK
	}

	return &DraftService{
		draftRepo:  draftRepo,
		pickRepo:   pickRepo,
		leagueRepo: leagueRepo,
		players:    players,
		idGen:      idGen,
		logger:     logger.Named("draft"),
		clock:      clock,
		cfg:        cfg,
	}
}

func (s *DraftService) policy() draft.OpponentPolicy {
	if s.cfg.NewPolicy != nil {
		if p := s.cfg.NewPolicy(); p != nil {
			return p
		}
	}
	return draft.NewTopKRandom(s.cfg.OpponentTopK, nil)
}

// StartDraft creates an active draft for the caller and simulates every pick
// before the caller's first turn.
func (s *DraftService) StartDraft(ctx context.Context, caller user.Principal, input StartDraftInput) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.StartDraft")
	defer span.End()

	if err := requireLogin(caller); err != nil {
		return DraftState{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.LeagueSlug = strings.TrimSpace(input.LeagueSlug)
	if err := validateInput(ctx, input); err != nil {
		return DraftState{}, err
	}
	if input.Type == "" {
		input.Type = string(draft.TypeSnake)
	}
	if input.UserSeat < 1 {
		return DraftState{}, invalidInputf("user seat must be between 1 and %d, got %d", input.TeamCount, input.UserSeat)
	}

	leagueID := ""
	if input.LeagueSlug != "" {
		lg, exists, err := s.leagueRepo.GetBySlug(ctx, input.LeagueSlug)
		if err != nil {
			return DraftState{}, storageError(err, "get league by slug")
		}
		if !exists {
			return DraftState{}, notFoundf("league=%s", input.LeagueSlug)
		}
		leagueID = lg.ID
	}

	catalog, err := s.players.Catalog(ctx)
	if err != nil {
		return DraftState{}, err
	}

	draftID, err := s.idGen.NewID("draft")
	if err != nil {
		return DraftState{}, errors.Wrap(err, "generate draft id")
	}

	d := draft.Draft{
		ID:         draftID,
		Name:       input.Name,
		OwnerID:    caller.UserID,
		LeagueID:   leagueID,
		Type:       draft.Type(input.Type),
		TeamCount:  input.TeamCount,
		RoundCount: input.RoundCount,
		UserSeat:   input.UserSeat,
		CreatedAt:  s.clock.Now(),
	}

	session, err := draft.NewSession(d, catalog, s.policy(), draft.WithClock(s.clock))
	if err != nil {
		return DraftState{}, draftError(err)
	}
	selections, err := session.Start()
	if err != nil {
		return DraftState{}, draftError(err)
	}

	picks, err := s.persistSelections(ctx, draftID, selections)
	if err != nil {
		return DraftState{}, err
	}
	if err := s.draftRepo.Create(ctx, session.Draft()); err != nil {
		return DraftState{}, storageError(err, "create draft")
	}

	s.logger.InfoContext(ctx, "draft started",
		"draft_id", draftID,
		"type", d.Type,
		"teams", d.TeamCount,
		"rounds", d.RoundCount,
		"user_seat", d.UserSeat,
		"simulated", len(selections),
	)
	s.logCompletion(ctx, session)

	return s.stateOf(session, selections, picks), nil
}

// MakePick records the caller's pick and simulates opponents up to the
// caller's next turn or the end of the draft.
func (s *DraftService) MakePick(ctx context.Context, caller user.Principal, draftID, playerID string) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.MakePick",
		attribute.String("draft.id", draftID),
		attribute.String("player.id", playerID),
	)
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return DraftState{}, invalidInputf("player id is required")
	}

	d, err := s.ownedDraft(ctx, caller, draftID)
	if err != nil {
		return DraftState{}, err
	}
	if d.Status != draft.StatusActive {
		return DraftState{}, draftError(errors.Wrapf(draft.ErrDraftNotActive, "draft %s is %s", d.ID, d.Status))
	}

	session, existing, err := s.resume(ctx, d)
	if err != nil {
		return DraftState{}, err
	}

	selections := session.Settle()
	made, err := session.Pick(playerID)
	if err != nil {
		if len(selections) > 0 {
			if _, saveErr := s.save(ctx, session, selections); saveErr != nil {
				s.logger.WarnContext(ctx, "store settled picks failed", "draft_id", d.ID, "error", saveErr)
			}
		}
		return DraftState{}, draftError(err)
	}
	selections = append(selections, made...)

	picks, err := s.save(ctx, session, selections)
	if err != nil {
		return DraftState{}, err
	}

	s.logger.InfoContext(ctx, "user pick recorded",
		"draft_id", d.ID,
		"player_id", playerID,
		"simulated", len(selections)-1,
		"current_pick", session.Draft().CurrentPick,
	)
	s.logCompletion(ctx, session)

	return s.stateOf(session, selections, append(existing, picks...)), nil
}

// GetDraftState loads a draft without simulating anything.
func (s *DraftService) GetDraftState(ctx context.Context, caller user.Principal, draftID string) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetDraftState", attribute.String("draft.id", draftID))
	defer span.End()

	d, err := s.ownedDraft(ctx, caller, draftID)
	if err != nil {
		return DraftState{}, err
	}

	session, picks, err := s.resume(ctx, d)
	if err != nil {
		return DraftState{}, err
	}
	return s.stateOf(session, nil, picks), nil
}

func (s *DraftService) ListDrafts(ctx context.Context, caller user.Principal) ([]draft.Draft, error) {
	if err := requireLogin(caller); err != nil {
		return nil, err
	}

	drafts, err := s.draftRepo.ListByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, storageError(err, "list drafts")
	}
	return drafts, nil
}

func (s *DraftService) ListPicks(ctx context.Context, caller user.Principal, draftID string) ([]draft.Pick, error) {
	d, err := s.ownedDraft(ctx, caller, draftID)
	if err != nil {
		return nil, err
	}
	picks, err := s.loadPicks(ctx, d)
	if err != nil {
		return nil, err
	}
	return s.reported(picks), nil
}

// reported drops opponent picks unless they are configured to be shown.
func (s *DraftService) reported(picks []draft.Pick) []draft.Pick {
	if s.cfg.ReportSimulatedPicks {
		return picks
	}
	out := make([]draft.Pick, 0, len(picks))
	for _, p := range picks {
		if p.Origin != draft.OriginSimulated {
			out = append(out, p)
		}
	}
	return out
}

func (s *DraftService) ownedDraft(ctx context.Context, caller user.Principal, draftID string) (draft.Draft, error) {
	if err := requireLogin(caller); err != nil {
		return draft.Draft{}, err
	}

	draftID = strings.TrimSpace(draftID)
	if draftID == "" {
		return draft.Draft{}, invalidInputf("draft id is required")
	}

	d, exists, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return draft.Draft{}, storageError(err, "get draft")
	}
	if !exists || d.OwnerID != caller.UserID {
		return draft.Draft{}, notFoundf("draft=%s", draftID)
	}
	return d, nil
}

// loadPicks reads the pick log. User picks written without a seat take the
// draft's user seat.
func (s *DraftService) loadPicks(ctx context.Context, d draft.Draft) ([]draft.Pick, error) {
	picks, err := s.pickRepo.ListByDraft(ctx, d.ID)
	if err != nil {
		return nil, storageError(err, "list draft picks")
	}
	for i := range picks {
		if picks[i].Seat == 0 && picks[i].Origin == draft.OriginUser {
			picks[i].Seat = d.UserSeat
		}
	}
	return picks, nil
}

func (s *DraftService) resume(ctx context.Context, d draft.Draft) (*draft.Session, []draft.Pick, error) {
	picks, err := s.loadPicks(ctx, d)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := s.players.Catalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	session, err := draft.Resume(d, catalog, picks, s.policy(), draft.WithClock(s.clock))
	if err != nil {
		return nil, nil, draftError(err)
	}
	return session, picks, nil
}

// save appends the new picks before advancing the stored draft counters, so
// a failed append leaves the stored draft at its previous pick.
func (s *DraftService) save(ctx context.Context, session *draft.Session, selections []draft.Selection) ([]draft.Pick, error) {
	d := session.Draft()
	picks, err := s.persistSelections(ctx, d.ID, selections)
	if err != nil {
		return nil, err
	}
	if err := s.draftRepo.Update(ctx, d); err != nil {
		return nil, storageError(err, "update draft")
	}
	return picks, nil
}

func (s *DraftService) persistSelections(ctx context.Context, draftID string, selections []draft.Selection) ([]draft.Pick, error) {
	picks := make([]draft.Pick, 0, len(selections))
	for _, sel := range selections {
		pickID, err := s.idGen.NewID("pick")
		if err != nil {
			return nil, errors.Wrap(err, "generate pick id")
		}
		picks = append(picks, draft.Pick{
			ID:        pickID,
			DraftID:   draftID,
			Round:     sel.Round,
			Number:    sel.Pick,
			PlayerID:  sel.Player.ID,
			Seat:      sel.Seat,
			Origin:    sel.Origin,
			Timestamp: sel.Timestamp,
		})
	}
	if len(picks) == 0 {
		return picks, nil
	}

	if err := s.pickRepo.Append(ctx, picks...); err != nil {
		return nil, storageError(err, "append draft picks")
	}
	return picks, nil
}

func (s *DraftService) stateOf(session *draft.Session, selections []draft.Selection, picks []draft.Pick) DraftState {
	d := session.Draft()
	current, _ := session.Current()
	return DraftState{
		Draft:      d,
		Selections: selections,
		Picks:      s.reported(picks),
		Current:    current,
		OnClock:    session.UserOnClock(),
		Available:  session.Available(),
		UserRoster: session.Roster(d.UserSeat),
	}
}

func (s *DraftService) logCompletion(ctx context.Context, session *draft.Session) {
	if session.Status() != draft.StatusCompleted {
		return
	}
	d := session.Draft()
	s.logger.InfoContext(ctx, "draft completed", "draft_id", d.ID, "picks", d.Order().TotalPicks())
}

// draftError marks sequencer errors with the matching use case error. The
// sequencer error stays in the chain.
func draftError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, draft.ErrInvalidConfig):
		return errors.Mark(err, ErrInvalidInput)
	case errors.Is(err, draft.ErrPlayerUnavailable),
		errors.Is(err, draft.ErrDraftNotActive),
		errors.Is(err, draft.ErrNotUserTurn),
		errors.Is(err, draft.ErrAlreadyStarted):
		return errors.Mark(err, ErrConflict)
	default:
		return err
	}
}
