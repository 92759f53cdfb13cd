package usecase

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/cheatsheet"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/player"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/watchlist"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type CheatSheetEntry struct {
	Player  player.Player
	Drafted bool
	Watched bool
}

type CheatSheetTier struct {
	Tier    cheatsheet.Tier
	Entries []CheatSheetEntry
}

// CheatSheet always carries every tier, best first, each in rank order.
type CheatSheet struct {
	Tiers   []CheatSheetTier
	Drafted int
}

type CheatSheetService struct {
	sheetRepo     cheatsheet.Repository
	watchlistRepo watchlist.Repository
	players       *PlayerService
	logger        *logging.Logger
	clock         clockwork.Clock
}

func NewCheatSheetService(
	sheetRepo cheatsheet.Repository,
	watchlistRepo watchlist.Repository,
	players *PlayerService,
	clock clockwork.Clock,
	logger *logging.Logger,
) *CheatSheetService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &CheatSheetService{
		sheetRepo:     sheetRepo,
		watchlistRepo: watchlistRepo,
		players:       players,
		logger:        logger,
		clock:         clock,
	}
}

// Sheet groups the board into rank tiers. Watched is only set for a signed
// in caller.
func (s *CheatSheetService) Sheet(ctx context.Context, caller user.Principal) (CheatSheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheatSheetService.Sheet")
	defer span.End()

	board, err := s.players.ListPlayers(ctx, PlayerQuery{})
	if err != nil {
		return CheatSheet{}, err
	}

	marks, err := s.sheetRepo.List(ctx)
	if err != nil {
		return CheatSheet{}, storageError(err, "list drafted marks")
	}
	drafted := make(map[string]struct{}, len(marks))
	for _, m := range marks {
		drafted[m.PlayerID] = struct{}{}
	}

	watched := map[string]struct{}{}
	if !caller.Anonymous() && s.watchlistRepo != nil {
		items, err := s.watchlistRepo.ListByUser(ctx, caller.UserID)
		if err != nil {
			return CheatSheet{}, storageError(err, "list watchlist")
		}
		for _, item := range items {
			watched[item.PlayerID] = struct{}{}
		}
	}

	sheet := CheatSheet{Tiers: make([]CheatSheetTier, len(cheatsheet.Tiers))}
	for i, tier := range cheatsheet.Tiers {
		sheet.Tiers[i].Tier = tier
	}
	for _, p := range board {
		_, isDrafted := drafted[p.ID]
		_, isWatched := watched[p.ID]
		if isDrafted {
			sheet.Drafted++
		}
		idx := int(cheatsheet.TierOf(p.Rank)) - 1
		sheet.Tiers[idx].Entries = append(sheet.Tiers[idx].Entries, CheatSheetEntry{
			Player:  p,
			Drafted: isDrafted,
			Watched: isWatched,
		})
	}
	return sheet, nil
}

// ToggleDrafted flips the drafted mark of a player and reports the new state.
func (s *CheatSheetService) ToggleDrafted(ctx context.Context, playerID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CheatSheetService.ToggleDrafted")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if _, err := s.players.GetPlayer(ctx, playerID); err != nil {
		return false, err
	}

	removed, err := s.sheetRepo.Remove(ctx, playerID)
	if err != nil {
		return false, storageError(err, "unmark player drafted")
	}
	if removed {
		s.logger.InfoContext(ctx, "cheat sheet mark cleared", "player_id", playerID)
		return false, nil
	}

	if err := s.sheetRepo.Add(ctx, cheatsheet.Mark{PlayerID: playerID, MarkedAt: s.clock.Now()}); err != nil {
		return false, storageError(err, "mark player drafted")
	}
	s.logger.InfoContext(ctx, "cheat sheet mark set", "player_id", playerID)
	return true, nil
}

// Drafted returns the marks in the order they were set.
func (s *CheatSheetService) Drafted(ctx context.Context) ([]cheatsheet.Mark, error) {
	marks, err := s.sheetRepo.List(ctx)
	if err != nil {
		return nil, storageError(err, "list drafted marks")
	}
	return marks, nil
}

func (s *CheatSheetService) ClearDrafted(ctx context.Context) error {
	if err := s.sheetRepo.Clear(ctx); err != nil {
		return storageError(err, "clear drafted marks")
	}
	s.logger.InfoContext(ctx, "cheat sheet marks cleared")
	return nil
}
