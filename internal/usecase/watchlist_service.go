package usecase

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/blueprint-fantasy/internal/domain/user"
	"github.com/riskibarqy/blueprint-fantasy/internal/domain/watchlist"
	"github.com/riskibarqy/blueprint-fantasy/internal/platform/logging"
)

type WatchlistService struct {
	watchlistRepo watchlist.Repository
	players       *PlayerService
	logger        *logging.Logger
	clock         clockwork.Clock
}

func NewWatchlistService(watchlistRepo watchlist.Repository, players *PlayerService, clock clockwork.Clock, logger *logging.Logger) *WatchlistService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		players:       players,
		logger:        logger,
		clock:         clock,
	}
}

func (s *WatchlistService) List(ctx context.Context, caller user.Principal) ([]watchlist.Item, error) {
	if err := requireLogin(caller); err != nil {
		return nil, err
	}

	items, err := s.watchlistRepo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, storageError(err, "list watchlist")
	}
	return items, nil
}

func (s *WatchlistService) Add(ctx context.Context, caller user.Principal, playerID, notes string) (watchlist.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WatchlistService.Add")
	defer span.End()

	if err := requireLogin(caller); err != nil {
		return watchlist.Item{}, err
	}

	playerID = strings.TrimSpace(playerID)
	if _, err := s.players.GetPlayer(ctx, playerID); err != nil {
		return watchlist.Item{}, err
	}

	items, err := s.watchlistRepo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return watchlist.Item{}, storageError(err, "list watchlist")
	}
	for _, item := range items {
		if item.PlayerID == playerID {
			return watchlist.Item{}, errors.Wrap(ErrConflict, "already in watchlist")
		}
	}

	item := watchlist.Item{
		PlayerID: playerID,
		UserID:   caller.UserID,
		AddedAt:  s.clock.Now(),
		Notes:    strings.TrimSpace(notes),
	}
	if err := s.watchlistRepo.Add(ctx, item); err != nil {
		return watchlist.Item{}, storageError(err, "add watchlist item")
	}

	s.logger.InfoContext(ctx, "watchlist item added", "user_id", caller.UserID, "player_id", playerID)
	return item, nil
}

// Remove reports whether the player was on the caller's watchlist.
func (s *WatchlistService) Remove(ctx context.Context, caller user.Principal, playerID string) (bool, error) {
	if err := requireLogin(caller); err != nil {
		return false, err
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return false, invalidInputf("player id is required")
	}

	removed, err := s.watchlistRepo.Remove(ctx, caller.UserID, playerID)
	if err != nil {
		return false, storageError(err, "remove watchlist item")
	}
	return removed, nil
}
