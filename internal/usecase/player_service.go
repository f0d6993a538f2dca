package usecase

import (
	"context"
	"fmt"

	"github.com/gridironhq/gridiron-feed/internal/domain/player"
	"github.com/gridironhq/gridiron-feed/internal/normalize"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

type PlayerService struct {
	fetcher SportsFetcher
	store   *cache.Store
	logger  *logging.Logger
}

func NewPlayerService(fetcher SportsFetcher, store *cache.Store, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

func (s *PlayerService) Roster(ctx context.Context, teamID int64, season int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Roster")
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("players:%d:%d", teamID, season)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Players(ctx, teamID, season)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "players fetch failed, serving empty roster",
				"team_id", teamID,
				"season", season,
				"error", fetchErr,
			)
			return []player.Player{}, nil
		}

		players, entryErrs := normalize.BuildPlayers(raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "player entry normalized with defaults",
				"team_id", teamID,
				"season", season,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return players, nil
	})
	if err != nil {
		return nil, err
	}

	players, ok := value.([]player.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cached roster type %T", value)
	}
	return players, nil
}

func (s *PlayerService) Injuries(ctx context.Context, teamID int64) ([]player.Injury, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Injuries")
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("injuries:%d", teamID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Injuries(ctx, teamID)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "injuries fetch failed, serving empty report",
				"team_id", teamID,
				"error", fetchErr,
			)
			return []player.Injury{}, nil
		}

		injuries, entryErrs := normalize.BuildInjuries(raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "injury entry normalized with defaults",
				"team_id", teamID,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return injuries, nil
	})
	if err != nil {
		return nil, err
	}

	injuries, ok := value.([]player.Injury)
	if !ok {
		return nil, fmt.Errorf("unexpected cached injuries type %T", value)
	}
	return injuries, nil
}

// Statistics passes one player's raw season statistics through untouched;
// the provider's per-category stat groups vary by position and are
// presented as-is.
func (s *PlayerService) Statistics(ctx context.Context, playerID int64, season int) ([]map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Statistics")
	defer span.End()

	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("playerstats:%d:%d", playerID, season)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.PlayerStatistics(ctx, playerID, season)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "player statistics fetch failed",
				"player_id", playerID,
				"season", season,
				"error", fetchErr,
			)
			return []map[string]any{}, nil
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	raw, ok := value.([]map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected cached player statistics type %T", value)
	}
	return raw, nil
}
