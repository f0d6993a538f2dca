package usecase

import (
	"context"
	"fmt"

	"github.com/gridironhq/gridiron-feed/internal/domain/team"
	"github.com/gridironhq/gridiron-feed/internal/normalize"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

type TeamService struct {
	fetcher SportsFetcher
	store   *cache.Store
	logger  *logging.Logger
}

func NewTeamService(fetcher SportsFetcher, store *cache.Store, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

func (s *TeamService) List(ctx context.Context, league int64, season int) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	if league <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("teams:%d:%d", league, season)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Teams(ctx, league, season)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "teams fetch failed, serving empty list",
				"league_id", league,
				"season", season,
				"error", fetchErr,
			)
			return []team.Team{}, nil
		}

		teams, entryErrs := normalize.BuildTeams(raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "team entry normalized with defaults",
				"league_id", league,
				"season", season,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return teams, nil
	})
	if err != nil {
		return nil, err
	}

	teams, ok := value.([]team.Team)
	if !ok {
		return nil, fmt.Errorf("unexpected cached teams type %T", value)
	}
	return teams, nil
}

// Get finds one team by id in the cached season list.
func (s *TeamService) Get(ctx context.Context, league int64, season int, teamID int64) (team.Team, error) {
	teams, err := s.List(ctx, league, season)
	if err != nil {
		return team.Team{}, err
	}
	for _, t := range teams {
		if t.ID == teamID {
			return t, nil
		}
	}
	return team.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
}

// Statistics returns the raw season statistics object for one team. The
// provider's statistics shape is deep and league-specific, so it is passed
// through untouched for the caller to present.
func (s *TeamService) Statistics(ctx context.Context, league int64, teamID int64, season int) ([]map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Statistics")
	defer span.End()

	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("teamstats:%d:%d:%d", league, teamID, season)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.TeamStatistics(ctx, league, teamID, season)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "team statistics fetch failed",
				"team_id", teamID,
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
		return nil, fmt.Errorf("unexpected cached team statistics type %T", value)
	}
	return raw, nil
}
