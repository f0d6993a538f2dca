package usecase

import (
	"context"
	"fmt"

	"github.com/gridironhq/gridiron-feed/internal/domain/standing"
	"github.com/gridironhq/gridiron-feed/internal/normalize"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

type StandingsService struct {
	fetcher SportsFetcher
	store   *cache.Store
	logger  *logging.Logger
}

func NewStandingsService(fetcher SportsFetcher, store *cache.Store, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

// List returns the league table with locally recomputed ranks. A fetch
// failure degrades to an empty table.
func (s *StandingsService) List(ctx context.Context, league int64, season int) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.List")
	defer span.End()

	if league <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("standings:%d:%d", league, season)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Standings(ctx, league, season)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "standings fetch failed, serving empty table",
				"league_id", league,
				"season", season,
				"error", fetchErr,
			)
			return []standing.Standing{}, nil
		}

		rows, entryErrs := normalize.BuildStandings(raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "standings entry normalized with defaults",
				"league_id", league,
				"season", season,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]standing.Standing)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", value)
	}
	return rows, nil
}

// ByConference splits the table by conference label, keeping rank order
// inside each group. Rows without a conference gather under "N/A".
func (s *StandingsService) ByConference(ctx context.Context, league int64, season int) (map[string][]standing.Standing, error) {
	rows, err := s.List(ctx, league, season)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]standing.Standing, 2)
	for _, row := range rows {
		label := row.Conference
		if label == "" {
			label = normalize.PlaceholderName
		}
		out[label] = append(out[label], row)
	}
	return out, nil
}
