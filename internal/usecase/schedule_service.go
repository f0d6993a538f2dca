package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/domain/game"
	"github.com/gridironhq/gridiron-feed/internal/normalize"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

// DefaultScheduleWindow bounds the upcoming and recent buckets.
const DefaultScheduleWindow = 7 * 24 * time.Hour

// GameBuckets holds the three default time-relative views of a schedule.
// Membership is decided independently per bucket, so a live game with a
// past kickoff shows up in both Live and Recent.
type GameBuckets struct {
	Live     []game.Game
	Upcoming []game.Game
	Recent   []game.Game
}

type ScheduleService struct {
	fetcher SportsFetcher
	store   *cache.Store
	logger  *logging.Logger
	window  time.Duration
	now     func() time.Time
}

func NewScheduleService(fetcher SportsFetcher, store *cache.Store, logger *logging.Logger, window time.Duration) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if window <= 0 {
		window = DefaultScheduleWindow
	}
	return &ScheduleService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		window:  window,
		now:     time.Now,
	}
}

// ListGames fetches and normalizes the schedule for one league season.
// A fetch failure degrades to an empty schedule rather than an error so
// unrelated sections keep rendering.
func (s *ScheduleService) ListGames(ctx context.Context, league int64, season int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListGames")
	defer span.End()

	if league <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("games:%d:%d", league, season)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Games(ctx, GamesFilter{League: league, Season: season})
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "games fetch failed, serving empty schedule",
				"league_id", league,
				"season", season,
				"error", fetchErr,
			)
			return []game.Game{}, nil
		}

		games, entryErrs := normalize.BuildGames(raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "game entry normalized with defaults",
				"league_id", league,
				"season", season,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return games, nil
	})
	if err != nil {
		return nil, err
	}

	games, ok := value.([]game.Game)
	if !ok {
		return nil, fmt.Errorf("unexpected cached schedule type %T", value)
	}
	return games, nil
}

// Buckets classifies the league schedule relative to the current instant.
func (s *ScheduleService) Buckets(ctx context.Context, league int64, season int) (GameBuckets, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Buckets")
	defer span.End()

	games, err := s.ListGames(ctx, league, season)
	if err != nil {
		return GameBuckets{}, err
	}
	return BucketGames(games, s.now().UTC(), s.window), nil
}

// GamesQuery narrows the flat schedule listing. Date and TeamID go to the
// provider as-is; Week is matched locally because the upstream games
// endpoint has no week parameter.
type GamesQuery struct {
	Date   string
	TeamID int64
	Week   string
}

// ListGamesFiltered lists games matching the query. Date and team queries
// get their own cache entries since they change the upstream fetch.
func (s *ScheduleService) ListGamesFiltered(ctx context.Context, league int64, season int, q GamesQuery) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListGamesFiltered")
	defer span.End()

	if q.Date == "" && q.TeamID <= 0 {
		games, err := s.ListGames(ctx, league, season)
		if err != nil {
			return nil, err
		}
		return filterGamesByWeek(games, q.Week), nil
	}

	if league <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("games:%d:%d:d=%s:t=%d", league, season, q.Date, q.TeamID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Games(ctx, GamesFilter{League: league, Season: season, Date: q.Date, TeamID: q.TeamID})
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "filtered games fetch failed, serving empty schedule",
				"league_id", league,
				"season", season,
				"date", q.Date,
				"team_id", q.TeamID,
				"error", fetchErr,
			)
			return []game.Game{}, nil
		}

		games, entryErrs := normalize.BuildGames(raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "game entry normalized with defaults",
				"league_id", league,
				"season", season,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return games, nil
	})
	if err != nil {
		return nil, err
	}

	games, ok := value.([]game.Game)
	if !ok {
		return nil, fmt.Errorf("unexpected cached schedule type %T", value)
	}
	return filterGamesByWeek(games, q.Week), nil
}

// filterGamesByWeek keeps games whose week label matches. Providers write
// either "3" or "Week 3", so both spellings compare equal.
func filterGamesByWeek(games []game.Game, week string) []game.Game {
	want := canonicalWeek(week)
	if want == "" {
		return games
	}

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if canonicalWeek(g.Week) == want {
			out = append(out, g)
		}
	}
	return out
}

func canonicalWeek(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.TrimSpace(strings.TrimPrefix(label, "week"))
}

// Game looks one game up by id within a league season.
func (s *ScheduleService) Game(ctx context.Context, league int64, season int, gameID int64) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Game")
	defer span.End()

	if gameID <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	games, err := s.ListGames(ctx, league, season)
	if err != nil {
		return game.Game{}, err
	}
	for _, g := range games {
		if g.ID == gameID {
			return g, nil
		}
	}
	return game.Game{}, fmt.Errorf("%w: game %d not found in league %d season %d", ErrNotFound, gameID, league, season)
}

// GameEvents passes the play-by-play feed for one game through untouched.
func (s *ScheduleService) GameEvents(ctx context.Context, gameID int64) ([]map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GameEvents")
	defer span.End()

	return s.rawGameFeed(ctx, "events", gameID, s.fetcher.GameEvents)
}

// GamePlayerStatistics passes per-player box score rows for one game
// through untouched.
func (s *ScheduleService) GamePlayerStatistics(ctx context.Context, gameID int64) ([]map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GamePlayerStatistics")
	defer span.End()

	return s.rawGameFeed(ctx, "boxscore", gameID, s.fetcher.GamePlayers)
}

func (s *ScheduleService) rawGameFeed(ctx context.Context, name string, gameID int64, load func(context.Context, int64) ([]map[string]any, error)) ([]map[string]any, error) {
	if gameID <= 0 {
		return nil, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	key := fmt.Sprintf("%s:%d", name, gameID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := load(ctx, gameID)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "game feed fetch failed, serving empty feed",
				"feed", name,
				"game_id", gameID,
				"error", fetchErr,
			)
			return []map[string]any{}, nil
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected cached feed type %T", value)
	}
	return rows, nil
}

// Range lists games whose kickoff falls inside [from, to]. The custom
// range replaces the default buckets rather than supplementing them.
func (s *ScheduleService) Range(ctx context.Context, league int64, season int, from, to time.Time) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Range")
	defer span.End()

	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes range start", ErrInvalidInput)
	}

	games, err := s.ListGames(ctx, league, season)
	if err != nil {
		return nil, err
	}
	return GamesInRange(games, from, to), nil
}

// BucketGames partitions games relative to now. Games without a parseable
// kickoff are excluded from the time-windowed buckets but still count as
// live when their status says so. A kickoff exactly at now lands in
// Recent, not Upcoming.
func BucketGames(games []game.Game, now time.Time, window time.Duration) GameBuckets {
	if window <= 0 {
		window = DefaultScheduleWindow
	}

	var buckets GameBuckets
	for _, g := range games {
		if g.IsLive() {
			buckets.Live = append(buckets.Live, g)
		}
		if !g.HasKickoff() {
			continue
		}

		kickoff := g.KickoffAt.UTC()
		if kickoff.After(now) {
			if !g.IsFinished() && !kickoff.After(now.Add(window)) {
				buckets.Upcoming = append(buckets.Upcoming, g)
			}
			continue
		}
		if !kickoff.Before(now.Add(-window)) {
			buckets.Recent = append(buckets.Recent, g)
		}
	}

	return buckets
}

// GamesInRange keeps games with a kickoff inside [start, end] inclusive.
func GamesInRange(games []game.Game, start, end time.Time) []game.Game {
	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if !g.HasKickoff() {
			continue
		}
		kickoff := g.KickoffAt.UTC()
		if kickoff.Before(start) || kickoff.After(end) {
			continue
		}
		out = append(out, g)
	}
	return out
}
