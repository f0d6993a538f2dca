package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"
)

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"

	defaultRefreshWorkers = 4
	maxRefreshWorkers     = 16
)

// RefreshSection is the outcome of warming one data section.
type RefreshSection struct {
	Name       string
	Status     string
	Records    int
	Message    string
	DurationMs int64
}

type RefreshResult struct {
	LeagueID     int64
	Season       int
	WorkerCount  int
	SuccessCount int
	FailedCount  int
	Sections     []RefreshSection
}

// RefreshService warms every cacheable section for a league season in one
// pass. Sections degrade independently; a failed fetch marks its own
// section and never aborts the others.
type RefreshService struct {
	schedule   *ScheduleService
	standings  *StandingsService
	teams      *TeamService
	players    *PlayerService
	logger     *logging.Logger
	maxWorkers int
}

func NewRefreshService(
	schedule *ScheduleService,
	standings *StandingsService,
	teams *TeamService,
	players *PlayerService,
	logger *logging.Logger,
	maxWorkers int,
) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultRefreshWorkers
	}
	if maxWorkers > maxRefreshWorkers {
		maxWorkers = maxRefreshWorkers
	}
	return &RefreshService{
		schedule:   schedule,
		standings:  standings,
		teams:      teams,
		players:    players,
		logger:     logger,
		maxWorkers: maxWorkers,
	}
}

func (s *RefreshService) Refresh(ctx context.Context, league int64, season int) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Refresh")
	defer span.End()

	if league <= 0 {
		return RefreshResult{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}
	if season <= 0 {
		return RefreshResult{}, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	result := RefreshResult{
		LeagueID:    league,
		Season:      season,
		WorkerCount: s.maxWorkers,
	}

	var mu sync.Mutex
	appendSection := func(section RefreshSection) {
		mu.Lock()
		result.Sections = append(result.Sections, section)
		mu.Unlock()
	}

	runSection := func(name string, load func(context.Context) (int, error)) {
		start := time.Now()
		section := RefreshSection{Name: name, Status: refreshStatusSuccess}

		records, err := load(ctx)
		section.Records = records
		section.DurationMs = time.Since(start).Milliseconds()
		if err != nil {
			section.Status = refreshStatusFailed
			section.Message = err.Error()
			s.logger.WarnContext(ctx, "refresh section failed",
				"section", name,
				"league_id", league,
				"season", season,
				"error", err,
			)
		}
		appendSection(section)
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		runSection("games", func(ctx context.Context) (int, error) {
			games, err := s.schedule.ListGames(ctx, league, season)
			return len(games), err
		})
	})
	wg.Go(func() {
		runSection("standings", func(ctx context.Context) (int, error) {
			rows, err := s.standings.List(ctx, league, season)
			return len(rows), err
		})
	})
	wg.Go(func() {
		runSection("teams", func(ctx context.Context) (int, error) {
			teams, err := s.teams.List(ctx, league, season)
			return len(teams), err
		})
	})
	wg.Wait()

	if err := s.refreshRosters(ctx, league, season, runSection); err != nil {
		return RefreshResult{}, err
	}

	sort.SliceStable(result.Sections, func(i, j int) bool {
		return result.Sections[i].Name < result.Sections[j].Name
	})
	for _, section := range result.Sections {
		if section.Status == refreshStatusSuccess {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
	}
	return result, nil
}

// refreshRosters fans roster and injury hydration out over a worker pool,
// one task per team.
func (s *RefreshService) refreshRosters(ctx context.Context, league int64, season int, runSection func(string, func(context.Context) (int, error))) error {
	teams, err := s.teams.List(ctx, league, season)
	if err != nil || len(teams) == 0 {
		return nil
	}

	workerCount := s.maxWorkers
	if workerCount > len(teams) {
		workerCount = len(teams)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var rosterRecords, injuryRecords atomic.Int64
	var rosterFailures, injuryFailures atomic.Int64

	var workers sync.WaitGroup
	for _, t := range teams {
		t := t
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			roster, rosterErr := s.players.Roster(ctx, t.ID, season)
			if rosterErr != nil {
				rosterFailures.Add(1)
			} else {
				rosterRecords.Add(int64(len(roster)))
			}

			injuries, injuryErr := s.players.Injuries(ctx, t.ID)
			if injuryErr != nil {
				injuryFailures.Add(1)
			} else {
				injuryRecords.Add(int64(len(injuries)))
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit roster task: %w", err)
		}
	}
	workers.Wait()

	runSection("rosters", func(context.Context) (int, error) {
		if failures := rosterFailures.Load(); failures > 0 {
			return int(rosterRecords.Load()), fmt.Errorf("%d of %d team rosters failed", failures, len(teams))
		}
		return int(rosterRecords.Load()), nil
	})
	runSection("injuries", func(context.Context) (int, error) {
		if failures := injuryFailures.Load(); failures > 0 {
			return int(injuryRecords.Load()), fmt.Errorf("%d of %d injury reports failed", failures, len(teams))
		}
		return int(injuryRecords.Load()), nil
	})
	return nil
}
