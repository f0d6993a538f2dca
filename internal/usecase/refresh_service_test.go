package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

func newRefreshFixture(fetcher SportsFetcher, workers int) *RefreshService {
	store := cache.NewStore(time.Minute)
	logger := logging.NewNop()
	schedule := NewScheduleService(fetcher, store, logger, 0)
	standings := NewStandingsService(fetcher, store, logger)
	teams := NewTeamService(fetcher, store, logger)
	players := NewPlayerService(fetcher, store, logger)
	return NewRefreshService(schedule, standings, teams, players, logger, workers)
}

func refreshTeamsPayload() []map[string]any {
	return []map[string]any{
		{"id": float64(1), "name": "Kansas City Chiefs"},
		{"id": float64(2), "name": "Denver Broncos"},
		{"id": float64(3), "name": "Las Vegas Raiders"},
	}
}

func TestRefreshService_WarmsAllSections(t *testing.T) {
	t.Parallel()

	var rosterCalls, injuryCalls int32
	fetcher := &stubFetcher{
		teams: func(context.Context, int64, int) ([]map[string]any, error) {
			return refreshTeamsPayload(), nil
		},
		players: func(_ context.Context, teamID int64, _ int) ([]map[string]any, error) {
			atomic.AddInt32(&rosterCalls, 1)
			return []map[string]any{{"id": float64(teamID * 100), "name": "Player"}}, nil
		},
		injuries: func(context.Context, int64) ([]map[string]any, error) {
			atomic.AddInt32(&injuryCalls, 1)
			return []map[string]any{}, nil
		},
	}

	svc := newRefreshFixture(fetcher, 2)
	result, err := svc.Refresh(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d (%+v)", len(result.Sections), result.Sections)
	}
	if result.FailedCount != 0 || result.SuccessCount != 5 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if got := atomic.LoadInt32(&rosterCalls); got != 3 {
		t.Fatalf("expected one roster fetch per team, got %d", got)
	}
	if got := atomic.LoadInt32(&injuryCalls); got != 3 {
		t.Fatalf("expected one injury fetch per team, got %d", got)
	}

	byName := make(map[string]RefreshSection, len(result.Sections))
	for _, section := range result.Sections {
		byName[section.Name] = section
	}
	if byName["teams"].Records != 3 {
		t.Fatalf("unexpected teams section %+v", byName["teams"])
	}
	if byName["rosters"].Records != 3 {
		t.Fatalf("unexpected rosters section %+v", byName["rosters"])
	}
}

func TestRefreshService_SectionDegradesIndependently(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		standings: func(context.Context, int64, int) ([]map[string]any, error) {
			return nil, errors.New("upstream down")
		},
		teams: func(context.Context, int64, int) ([]map[string]any, error) {
			return refreshTeamsPayload(), nil
		},
	}

	svc := newRefreshFixture(fetcher, 2)
	result, err := svc.Refresh(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("one bad section must not abort the refresh: %v", err)
	}

	byName := make(map[string]RefreshSection, len(result.Sections))
	for _, section := range result.Sections {
		byName[section.Name] = section
	}

	if byName["standings"].Status != refreshStatusSuccess || byName["standings"].Records != 0 {
		t.Fatalf("fetch failure must degrade standings to empty, got %+v", byName["standings"])
	}
	if byName["teams"].Status != refreshStatusSuccess || byName["teams"].Records != 3 {
		t.Fatalf("healthy section must be unaffected, got %+v", byName["teams"])
	}
}

func TestRefreshService_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	svc := newRefreshFixture(&stubFetcher{}, 2)
	if _, err := svc.Refresh(context.Background(), 0, 2024); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
