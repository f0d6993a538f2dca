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

func TestTeamService_GetFindsTeamInCachedList(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	fetcher := &stubFetcher{
		teams: func(context.Context, int64, int) ([]map[string]any, error) {
			fetches.Add(1)
			return []map[string]any{
				{"id": float64(10), "name": "Chiefs", "code": "KC"},
				{"id": float64(11), "name": "Raiders", "code": "LV"},
			}, nil
		},
	}
	svc := NewTeamService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	got, err := svc.Get(context.Background(), 1, 2024, 11)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "Raiders" {
		t.Fatalf("expected Raiders, got %q", got.Name)
	}

	if _, err := svc.Get(context.Background(), 1, 2024, 10); err != nil {
		t.Fatalf("get second team: %v", err)
	}
	if fetches.Load() != 1 {
		t.Fatalf("expected 1 upstream fetch, got %d", fetches.Load())
	}
}

func TestTeamService_GetUnknownTeam(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		teams: func(context.Context, int64, int) ([]map[string]any, error) {
			return []map[string]any{{"id": float64(10), "name": "Chiefs"}}, nil
		},
	}
	svc := NewTeamService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	if _, err := svc.Get(context.Background(), 1, 2024, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_StatisticsPassesRawThrough(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		teamStatistics: func(_ context.Context, league, teamID int64, season int) ([]map[string]any, error) {
			if league != 1 || teamID != 10 || season != 2024 {
				t.Fatalf("unexpected statistics query %d/%d/%d", league, teamID, season)
			}
			return []map[string]any{{"first_downs": map[string]any{"total": float64(22)}}}, nil
		},
	}
	svc := NewTeamService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	stats, err := svc.Statistics(context.Background(), 1, 10, 2024)
	if err != nil {
		t.Fatalf("team statistics: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 statistics object, got %d", len(stats))
	}
	if _, ok := stats[0]["first_downs"]; !ok {
		t.Fatalf("expected raw payload to pass through untouched")
	}
}

func TestTeamService_ListFetchFailureDegrades(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		teams: func(context.Context, int64, int) ([]map[string]any, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := NewTeamService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	teams, err := svc.List(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("expected degradation, got error: %v", err)
	}
	if len(teams) != 0 {
		t.Fatalf("expected empty list, got %d", len(teams))
	}
}
