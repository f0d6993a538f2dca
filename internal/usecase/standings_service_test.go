package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

func rawStandingRow(rank int, teamID int64, name, conference string, diff int) map[string]any {
	return map[string]any{
		"position":   float64(rank),
		"conference": conference,
		"team":       map[string]any{"id": float64(teamID), "name": name},
		"won":        float64(10),
		"lost":       float64(4),
		"points": map[string]any{
			"for":        float64(350),
			"against":    float64(350 - diff),
			"difference": float64(diff),
		},
		"records": map[string]any{"home": "6-1", "road": "4-3"},
	}
}

func TestStandingsService_ListRecomputesRanks(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		standings: func(context.Context, int64, int) ([]map[string]any, error) {
			return []map[string]any{
				rawStandingRow(5, 11, "Raiders", "AFC", 30),
				rawStandingRow(1, 10, "Chiefs", "AFC", 90),
			}, nil
		},
	}
	svc := NewStandingsService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	rows, err := svc.List(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].TeamName != "Chiefs" || rows[0].Rank != 1 {
		t.Fatalf("expected Chiefs reranked first, got %q rank %d", rows[0].TeamName, rows[0].Rank)
	}
	if rows[1].Rank != 2 {
		t.Fatalf("expected second row rank 2, got %d", rows[1].Rank)
	}
	if rows[0].Home.Won != 6 || rows[0].Road.Lost != 3 {
		t.Fatalf("unexpected split records: home=%+v road=%+v", rows[0].Home, rows[0].Road)
	}
}

func TestStandingsService_ByConferenceGroupsBlankUnderPlaceholder(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		standings: func(context.Context, int64, int) ([]map[string]any, error) {
			return []map[string]any{
				rawStandingRow(1, 10, "Chiefs", "AFC", 90),
				rawStandingRow(2, 20, "Eagles", "NFC", 70),
				rawStandingRow(3, 30, "Wanderers", "", 10),
			}, nil
		},
	}
	svc := NewStandingsService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	grouped, err := svc.ByConference(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("group standings: %v", err)
	}
	if len(grouped["AFC"]) != 1 || len(grouped["NFC"]) != 1 {
		t.Fatalf("unexpected conference groups: %v", grouped)
	}
	if len(grouped["N/A"]) != 1 {
		t.Fatalf("expected blank conference under N/A, got %v", grouped)
	}
}

func TestStandingsService_FetchFailureDegradesToEmptyTable(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		standings: func(context.Context, int64, int) ([]map[string]any, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := NewStandingsService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	rows, err := svc.List(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("expected degradation, got error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}

func TestStandingsService_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewStandingsService(&stubFetcher{}, cache.NewStore(time.Minute), logging.NewNop())

	if _, err := svc.List(context.Background(), 0, 2024); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.List(context.Background(), 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
