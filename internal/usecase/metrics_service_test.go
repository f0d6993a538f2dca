package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/domain/player"
	"github.com/gridironhq/gridiron-feed/internal/domain/standing"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

func TestWinPercentage(t *testing.T) {
	t.Parallel()

	if got := WinPercentage(5, 0); got != 0 {
		t.Fatalf("zero games played must be zero percent, got %v", got)
	}
	if got := WinPercentage(0, 0); got != 0 {
		t.Fatalf("zero over zero must be zero percent, got %v", got)
	}
	if got := WinPercentage(5, 8); got != 62.5 {
		t.Fatalf("unexpected percentage %v", got)
	}
	if got := WinPercentage(1, 3); got != 33.3 {
		t.Fatalf("expected one-decimal rounding, got %v", got)
	}
}

func TestCountByPosition(t *testing.T) {
	t.Parallel()

	players := []player.Player{
		{Name: "A", Group: "Offense"},
		{Name: "B", Group: "Offense"},
		{Name: "C", Position: "K"},
		{Name: "D"},
	}

	counts := CountByPosition(players)
	if counts["Offense"] != 2 || counts["K"] != 1 || counts["N/A"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestCountByConference(t *testing.T) {
	t.Parallel()

	rows := []standing.Standing{
		{TeamName: "A", Conference: "AFC"},
		{TeamName: "B", Conference: "AFC"},
		{TeamName: "C", Conference: "NFC"},
		{TeamName: "D"},
	}

	counts := CountByConference(rows)
	if counts["AFC"] != 2 || counts["NFC"] != 1 || counts["N/A"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func newMetricsFixture(fetcher SportsFetcher) *MetricsService {
	store := cache.NewStore(time.Minute)
	logger := logging.NewNop()
	schedule := NewScheduleService(fetcher, store, logger, 0)
	standings := NewStandingsService(fetcher, store, logger)
	players := NewPlayerService(fetcher, store, logger)
	return NewMetricsService(schedule, standings, players)
}

func metricsStandingsPayload() []map[string]any {
	row := func(position int, id int64, name string, won, lost, diff int) map[string]any {
		return map[string]any{
			"position":   float64(position),
			"conference": "AFC",
			"team":       map[string]any{"id": float64(id), "name": name},
			"won":        float64(won),
			"lost":       float64(lost),
			"ties":       float64(0),
			"points": map[string]any{
				"for":        float64(100 + diff),
				"against":    float64(100),
				"difference": float64(diff),
			},
		}
	}
	return []map[string]any{
		row(1, 10, "Kansas City Chiefs", 7, 1, 60),
		row(2, 11, "Denver Broncos", 4, 4, -5),
	}
}

func TestMetricsService_Summary(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		standings: func(context.Context, int64, int) ([]map[string]any, error) {
			return metricsStandingsPayload(), nil
		},
	}

	svc := newMetricsFixture(fetcher)
	summary, err := svc.Summary(context.Background(), 1, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalTeams != 2 || summary.ByConference["AFC"] != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.TopTeam != "Kansas City Chiefs" || summary.TopTeamPoints != 60 {
		t.Fatalf("unexpected leader %q/%d", summary.TopTeam, summary.TopTeamPoints)
	}
	if summary.TotalGames != 0 || summary.LiveGames != 0 {
		t.Fatalf("empty schedule must contribute zeros, got %+v", summary)
	}
}

func TestMetricsService_CompareTeams(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		standings: func(context.Context, int64, int) ([]map[string]any, error) {
			return metricsStandingsPayload(), nil
		},
	}

	svc := newMetricsFixture(fetcher)
	ctx := context.Background()

	rows, err := svc.CompareTeams(ctx, 1, 2024, []int64{11, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].TeamID != 11 || rows[1].TeamID != 10 {
		t.Fatalf("rows must follow the requested order, got %+v", rows)
	}
	if rows[0].WinPct != 50 {
		t.Fatalf("unexpected win percentage %v", rows[0].WinPct)
	}

	if _, err := svc.CompareTeams(ctx, 1, 2024, []int64{999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
	if _, err := svc.CompareTeams(ctx, 1, 2024, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty selection, got %v", err)
	}
}
