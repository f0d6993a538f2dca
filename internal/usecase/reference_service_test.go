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

func TestReferenceService_CatalogsAreCached(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	fetcher := &stubFetcher{
		catalog: func(context.Context) ([]map[string]any, error) {
			fetches.Add(1)
			return []map[string]any{{"id": float64(1), "name": "NFL"}}, nil
		},
	}
	svc := NewReferenceService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	for range 3 {
		leagues, err := svc.Leagues(context.Background())
		if err != nil {
			t.Fatalf("leagues: %v", err)
		}
		if len(leagues) != 1 {
			t.Fatalf("expected 1 league, got %d", len(leagues))
		}
	}
	if fetches.Load() != 1 {
		t.Fatalf("expected 1 upstream fetch, got %d", fetches.Load())
	}
}

func TestReferenceService_CatalogsCachedIndependently(t *testing.T) {
	t.Parallel()

	var fetches atomic.Int32
	fetcher := &stubFetcher{
		catalog: func(context.Context) ([]map[string]any, error) {
			fetches.Add(1)
			return []map[string]any{{"name": "entry"}}, nil
		},
	}
	svc := NewReferenceService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	if _, err := svc.Leagues(context.Background()); err != nil {
		t.Fatalf("leagues: %v", err)
	}
	if _, err := svc.Timezones(context.Background()); err != nil {
		t.Fatalf("timezones: %v", err)
	}
	if fetches.Load() != 2 {
		t.Fatalf("expected separate cache keys per catalog, got %d fetches", fetches.Load())
	}
}

func TestReferenceService_FetchFailureDegrades(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{
		catalog: func(context.Context) ([]map[string]any, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := NewReferenceService(fetcher, cache.NewStore(time.Minute), logging.NewNop())

	countries, err := svc.Countries(context.Background())
	if err != nil {
		t.Fatalf("expected degradation, got error: %v", err)
	}
	if len(countries) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(countries))
	}
}
