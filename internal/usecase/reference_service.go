package usecase

import (
	"context"
	"fmt"

	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

// ReferenceService serves the provider's mostly static catalog resources.
// Payloads are passed through raw; they are lookup tables for the caller,
// not entities this layer models.
type ReferenceService struct {
	fetcher SportsFetcher
	store   *cache.Store
	logger  *logging.Logger
}

func NewReferenceService(fetcher SportsFetcher, store *cache.Store, logger *logging.Logger) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReferenceService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
	}
}

func (s *ReferenceService) Leagues(ctx context.Context) ([]map[string]any, error) {
	return s.cached(ctx, "ref:leagues", s.fetcher.Leagues)
}

func (s *ReferenceService) Seasons(ctx context.Context) ([]map[string]any, error) {
	return s.cached(ctx, "ref:seasons", s.fetcher.Seasons)
}

func (s *ReferenceService) Countries(ctx context.Context) ([]map[string]any, error) {
	return s.cached(ctx, "ref:countries", s.fetcher.Countries)
}

func (s *ReferenceService) Timezones(ctx context.Context) ([]map[string]any, error) {
	return s.cached(ctx, "ref:timezones", s.fetcher.Timezones)
}

func (s *ReferenceService) cached(ctx context.Context, key string, load func(context.Context) ([]map[string]any, error)) ([]map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService."+key)
	defer span.End()

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := load(ctx)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "reference fetch failed, serving empty catalog",
				"key", key,
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
		return nil, fmt.Errorf("unexpected cached reference type %T", value)
	}
	return raw, nil
}
