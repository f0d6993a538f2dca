package app

import (
	"fmt"
	"net/http"

	"github.com/gridironhq/gridiron-feed/external/apisports"
	"github.com/gridironhq/gridiron-feed/internal/config"
	"github.com/gridironhq/gridiron-feed/internal/interfaces/httpapi"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
	"github.com/gridironhq/gridiron-feed/internal/platform/resilience"
	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	fetcher := apisports.NewClient(apisports.ClientConfig{
		BaseURL:    cfg.APISportsBaseURL,
		APIKey:     cfg.APISportsKey,
		Timeout:    cfg.APISportsTimeout,
		MaxRetries: cfg.APISportsMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APISportsCircuitEnabled,
			FailureThreshold: cfg.APISportsCircuitFailureCount,
			OpenTimeout:      cfg.APISportsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APISportsCircuitHalfOpenReq,
		},
	})

	// Live data (schedules, odds, standings) turns over fast; catalogs do
	// not, so they get their own longer-lived store.
	liveStore := cache.NewStore(cfg.LiveCacheTTL)
	referenceStore := cache.NewStore(cfg.ReferenceCacheTTL)

	scheduleSvc := usecase.NewScheduleService(fetcher, liveStore, logger, cfg.ScheduleWindow)
	oddsSvc := usecase.NewOddsService(fetcher, liveStore, logger, cfg.OddsHorizon)
	standingsSvc := usecase.NewStandingsService(fetcher, liveStore, logger)
	teamSvc := usecase.NewTeamService(fetcher, referenceStore, logger)
	playerSvc := usecase.NewPlayerService(fetcher, referenceStore, logger)
	referenceSvc := usecase.NewReferenceService(fetcher, referenceStore, logger)
	metricsSvc := usecase.NewMetricsService(scheduleSvc, standingsSvc, playerSvc)
	refreshSvc := usecase.NewRefreshService(scheduleSvc, standingsSvc, teamSvc, playerSvc, logger, cfg.RefreshWorkers)

	handler := httpapi.NewHandler(
		scheduleSvc,
		oddsSvc,
		standingsSvc,
		teamSvc,
		playerSvc,
		referenceSvc,
		metricsSvc,
		refreshSvc,
		cfg.LeagueIDByName,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
