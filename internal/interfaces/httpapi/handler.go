package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

type Handler struct {
	scheduleService  *usecase.ScheduleService
	oddsService      *usecase.OddsService
	standingsService *usecase.StandingsService
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	referenceService *usecase.ReferenceService
	metricsService   *usecase.MetricsService
	refreshService   *usecase.RefreshService
	leagueAliases    map[string]int64
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	scheduleService *usecase.ScheduleService,
	oddsService *usecase.OddsService,
	standingsService *usecase.StandingsService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	referenceService *usecase.ReferenceService,
	metricsService *usecase.MetricsService,
	refreshService *usecase.RefreshService,
	leagueAliases map[string]int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scheduleService:  scheduleService,
		oddsService:      oddsService,
		standingsService: standingsService,
		teamService:      teamService,
		playerService:    playerService,
		referenceService: referenceService,
		metricsService:   metricsService,
		refreshService:   refreshService,
		leagueAliases:    leagueAliases,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// leagueSeasonQuery parses the league and season query parameters shared by
// every league-scoped endpoint. League accepts a numeric id or one of the
// configured name aliases like "nfl".
func (h *Handler) leagueSeasonQuery(r *http.Request) (int64, int, error) {
	league, err := h.leagueQuery(r)
	if err != nil {
		return 0, 0, err
	}
	season, err := queryInt(r, "season")
	if err != nil {
		return 0, 0, err
	}
	return league, season, nil
}

func (h *Handler) leagueQuery(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("league"))
	if raw == "" {
		return 0, fmt.Errorf("%w: league query parameter is required", usecase.ErrInvalidInput)
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	if id, ok := h.leagueAliases[strings.ToLower(raw)]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: unknown league %q", usecase.ErrInvalidInput, raw)
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s query parameter is required", usecase.ErrInvalidInput, name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v, err := queryInt64(r, name)
	return int(v), err
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
