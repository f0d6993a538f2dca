package httpapi

import (
	"context"
	"net/http"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	h.serveReference(w, r, "httpapi.Handler.ListLeagues", h.referenceService.Leagues)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	h.serveReference(w, r, "httpapi.Handler.ListSeasons", h.referenceService.Seasons)
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	h.serveReference(w, r, "httpapi.Handler.ListCountries", h.referenceService.Countries)
}

func (h *Handler) ListTimezones(w http.ResponseWriter, r *http.Request) {
	h.serveReference(w, r, "httpapi.Handler.ListTimezones", h.referenceService.Timezones)
}

// serveReference answers catalog endpoints that pass provider payloads
// through untouched.
func (h *Handler) serveReference(w http.ResponseWriter, r *http.Request, spanName string, load func(context.Context) ([]map[string]any, error)) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	items, err := load(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "reference lookup failed", "span", spanName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RefreshLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshLeague")
	defer span.End()

	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.refreshService.Refresh(ctx, league, season)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, refreshResultToDTO(result))
}
