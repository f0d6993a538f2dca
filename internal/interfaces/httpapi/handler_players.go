package httpapi

import (
	"net/http"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.playerService.Roster(ctx, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team_id", teamID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(roster))
	for _, p := range roster {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetInjuries")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	injuries, err := h.playerService.Injuries(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get injuries failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]injuryDTO, 0, len(injuries))
	for _, injury := range injuries {
		items = append(items, injuryToDTO(injury))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ListPlayers is the query-parameter spelling of GetRoster.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID, err := queryInt64(r, "team")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	roster, err := h.playerService.Roster(ctx, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(roster))
	for _, p := range roster {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// ListInjuries is the query-parameter spelling of GetInjuries.
func (h *Handler) ListInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListInjuries")
	defer span.End()

	teamID, err := queryInt64(r, "team")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	injuries, err := h.playerService.Injuries(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list injuries failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]injuryDTO, 0, len(injuries))
	for _, injury := range injuries {
		items = append(items, injuryToDTO(injury))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStatistics")
	defer span.End()

	playerID, err := pathInt64(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.playerService.Statistics(ctx, playerID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "player statistics failed", "player_id", playerID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}
