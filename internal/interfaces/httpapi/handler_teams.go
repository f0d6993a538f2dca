package httpapi

import (
	"net/http"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.teamService.List(ctx, league, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Get(ctx, league, season, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "league_id", league, "season", season, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStatistics")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.teamService.Statistics(ctx, league, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "team statistics failed", "league_id", league, "season", season, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stats)
}
