package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

type leagueSummaryDTO struct {
	LeagueID      int64          `json:"leagueId"`
	Season        int            `json:"season"`
	TotalGames    int            `json:"totalGames"`
	LiveGames     int            `json:"liveGames"`
	UpcomingGames int            `json:"upcomingGames"`
	RecentGames   int            `json:"recentGames"`
	TotalTeams    int            `json:"totalTeams"`
	ByConference  map[string]int `json:"byConference"`
	TopTeam       string         `json:"topTeam,omitempty"`
	TopTeamPoints int            `json:"topTeamPoints"`
}

type teamComparisonRowDTO struct {
	TeamID        int64   `json:"teamId"`
	TeamName      string  `json:"teamName"`
	Played        int     `json:"played"`
	Won           int     `json:"won"`
	Lost          int     `json:"lost"`
	Ties          int     `json:"ties"`
	PointsFor     int     `json:"pointsFor"`
	PointsAgainst int     `json:"pointsAgainst"`
	PointsDiff    int     `json:"pointsDiff"`
	WinPct        float64 `json:"winPct"`
}

func (h *Handler) GetLeagueSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueSummary")
	defer span.End()

	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.metricsService.Summary(ctx, league, season)
	if err != nil {
		h.logger.WarnContext(ctx, "league summary failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueSummaryDTO(summary))
}

func (h *Handler) CompareTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareTeams")
	defer span.End()

	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamIDs, err := parseTeamIDs(r.URL.Query().Get("teams"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.metricsService.CompareTeams(ctx, league, season, teamIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "compare teams failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamComparisonRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, teamComparisonRowDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRosterBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterBreakdown")
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

	breakdown, err := h.metricsService.RosterBreakdown(ctx, teamID, season)
	if err != nil {
		h.logger.WarnContext(ctx, "roster breakdown failed", "team_id", teamID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakdown)
}

func parseTeamIDs(raw string) ([]int64, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: teams must be a comma-separated list of team ids", usecase.ErrInvalidInput)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: teams query parameter is required", usecase.ErrInvalidInput)
	}
	return ids, nil
}
