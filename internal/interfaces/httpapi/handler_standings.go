package httpapi

import (
	"net/http"
	"strings"

	"github.com/gridironhq/gridiron-feed/internal/domain/standing"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("group")), "conference") {
		grouped, err := h.standingsService.ByConference(ctx, league, season)
		if err != nil {
			h.logger.WarnContext(ctx, "grouped standings failed", "league_id", league, "season", season, "error", err)
			writeError(ctx, w, err)
			return
		}

		out := make(map[string][]standingDTO, len(grouped))
		for conference, rows := range grouped {
			out[conference] = standingsToDTO(rows)
		}
		writeSuccess(ctx, w, http.StatusOK, out)
		return
	}

	rows, err := h.standingsService.List(ctx, league, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func standingsToDTO(rows []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingToDTO(row))
	}
	return out
}
