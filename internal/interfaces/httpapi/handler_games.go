package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

const rangeDateLayout = "2006-01-02"

type listGamesRequest struct {
	Bucket string `validate:"omitempty,oneof=live upcoming recent"`
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
	Date   string `validate:"omitempty,datetime=2006-01-02"`
	Team   string `validate:"omitempty,number"`
	Week   string
}

// ListGames serves the league schedule. With from/to set it returns the
// games inside that range and nothing else; with date, team or week set it
// returns the matching flat list; with bucket set it returns one bucket;
// otherwise all three buckets.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := listGamesRequest{
		Bucket: strings.TrimSpace(r.URL.Query().Get("bucket")),
		From:   strings.TrimSpace(r.URL.Query().Get("from")),
		To:     strings.TrimSpace(r.URL.Query().Get("to")),
		Date:   strings.TrimSpace(r.URL.Query().Get("date")),
		Team:   strings.TrimSpace(r.URL.Query().Get("team")),
		Week:   strings.TrimSpace(r.URL.Query().Get("week")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if req.From != "" || req.To != "" {
		h.listGamesInRange(w, r, league, season, req)
		return
	}

	if req.Date != "" || req.Team != "" || req.Week != "" {
		h.listGamesFiltered(w, r, league, season, req)
		return
	}

	buckets, err := h.scheduleService.Buckets(ctx, league, season)
	if err != nil {
		h.logger.WarnContext(ctx, "bucket games failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	switch req.Bucket {
	case "live":
		writeSuccess(ctx, w, http.StatusOK, gamesToDTO(buckets.Live))
	case "upcoming":
		writeSuccess(ctx, w, http.StatusOK, gamesToDTO(buckets.Upcoming))
	case "recent":
		writeSuccess(ctx, w, http.StatusOK, gamesToDTO(buckets.Recent))
	default:
		writeSuccess(ctx, w, http.StatusOK, gameBucketsDTO{
			Live:     gamesToDTO(buckets.Live),
			Upcoming: gamesToDTO(buckets.Upcoming),
			Recent:   gamesToDTO(buckets.Recent),
		})
	}
}

func (h *Handler) listGamesInRange(w http.ResponseWriter, r *http.Request, league int64, season int, req listGamesRequest) {
	ctx := r.Context()

	if req.From == "" || req.To == "" {
		writeError(ctx, w, fmt.Errorf("%w: from and to must be supplied together", usecase.ErrInvalidInput))
		return
	}
	if req.Bucket != "" {
		writeError(ctx, w, fmt.Errorf("%w: bucket cannot be combined with a custom range", usecase.ErrInvalidInput))
		return
	}
	if req.Date != "" || req.Team != "" || req.Week != "" {
		writeError(ctx, w, fmt.Errorf("%w: date, team and week cannot be combined with a custom range", usecase.ErrInvalidInput))
		return
	}

	from, err := time.ParseInLocation(rangeDateLayout, req.From, time.UTC)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: from must be a YYYY-MM-DD date", usecase.ErrInvalidInput))
		return
	}
	to, err := time.ParseInLocation(rangeDateLayout, req.To, time.UTC)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: to must be a YYYY-MM-DD date", usecase.ErrInvalidInput))
		return
	}
	// The range is inclusive of both days, so push the end to end of day.
	to = to.Add(24*time.Hour - time.Nanosecond)

	games, err := h.scheduleService.Range(ctx, league, season, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "range games failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(games))
}

func (h *Handler) listGamesFiltered(w http.ResponseWriter, r *http.Request, league int64, season int, req listGamesRequest) {
	ctx := r.Context()

	if req.Bucket != "" {
		writeError(ctx, w, fmt.Errorf("%w: bucket cannot be combined with schedule filters", usecase.ErrInvalidInput))
		return
	}

	query := usecase.GamesQuery{Date: req.Date, Week: req.Week}
	if req.Team != "" {
		teamID, err := strconv.ParseInt(req.Team, 10, 64)
		if err != nil || teamID <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: team must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		query.TeamID = teamID
	}

	games, err := h.scheduleService.ListGamesFiltered(ctx, league, season, query)
	if err != nil {
		h.logger.WarnContext(ctx, "filtered games failed", "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gamesToDTO(games))
}

func (h *Handler) GetGameEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameEvents")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.scheduleService.GameEvents(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "game events failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, events)
}

func (h *Handler) GetGamePlayerStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGamePlayerStatistics")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scheduleService.GamePlayerStatistics(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "game player statistics failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

// GetGameOdds resolves the game, applies the pre-match availability policy
// and answers either one bookmaker's view or a cross-bookmaker comparison.
func (h *Handler) GetGameOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameOdds")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	league, season, err := h.leagueSeasonQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.scheduleService.Game(ctx, league, season, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve game failed", "game_id", gameID, "league_id", league, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	bookmaker := strings.TrimSpace(r.URL.Query().Get("bookmaker"))
	market := strings.TrimSpace(r.URL.Query().Get("market"))

	if bookmaker != "" {
		view, availability, err := h.oddsService.BookmakerView(ctx, g, bookmaker)
		if err != nil {
			h.logger.WarnContext(ctx, "bookmaker view failed", "game_id", gameID, "bookmaker", bookmaker, "error", err)
			writeError(ctx, w, err)
			return
		}
		if !availability.Open() {
			writeSuccess(ctx, w, http.StatusOK, oddsResponseDTO{Availability: availability.Reason})
			return
		}
		dto := bookmakerViewDTO{GameID: view.GameID, Bookmaker: view.Bookmaker, Markets: marketsToDTO(view.Markets)}
		writeSuccess(ctx, w, http.StatusOK, oddsResponseDTO{Availability: availability.Reason, Bookmaker: &dto})
		return
	}

	matrices, availability, err := h.oddsService.Comparison(ctx, g, market)
	if err != nil {
		h.logger.WarnContext(ctx, "odds comparison failed", "game_id", gameID, "market", market, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !availability.Open() {
		writeSuccess(ctx, w, http.StatusOK, oddsResponseDTO{Availability: availability.Reason})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, oddsResponseDTO{
		Availability: availability.Reason,
		Comparison:   matricesToDTO(matrices),
	})
}
