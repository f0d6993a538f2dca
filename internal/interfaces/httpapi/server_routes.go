package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}/odds", handler.GetGameOdds)
	mux.HandleFunc("GET /v1/games/{gameID}/events", handler.GetGameEvents)
	mux.HandleFunc("GET /v1/games/{gameID}/statistics", handler.GetGamePlayerStatistics)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/statistics", handler.GetTeamStatistics)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.GetRoster)
	mux.HandleFunc("GET /v1/teams/{teamID}/injuries", handler.GetInjuries)
	mux.HandleFunc("GET /v1/teams/{teamID}/roster-breakdown", handler.GetRosterBreakdown)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/statistics", handler.GetPlayerStatistics)
	mux.HandleFunc("GET /v1/injuries", handler.ListInjuries)
	mux.HandleFunc("GET /v1/metrics/summary", handler.GetLeagueSummary)
	mux.HandleFunc("GET /v1/metrics/compare", handler.CompareTeams)
	mux.HandleFunc("POST /v1/refresh", handler.RefreshLeague)
}

func registerReferenceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/countries", handler.ListCountries)
	mux.HandleFunc("GET /v1/timezones", handler.ListTimezones)
}
