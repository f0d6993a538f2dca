package usecase

import "context"

// stubFetcher implements SportsFetcher with overridable handlers. Any
// handler left nil serves an empty payload.
type stubFetcher struct {
	games            func(context.Context, GamesFilter) ([]map[string]any, error)
	standings        func(context.Context, int64, int) ([]map[string]any, error)
	teams            func(context.Context, int64, int) ([]map[string]any, error)
	players          func(context.Context, int64, int) ([]map[string]any, error)
	playerStatistics func(context.Context, int64, int) ([]map[string]any, error)
	teamStatistics   func(context.Context, int64, int64, int) ([]map[string]any, error)
	odds             func(context.Context, int64) ([]map[string]any, error)
	injuries         func(context.Context, int64) ([]map[string]any, error)
	catalog          func(context.Context) ([]map[string]any, error)
	gameEvents       func(context.Context, int64) ([]map[string]any, error)
	gamePlayers      func(context.Context, int64) ([]map[string]any, error)
}

func (s *stubFetcher) Games(ctx context.Context, filter GamesFilter) ([]map[string]any, error) {
	if s.games == nil {
		return []map[string]any{}, nil
	}
	return s.games(ctx, filter)
}

func (s *stubFetcher) Standings(ctx context.Context, league int64, season int) ([]map[string]any, error) {
	if s.standings == nil {
		return []map[string]any{}, nil
	}
	return s.standings(ctx, league, season)
}

func (s *stubFetcher) Teams(ctx context.Context, league int64, season int) ([]map[string]any, error) {
	if s.teams == nil {
		return []map[string]any{}, nil
	}
	return s.teams(ctx, league, season)
}

func (s *stubFetcher) Players(ctx context.Context, teamID int64, season int) ([]map[string]any, error) {
	if s.players == nil {
		return []map[string]any{}, nil
	}
	return s.players(ctx, teamID, season)
}

func (s *stubFetcher) PlayerStatistics(ctx context.Context, playerID int64, season int) ([]map[string]any, error) {
	if s.playerStatistics == nil {
		return []map[string]any{}, nil
	}
	return s.playerStatistics(ctx, playerID, season)
}

func (s *stubFetcher) TeamStatistics(ctx context.Context, league int64, teamID int64, season int) ([]map[string]any, error) {
	if s.teamStatistics == nil {
		return []map[string]any{}, nil
	}
	return s.teamStatistics(ctx, league, teamID, season)
}

func (s *stubFetcher) Odds(ctx context.Context, gameID int64) ([]map[string]any, error) {
	if s.odds == nil {
		return []map[string]any{}, nil
	}
	return s.odds(ctx, gameID)
}

func (s *stubFetcher) Injuries(ctx context.Context, teamID int64) ([]map[string]any, error) {
	if s.injuries == nil {
		return []map[string]any{}, nil
	}
	return s.injuries(ctx, teamID)
}

func (s *stubFetcher) Leagues(ctx context.Context) ([]map[string]any, error)   { return s.catalogOrEmpty(ctx) }
func (s *stubFetcher) Seasons(ctx context.Context) ([]map[string]any, error)   { return s.catalogOrEmpty(ctx) }
func (s *stubFetcher) Countries(ctx context.Context) ([]map[string]any, error) { return s.catalogOrEmpty(ctx) }
func (s *stubFetcher) Timezones(ctx context.Context) ([]map[string]any, error) { return s.catalogOrEmpty(ctx) }

func (s *stubFetcher) GameEvents(ctx context.Context, gameID int64) ([]map[string]any, error) {
	if s.gameEvents == nil {
		return []map[string]any{}, nil
	}
	return s.gameEvents(ctx, gameID)
}

func (s *stubFetcher) GamePlayers(ctx context.Context, gameID int64) ([]map[string]any, error) {
	if s.gamePlayers == nil {
		return []map[string]any{}, nil
	}
	return s.gamePlayers(ctx, gameID)
}

func (s *stubFetcher) catalogOrEmpty(ctx context.Context) ([]map[string]any, error) {
	if s.catalog == nil {
		return []map[string]any{}, nil
	}
	return s.catalog(ctx)
}
