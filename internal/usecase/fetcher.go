package usecase

import "context"

// GamesFilter narrows a games fetch. Zero-valued fields are omitted from
// the upstream query.
type GamesFilter struct {
	League int64
	Season int
	Date   string
	TeamID int64
	GameID int64
}

// SportsFetcher is the upstream data collaborator. It owns transport and
// authentication and hands back raw response objects; decoding beyond the
// response envelope is the normalization layer's job. A fetch error means
// "no data for this resource", never a broken pipeline.
type SportsFetcher interface {
	Games(ctx context.Context, filter GamesFilter) ([]map[string]any, error)
	Standings(ctx context.Context, league int64, season int) ([]map[string]any, error)
	Teams(ctx context.Context, league int64, season int) ([]map[string]any, error)
	Players(ctx context.Context, teamID int64, season int) ([]map[string]any, error)
	PlayerStatistics(ctx context.Context, playerID int64, season int) ([]map[string]any, error)
	TeamStatistics(ctx context.Context, league int64, teamID int64, season int) ([]map[string]any, error)
	Odds(ctx context.Context, gameID int64) ([]map[string]any, error)
	Injuries(ctx context.Context, teamID int64) ([]map[string]any, error)
	Leagues(ctx context.Context) ([]map[string]any, error)
	Seasons(ctx context.Context) ([]map[string]any, error)
	Countries(ctx context.Context) ([]map[string]any, error)
	Timezones(ctx context.Context) ([]map[string]any, error)
	GameEvents(ctx context.Context, gameID int64) ([]map[string]any, error)
	GamePlayers(ctx context.Context, gameID int64) ([]map[string]any, error)
}
