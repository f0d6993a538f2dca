package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/gridironhq/gridiron-feed/internal/domain/player"
	"github.com/gridironhq/gridiron-feed/internal/domain/standing"
	"github.com/gridironhq/gridiron-feed/internal/normalize"
)

// LeagueSummary aggregates one league season at a glance.
type LeagueSummary struct {
	LeagueID      int64
	Season        int
	TotalGames    int
	LiveGames     int
	UpcomingGames int
	RecentGames   int
	TotalTeams    int
	ByConference  map[string]int
	TopTeam       string
	TopTeamPoints int
}

// TeamComparisonRow is one team's slice of a side-by-side comparison.
type TeamComparisonRow struct {
	TeamID        int64
	TeamName      string
	Played        int
	Won           int
	Lost          int
	Ties          int
	PointsFor     int
	PointsAgainst int
	PointsDiff    int
	WinPct        float64
}

type MetricsService struct {
	schedule  *ScheduleService
	standings *StandingsService
	players   *PlayerService
}

func NewMetricsService(schedule *ScheduleService, standings *StandingsService, players *PlayerService) *MetricsService {
	return &MetricsService{
		schedule:  schedule,
		standings: standings,
		players:   players,
	}
}

// Summary combines schedule buckets and the league table into one
// aggregate. A section that degraded to empty simply contributes zeros.
func (s *MetricsService) Summary(ctx context.Context, league int64, season int) (LeagueSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MetricsService.Summary")
	defer span.End()

	games, err := s.schedule.ListGames(ctx, league, season)
	if err != nil {
		return LeagueSummary{}, err
	}
	buckets, err := s.schedule.Buckets(ctx, league, season)
	if err != nil {
		return LeagueSummary{}, err
	}
	rows, err := s.standings.List(ctx, league, season)
	if err != nil {
		return LeagueSummary{}, err
	}

	summary := LeagueSummary{
		LeagueID:      league,
		Season:        season,
		TotalGames:    len(games),
		LiveGames:     len(buckets.Live),
		UpcomingGames: len(buckets.Upcoming),
		RecentGames:   len(buckets.Recent),
		TotalTeams:    len(rows),
		ByConference:  CountByConference(rows),
	}
	if len(rows) > 0 {
		summary.TopTeam = rows[0].TeamName
		summary.TopTeamPoints = rows[0].Points
	}
	return summary, nil
}

// CompareTeams builds side-by-side rows for the chosen teams, in the
// order the caller asked for them.
func (s *MetricsService) CompareTeams(ctx context.Context, league int64, season int, teamIDs []int64) ([]TeamComparisonRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MetricsService.CompareTeams")
	defer span.End()

	if len(teamIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one team id is required", ErrInvalidInput)
	}

	rows, err := s.standings.List(ctx, league, season)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]standing.Standing, len(rows))
	for _, row := range rows {
		byID[row.TeamID] = row
	}

	out := make([]TeamComparisonRow, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		row, ok := byID[teamID]
		if !ok {
			return nil, fmt.Errorf("%w: team %d has no standings row", ErrNotFound, teamID)
		}
		out = append(out, TeamComparisonRow{
			TeamID:        row.TeamID,
			TeamName:      row.TeamName,
			Played:        row.Overall.Played,
			Won:           row.Overall.Won,
			Lost:          row.Overall.Lost,
			Ties:          row.Overall.Ties,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			PointsDiff:    row.PointsDiff,
			WinPct:        WinPercentage(row.Overall.Won, row.Overall.Played),
		})
	}
	return out, nil
}

// RosterBreakdown counts a team's roster by position group.
func (s *MetricsService) RosterBreakdown(ctx context.Context, teamID int64, season int) (map[string]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MetricsService.RosterBreakdown")
	defer span.End()

	roster, err := s.players.Roster(ctx, teamID, season)
	if err != nil {
		return nil, err
	}
	return CountByPosition(roster), nil
}

// WinPercentage is wins over games played as a percentage, rounded to one
// decimal. Zero games played means zero percent, never a division error.
func WinPercentage(won, played int) float64 {
	if played <= 0 {
		return 0
	}
	pct := float64(won) / float64(played) * 100
	return math.Round(pct*10) / 10
}

// CountByPosition groups players by position group, falling back to the
// position code when the group is absent.
func CountByPosition(players []player.Player) map[string]int {
	out := make(map[string]int, 8)
	for _, p := range players {
		label := p.Group
		if label == "" {
			label = p.Position
		}
		if label == "" {
			label = normalize.PlaceholderName
		}
		out[label]++
	}
	return out
}

// CountByConference groups standings rows by conference label.
func CountByConference(rows []standing.Standing) map[string]int {
	out := make(map[string]int, 2)
	for _, row := range rows {
		label := row.Conference
		if label == "" {
			label = normalize.PlaceholderName
		}
		out[label]++
	}
	return out
}
