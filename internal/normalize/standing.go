package normalize

import (
	"strconv"
	"strings"

	"github.com/gridironhq/gridiron-feed/internal/domain/game"
	"github.com/gridironhq/gridiron-feed/internal/domain/standing"
)

// BuildStanding normalizes one raw standings row. Points is taken from
// whatever the upstream source supplies under its points field; when the
// provider nests a points object the differential is carried through as
// the row's points value, matching the source feed's own convention.
func BuildStanding(raw map[string]any) (standing.Standing, []Diagnostic) {
	var diags []Diagnostic

	out := standing.Standing{
		Rank:       getInt(raw, "position", "rank"),
		Conference: getString(raw, "conference"),
		Division:   getString(raw, "division"),
		Streak:     getString(raw, "streak"),
	}

	side, diag := ExtractTeamSide(raw["team"])
	if diag != nil {
		if flat := getString(raw, "team_name"); flat != "" {
			side = standingTeamFromFlatRow(raw, flat)
			diag = nil
		}
	}
	out.TeamID = side.ID
	out.TeamName = side.Name
	out.TeamLogo = side.Logo
	if diag != nil {
		diags = append(diags, Diagnostic{Field: "team", Reason: diag.Reason})
	}

	out.Overall = standing.Record{
		Won:  getInt(raw, "won", "wins"),
		Lost: getInt(raw, "lost", "losses"),
		Ties: getInt(raw, "ties", "draws"),
	}
	out.Overall.Played = getInt(raw, "played", "games_played")
	if out.Overall.Played == 0 {
		out.Overall.Played = out.Overall.Won + out.Overall.Lost + out.Overall.Ties
	}

	switch points := raw["points"].(type) {
	case map[string]any:
		out.PointsFor = getInt(points, "for")
		out.PointsAgainst = getInt(points, "against")
		out.PointsDiff = getInt(points, "difference")
		out.Points = out.PointsDiff
	case float64:
		out.Points = int(points)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(points))
		if err == nil {
			out.Points = parsed
		} else {
			diags = append(diags, Diagnostic{Field: "points", Reason: "not numeric"})
		}
	}
	if out.PointsDiff == 0 && (out.PointsFor != 0 || out.PointsAgainst != 0) {
		out.PointsDiff = out.PointsFor - out.PointsAgainst
	}

	if records := asMap(raw["records"]); records != nil {
		out.Home = parseRecordString(getString(records, "home"))
		out.Road = parseRecordString(getString(records, "road", "away"))
	}

	return out, diags
}

// BuildStandings normalizes a batch in input order and recomputes ranks
// locally once all rows are built.
func BuildStandings(items []map[string]any) ([]standing.Standing, []EntryError) {
	rows := make([]standing.Standing, 0, len(items))
	var errs []EntryError

	for i, raw := range items {
		if raw == nil {
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "entry", Reason: "not an object"}})
			rows = append(rows, standing.Standing{TeamName: PlaceholderName})
			continue
		}

		built, diags := BuildStanding(raw)
		rows = append(rows, built)
		for _, diag := range diags {
			errs = append(errs, EntryError{Index: i, Diag: diag})
		}
	}

	return standing.Rerank(rows), errs
}

func standingTeamFromFlatRow(raw map[string]any, name string) game.TeamSide {
	return game.TeamSide{
		ID:   getInt64(raw, "team_id"),
		Name: name,
		Logo: getString(raw, "team_logo"),
	}
}

// parseRecordString reads the provider's "W-L" or "W-L-T" record shorthand.
func parseRecordString(raw string) standing.Record {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) < 2 {
		return standing.Record{}
	}

	numbers := make([]int, 0, 3)
	for _, part := range parts[:minInt(len(parts), 3)] {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return standing.Record{}
		}
		numbers = append(numbers, value)
	}

	record := standing.Record{Won: numbers[0], Lost: numbers[1]}
	if len(numbers) == 3 {
		record.Ties = numbers[2]
	}
	record.Played = record.Won + record.Lost + record.Ties
	return record
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
