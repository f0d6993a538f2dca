package normalize

import (
	"strings"

	"github.com/gridironhq/gridiron-feed/internal/domain/game"
)

// quarterKeys maps the spellings seen across payload versions onto the
// canonical quarter labels.
var quarterKeys = map[string]string{
	"quarter_1": "quarter_1",
	"quarter_2": "quarter_2",
	"quarter_3": "quarter_3",
	"quarter_4": "quarter_4",
	"q1":        "quarter_1",
	"q2":        "quarter_2",
	"q3":        "quarter_3",
	"q4":        "quarter_4",
	"overtime":  "overtime",
	"ot":        "overtime",
}

// BuildGame normalizes one raw game payload into the canonical model. The
// entity is always constructed; extraction failures are reported as
// diagnostics alongside it.
func BuildGame(raw map[string]any) (game.Game, []Diagnostic) {
	var diags []Diagnostic

	core := asMap(raw["game"])
	if core == nil {
		core = asMap(raw["fixture"])
	}
	if core == nil {
		core = raw
	}

	out := game.Game{
		ID:   getInt64(core, "id"),
		Week: getString(core, "week", "stage"),
	}

	league := asMap(raw["league"])
	if league == nil {
		league = asMap(core["league"])
	}
	if league != nil {
		out.LeagueID = getInt64(league, "id")
		out.Season = extractSeason(league)
		if out.Week == "" {
			out.Week = getString(league, "round")
		}
	}

	kickoff, diag := ExtractKickoff(core)
	out.KickoffAt = kickoff
	if diag != nil {
		diags = append(diags, *diag)
	}

	short, long, elapsed := ExtractStatus(core["status"])
	out.StatusShort = short
	out.StatusLong = long
	out.Elapsed = elapsed
	out.Status = game.NormalizeStatus(short)

	out.Venue = ExtractVenue(core["venue"])

	teams := asMap(raw["teams"])
	if teams == nil {
		teams = asMap(core["teams"])
	}
	if teams == nil {
		out.Home = game.TeamSide{Name: PlaceholderName}
		out.Away = game.TeamSide{Name: PlaceholderName}
		diags = append(diags, Diagnostic{Field: "teams", Reason: "section is missing"})
	} else {
		home, homeDiag := ExtractTeamSide(teams["home"])
		away, awayDiag := ExtractTeamSide(teams["away"])
		out.Home = home
		out.Away = away
		if homeDiag != nil {
			diags = append(diags, Diagnostic{Field: "teams.home", Reason: homeDiag.Reason})
		}
		if awayDiag != nil {
			diags = append(diags, Diagnostic{Field: "teams.away", Reason: awayDiag.Reason})
		}
	}

	scores := asMap(raw["scores"])
	if scores == nil {
		scores = asMap(core["scores"])
	}
	if scores == nil {
		scores = totalsSection(raw)
	}
	if scores != nil {
		out.HomeScore = extractScore(scores["home"])
		out.AwayScore = extractScore(scores["away"])
	}

	return out, diags
}

// totalsSection finds the flat home/away totals the fixture-shaped feed
// carries instead of a per-quarter scores block.
func totalsSection(raw map[string]any) map[string]any {
	if goals := asMap(raw["goals"]); goals != nil {
		return goals
	}
	if score := asMap(raw["score"]); score != nil {
		if fulltime := asMap(score["fulltime"]); fulltime != nil {
			return fulltime
		}
	}
	return nil
}

// BuildGames normalizes a batch in input order. Malformed entries never
// stop the batch; every failure comes back as an EntryError tagged with
// the offending index, and the batch always yields one entity per entry.
func BuildGames(items []map[string]any) ([]game.Game, []EntryError) {
	out := make([]game.Game, 0, len(items))
	var errs []EntryError

	for i, raw := range items {
		if raw == nil {
			out = append(out, game.Game{
				Home: game.TeamSide{Name: PlaceholderName},
				Away: game.TeamSide{Name: PlaceholderName},
			})
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "entry", Reason: "not an object"}})
			continue
		}

		built, diags := BuildGame(raw)
		out = append(out, built)
		for _, diag := range diags {
			errs = append(errs, EntryError{Index: i, Diag: diag})
		}
	}

	return out, errs
}

func extractScore(raw any) game.Score {
	node := asMap(raw)
	if node == nil {
		if total, ok := raw.(float64); ok {
			v := int(total)
			return game.Score{Total: &v}
		}
		return game.Score{}
	}

	score := game.Score{
		Total: getIntPtr(node, "total"),
	}
	for key := range node {
		canonical, ok := quarterKeys[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		if score.Quarters == nil {
			score.Quarters = make(map[string]*int, 5)
		}
		score.Quarters[canonical] = getIntPtr(node, key)
	}
	return score
}

func extractSeason(league map[string]any) int {
	if season := getInt(league, "season"); season > 0 {
		return season
	}
	if nested := asMap(league["season"]); nested != nil {
		return getInt(nested, "year", "season")
	}
	return 0
}
