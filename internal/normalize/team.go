package normalize

import "github.com/gridironhq/gridiron-feed/internal/domain/team"

// BuildTeam normalizes one raw team payload. Country appears either as a
// nested object or a flat string depending on payload version.
func BuildTeam(raw map[string]any) (team.Team, []Diagnostic) {
	var diags []Diagnostic

	core := asMap(raw["team"])
	if core == nil {
		core = raw
	}

	out := team.Team{
		ID:          getInt64(core, "id"),
		Name:        getString(core, "name"),
		Code:        getString(core, "code"),
		Logo:        getString(core, "logo"),
		City:        getString(core, "city"),
		Coach:       getString(core, "coach"),
		Owner:       getString(core, "owner"),
		Stadium:     getString(core, "stadium"),
		Established: getIntPtr(core, "established"),
		National:    getBool(core, "national"),
	}
	if out.Name == "" {
		out.Name = PlaceholderName
		diags = append(diags, Diagnostic{Field: "name", Reason: "missing"})
	}

	switch country := core["country"].(type) {
	case map[string]any:
		out.Country = getString(country, "name")
	case string:
		out.Country = country
	}

	return out, diags
}

func BuildTeams(items []map[string]any) ([]team.Team, []EntryError) {
	out := make([]team.Team, 0, len(items))
	var errs []EntryError

	for i, raw := range items {
		if raw == nil {
			out = append(out, team.Team{Name: PlaceholderName})
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "entry", Reason: "not an object"}})
			continue
		}

		built, diags := BuildTeam(raw)
		out = append(out, built)
		for _, diag := range diags {
			errs = append(errs, EntryError{Index: i, Diag: diag})
		}
	}

	return out, errs
}
