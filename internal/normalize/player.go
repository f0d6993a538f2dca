package normalize

import "github.com/gridironhq/gridiron-feed/internal/domain/player"

// BuildPlayer normalizes one roster entry. The injured flag defaults to
// false when the feed omits it.
func BuildPlayer(raw map[string]any) (player.Player, []Diagnostic) {
	var diags []Diagnostic

	core := asMap(raw["player"])
	if core == nil {
		core = raw
	}

	out := player.Player{
		ID:          getInt64(core, "id"),
		Name:        getString(core, "name"),
		FirstName:   getString(core, "firstname", "first_name"),
		LastName:    getString(core, "lastname", "last_name"),
		Age:         getIntPtr(core, "age"),
		Nationality: getString(core, "nationality"),
		Height:      getString(core, "height"),
		Weight:      getString(core, "weight"),
		Position:    getString(core, "position"),
		Group:       getString(core, "group"),
		Number:      getIntPtr(core, "number"),
		Injured:     getBool(core, "injured"),
		Photo:       getString(core, "image", "photo"),
		College:     getString(core, "college"),
		Salary:      getString(core, "salary"),
		Experience:  getIntPtr(core, "experience"),
	}
	if out.Name == "" {
		out.Name = firstNonEmpty(out.FirstName+" "+out.LastName, PlaceholderName)
		if out.Name == PlaceholderName {
			diags = append(diags, Diagnostic{Field: "name", Reason: "missing"})
		}
	}

	if birth := asMap(core["birth"]); birth != nil {
		out.BirthDate = getString(birth, "date")
		out.BirthPlace = getString(birth, "place")
		if out.Nationality == "" {
			out.Nationality = getString(birth, "country")
		}
	} else {
		out.BirthDate = getString(core, "birth_date", "birthdate")
		out.BirthPlace = getString(core, "birth_place")
	}

	if side, diag := ExtractTeamSide(raw["team"]); diag == nil {
		out.TeamID = side.ID
		out.TeamName = side.Name
		out.TeamLogo = side.Logo
	}

	return out, diags
}

func BuildPlayers(items []map[string]any) ([]player.Player, []EntryError) {
	out := make([]player.Player, 0, len(items))
	var errs []EntryError

	for i, raw := range items {
		if raw == nil {
			out = append(out, player.Player{Name: PlaceholderName})
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "entry", Reason: "not an object"}})
			continue
		}

		built, diags := BuildPlayer(raw)
		out = append(out, built)
		for _, diag := range diags {
			errs = append(errs, EntryError{Index: i, Diag: diag})
		}
	}

	return out, errs
}

// BuildInjury normalizes one injury-report entry.
func BuildInjury(raw map[string]any) (player.Injury, []Diagnostic) {
	var diags []Diagnostic

	out := player.Injury{
		Status:      getString(raw, "status"),
		Description: getString(raw, "description"),
		Date:        getString(raw, "date"),
	}

	if side, diag := ExtractTeamSide(raw["player"]); diag == nil {
		out.PlayerID = side.ID
		out.PlayerName = side.Name
	} else {
		out.PlayerName = PlaceholderName
		diags = append(diags, Diagnostic{Field: "player", Reason: diag.Reason})
	}
	if side, diag := ExtractTeamSide(raw["team"]); diag == nil {
		out.TeamID = side.ID
		out.TeamName = side.Name
	}

	return out, diags
}

func BuildInjuries(items []map[string]any) ([]player.Injury, []EntryError) {
	out := make([]player.Injury, 0, len(items))
	var errs []EntryError

	for i, raw := range items {
		if raw == nil {
			out = append(out, player.Injury{PlayerName: PlaceholderName})
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "entry", Reason: "not an object"}})
			continue
		}

		built, diags := BuildInjury(raw)
		out = append(out, built)
		for _, diag := range diags {
			errs = append(errs, EntryError{Index: i, Diag: diag})
		}
	}

	return out, errs
}
