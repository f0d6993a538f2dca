package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/domain/game"
)

// PlaceholderName stands in for display identity fields the upstream
// payload did not supply.
const PlaceholderName = "N/A"

// PlaceholderVenue stands in for a missing venue name.
const PlaceholderVenue = "Unknown"

// Diagnostic records one non-fatal extraction failure. Entities are still
// constructed when a field cannot be extracted; the diagnostic tells the
// caller which field fell back to its default.
type Diagnostic struct {
	Field  string
	Reason string
}

func (d Diagnostic) String() string {
	return d.Field + ": " + d.Reason
}

// EntryError tags a Diagnostic with the index of the batch entry it came
// from. Batch builders return these instead of aborting.
type EntryError struct {
	Index int
	Diag  Diagnostic
}

func (e EntryError) Error() string {
	return fmt.Sprintf("entry %d: %s", e.Index, e.Diag)
}

func asMap(raw any) map[string]any {
	if raw == nil {
		return nil
	}
	value, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return value
}

func asSlice(raw any) []any {
	if raw == nil {
		return nil
	}
	value, ok := raw.([]any)
	if !ok {
		return nil
	}
	return value
}

func getString(src map[string]any, keys ...string) string {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		switch value := raw.(type) {
		case string:
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		case float64:
			if value == math.Trunc(value) {
				return strconv.FormatInt(int64(value), 10)
			}
			return strconv.FormatFloat(value, 'f', -1, 64)
		}
	}
	return ""
}

func getInt64(src map[string]any, keys ...string) int64 {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		switch value := raw.(type) {
		case float64:
			return int64(value)
		case int64:
			return value
		case int:
			return int64(value)
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
			if err == nil {
				return parsed
			}
		}
	}
	return 0
}

func getInt(src map[string]any, keys ...string) int {
	return int(getInt64(src, keys...))
}

// getIntPtr keeps absence distinct from zero; null and missing values both
// come back as nil.
func getIntPtr(src map[string]any, keys ...string) *int {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		switch value := raw.(type) {
		case float64:
			v := int(value)
			return &v
		case int64:
			v := int(value)
			return &v
		case int:
			v := value
			return &v
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(value))
			if err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func getBool(src map[string]any, keys ...string) bool {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		switch value := raw.(type) {
		case bool:
			return value
		case string:
			switch strings.ToLower(strings.TrimSpace(value)) {
			case "true", "yes", "1":
				return true
			}
		case float64:
			return value != 0
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// kickoffExtractor is one strategy in the kickoff fallback chain. The
// chain is tried in order and the first successful parse wins.
type kickoffExtractor struct {
	name string
	fn   func(map[string]any) *time.Time
}

var kickoffChain = []kickoffExtractor{
	{"epoch", kickoffFromEpoch},
	{"date+time pair", kickoffFromSplitPair},
	{"iso-8601", kickoffFromISO},
	{"human-formatted", kickoffFromHuman},
}

// ExtractKickoff resolves the kickoff instant from whichever encoding the
// payload uses. It accepts both the nested date object shape and flat
// top-level fields. A nil result never aborts entity construction; the
// returned Diagnostic says which encodings were tried.
func ExtractKickoff(raw map[string]any) (*time.Time, *Diagnostic) {
	if raw == nil {
		return nil, &Diagnostic{Field: "kickoff", Reason: "payload is not an object"}
	}

	candidates := []map[string]any{raw}
	if dateMap := asMap(raw["date"]); dateMap != nil {
		candidates = append([]map[string]any{dateMap}, candidates...)
	}

	// Each encoding is tried across every candidate before the chain moves
	// on, so an epoch anywhere in the payload beats a date+time pair.
	for _, extractor := range kickoffChain {
		for _, candidate := range candidates {
			if parsed := extractor.fn(candidate); parsed != nil {
				return parsed, nil
			}
		}
	}

	return nil, &Diagnostic{Field: "kickoff", Reason: "no parseable date encoding found"}
}

func kickoffFromEpoch(src map[string]any) *time.Time {
	raw, ok := src["timestamp"]
	if !ok || raw == nil {
		return nil
	}

	var epoch int64
	switch value := raw.(type) {
	case float64:
		epoch = int64(value)
	case int64:
		epoch = value
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil
		}
		epoch = parsed
	default:
		return nil
	}
	if epoch <= 0 {
		return nil
	}

	instant := time.Unix(epoch, 0).UTC()
	return &instant
}

func kickoffFromSplitPair(src map[string]any) *time.Time {
	date := getString(src, "date")
	clock := getString(src, "time")
	if date == "" || clock == "" || strings.Contains(date, "T") {
		return nil
	}

	if len(clock) == len("15:04") {
		clock += ":00"
	}
	parsed, err := time.Parse(time.RFC3339, date+"T"+clock+"Z")
	if err != nil {
		return nil
	}
	instant := parsed.UTC()
	return &instant
}

func kickoffFromISO(src map[string]any) *time.Time {
	candidate := getString(src, "date")
	if candidate == "" || !strings.Contains(candidate, "T") {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z07:00", "2006-01-02T15:04Z07:00"} {
		parsed, err := time.Parse(layout, candidate)
		if err == nil {
			instant := parsed.UTC()
			return &instant
		}
	}
	return nil
}

func kickoffFromHuman(src map[string]any) *time.Time {
	candidate := getString(src, "date")
	if candidate == "" {
		return nil
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, candidate)
		if err == nil {
			instant := parsed.UTC()
			return &instant
		}
	}
	return nil
}

// ExtractVenue accepts a nested venue object, a flat string, or nothing.
func ExtractVenue(raw any) game.Venue {
	switch typed := raw.(type) {
	case map[string]any:
		name := getString(typed, "name")
		if name == "" {
			name = PlaceholderVenue
		}
		return game.Venue{
			Name: name,
			City: getString(typed, "city"),
		}
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			return game.Venue{Name: trimmed}
		}
		return game.Venue{Name: PlaceholderVenue}
	default:
		return game.Venue{Name: PlaceholderVenue}
	}
}

// ExtractTeamSide reads one side of a game. The provider nests the team
// under a "team" key in some payload versions and inlines it in others.
func ExtractTeamSide(raw any) (game.TeamSide, *Diagnostic) {
	node := asMap(raw)
	if node == nil {
		return game.TeamSide{Name: PlaceholderName}, &Diagnostic{Field: "team", Reason: "side is not an object"}
	}
	if nested := asMap(node["team"]); nested != nil {
		node = nested
	}

	name := getString(node, "name")
	if name == "" {
		return game.TeamSide{
			ID:   getInt64(node, "id"),
			Name: PlaceholderName,
			Logo: getString(node, "logo"),
		}, &Diagnostic{Field: "team", Reason: "name is missing"}
	}

	return game.TeamSide{
		ID:   getInt64(node, "id"),
		Name: name,
		Logo: getString(node, "logo"),
	}, nil
}

// ExtractStatus reads a status object with short/long codes or a bare
// status string.
func ExtractStatus(raw any) (short string, long string, elapsed *int) {
	switch typed := raw.(type) {
	case map[string]any:
		short = getString(typed, "short")
		long = getString(typed, "long")
		elapsed = getIntPtr(typed, "timer", "elapsed")
		if short == "" {
			short = long
		}
		return short, long, elapsed
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed, trimmed, nil
	default:
		return "", "", nil
	}
}
