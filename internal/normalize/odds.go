package normalize

import (
	"strconv"
	"strings"

	"github.com/gridironhq/gridiron-feed/internal/domain/odds"
)

// BuildQuotes normalizes the odds payload for one game into one Quote per
// bookmaker, preserving the source order of bookmakers, markets and
// outcomes.
func BuildQuotes(gameID int64, items []map[string]any) ([]odds.Quote, []EntryError) {
	out := make([]odds.Quote, 0, len(items))
	var errs []EntryError

	for i, raw := range items {
		if raw == nil {
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "entry", Reason: "not an object"}})
			continue
		}

		bookmakers := asSlice(raw["bookmakers"])
		if bookmakers == nil {
			if single := asMap(raw["bookmaker"]); single != nil {
				bookmakers = []any{mergeBookmakerBets(single, raw)}
			}
		}
		if bookmakers == nil {
			errs = append(errs, EntryError{Index: i, Diag: Diagnostic{Field: "bookmakers", Reason: "section is missing"}})
			continue
		}

		update := getString(raw, "update", "last_update")
		for _, node := range bookmakers {
			bookmaker := asMap(node)
			if bookmaker == nil {
				continue
			}

			quote := odds.Quote{
				GameID:        gameID,
				BookmakerID:   getInt64(bookmaker, "id"),
				BookmakerName: firstNonEmpty(getString(bookmaker, "name"), PlaceholderName),
				LastUpdate:    update,
				Markets:       extractMarkets(bookmaker),
			}
			out = append(out, quote)
		}
	}

	return out, errs
}

func extractMarkets(bookmaker map[string]any) []odds.Market {
	bets := asSlice(bookmaker["bets"])
	if bets == nil {
		bets = asSlice(bookmaker["markets"])
	}

	out := make([]odds.Market, 0, len(bets))
	for _, node := range bets {
		bet := asMap(node)
		if bet == nil {
			continue
		}

		market := odds.Market{
			Name: firstNonEmpty(getString(bet, "name"), PlaceholderName),
		}
		for _, valueNode := range asSlice(bet["values"]) {
			pair := asMap(valueNode)
			if pair == nil {
				continue
			}
			label := getString(pair, "value")
			if label == "" {
				continue
			}
			market.Outcomes = append(market.Outcomes, odds.Outcome{
				Label: label,
				Odd:   extractOdd(pair["odd"]),
			})
		}
		out = append(out, market)
	}

	return out
}

// extractOdd keeps quoted odds as strings; malformed values become the
// unavailable sentinel rather than dropping the outcome.
func extractOdd(raw any) string {
	switch value := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
		return odds.MatrixUnavailable
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return odds.MatrixUnavailable
	}
}

// mergeBookmakerBets lifts a single-bookmaker payload variant into the
// list shape, pulling sibling bets onto the bookmaker object.
func mergeBookmakerBets(bookmaker, raw map[string]any) map[string]any {
	if _, ok := bookmaker["bets"]; ok {
		return bookmaker
	}

	merged := make(map[string]any, len(bookmaker)+1)
	for key, value := range bookmaker {
		merged[key] = value
	}
	if bets, ok := raw["bets"]; ok {
		merged["bets"] = bets
	}
	return merged
}
