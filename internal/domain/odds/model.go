package odds

// Availability reasons returned by the pre-match policy. These are
// outcomes, not errors.
const (
	AvailabilityOpen           = "open"
	AvailabilityGameFinished   = "game finished"
	AvailabilityInvalidDate    = "invalid date"
	AvailabilityOutsideWindow  = "outside pre-match window"
	AvailabilityNotYetReleased = "not yet released"
)

// MatrixUnavailable marks a comparison-matrix cell where a bookmaker does
// not quote the outcome at all.
const MatrixUnavailable = "-"

// Outcome is one (label, decimal odd) pair within a market. Odd is kept as
// the provider's string because some feeds emit fractional or malformed
// values and this layer passes them through rather than rejecting quotes.
type Outcome struct {
	Label string
	Odd   string
}

// Market is one bet type as quoted by a single bookmaker.
type Market struct {
	Name     string
	Outcomes []Outcome
}

// Quote is everything one bookmaker offers for one game.
type Quote struct {
	GameID        int64
	BookmakerID   int64
	BookmakerName string
	LastUpdate    string
	Markets       []Market
}

// BookmakerView lists a single bookmaker's markets in source order.
type BookmakerView struct {
	GameID    int64
	Bookmaker string
	Markets   []Market
}

// ComparisonMatrix is a bookmaker by outcome table for one market. Rows
// are the union of outcome labels across bookmakers, sorted by label;
// columns keep first-seen bookmaker order. Cells[i][j] holds the odd row i
// column j, or MatrixUnavailable.
type ComparisonMatrix struct {
	GameID     int64
	Market     string
	Outcomes   []string
	Bookmakers []string
	Cells      [][]string
}

// Availability is the result of applying the pre-match policy to a game.
type Availability struct {
	Reason string
}

func (a Availability) Open() bool {
	return a.Reason == AvailabilityOpen
}
