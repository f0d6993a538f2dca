package game

import (
	"strings"
	"time"
)

const (
	StatusNotStarted = "NOT_STARTED"
	StatusLive       = "LIVE"
	StatusFinished   = "FINISHED"
	StatusPostponed  = "POSTPONED"
	StatusCancelled  = "CANCELLED"
	StatusUnknown    = "UNKNOWN"
)

// TeamSide describes one side of a game.
type TeamSide struct {
	ID   int64
	Name string
	Logo string
}

// Score holds the running or final totals for one side. Total is nil when
// the feed has not reported a score yet, which is distinct from zero.
type Score struct {
	Total    *int
	Quarters map[string]*int
}

// Venue is the location metadata for a game. City may be empty.
type Venue struct {
	Name string
	City string
}

// Game is the canonical representation of one scheduled or played game,
// independent of the upstream payload shape it was decoded from.
type Game struct {
	ID          int64
	LeagueID    int64
	Season      int
	Week        string
	KickoffAt   *time.Time
	Status      string
	StatusLong  string
	StatusShort string
	Elapsed     *int
	Venue       Venue
	Home        TeamSide
	Away        TeamSide
	HomeScore   Score
	AwayScore   Score
}

// NormalizeStatus maps the provider's short status codes onto the canonical
// status set. Unrecognized codes come back as StatusUnknown rather than an
// error so a new provider code never breaks normalization.
func NormalizeStatus(short string) string {
	switch strings.ToUpper(strings.TrimSpace(short)) {
	case "NS", "TBD":
		return StatusNotStarted
	case "Q1", "Q2", "Q3", "Q4", "OT", "HT", "LIVE", "IN_PLAY":
		return StatusLive
	case "FT", "AOT", "AET", "FINISHED":
		return StatusFinished
	case "PST", "POSTPONED":
		return StatusPostponed
	case "CANC", "ABD", "CANCELLED":
		return StatusCancelled
	case "":
		return StatusUnknown
	default:
		return StatusUnknown
	}
}

func (g Game) IsLive() bool {
	return g.Status == StatusLive
}

func (g Game) IsFinished() bool {
	return g.Status == StatusFinished
}

// HasKickoff reports whether the kickoff instant could be parsed from the
// upstream payload.
func (g Game) HasKickoff() bool {
	return g.KickoffAt != nil
}
