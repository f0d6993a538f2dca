package httpapi

import (
	"time"

	"github.com/gridironhq/gridiron-feed/internal/domain/game"
	"github.com/gridironhq/gridiron-feed/internal/domain/odds"
	"github.com/gridironhq/gridiron-feed/internal/domain/player"
	"github.com/gridironhq/gridiron-feed/internal/domain/standing"
	"github.com/gridironhq/gridiron-feed/internal/domain/team"
	"github.com/gridironhq/gridiron-feed/internal/usecase"
)

type teamSideDTO struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

type scoreDTO struct {
	Total    *int            `json:"total"`
	Quarters map[string]*int `json:"quarters,omitempty"`
}

type gameDTO struct {
	ID          int64       `json:"id"`
	LeagueID    int64       `json:"leagueId,omitempty"`
	Season      int         `json:"season,omitempty"`
	Week        string      `json:"week,omitempty"`
	Kickoff     *string     `json:"kickoff"`
	Status      string      `json:"status"`
	StatusLong  string      `json:"statusLong,omitempty"`
	Elapsed     *int        `json:"elapsed,omitempty"`
	VenueName   string      `json:"venue"`
	VenueCity   string      `json:"venueCity,omitempty"`
	Home        teamSideDTO `json:"home"`
	Away        teamSideDTO `json:"away"`
	HomeScore   scoreDTO    `json:"homeScore"`
	AwayScore   scoreDTO    `json:"awayScore"`
}

type gameBucketsDTO struct {
	Live     []gameDTO `json:"live"`
	Upcoming []gameDTO `json:"upcoming"`
	Recent   []gameDTO `json:"recent"`
}

type recordDTO struct {
	Played int `json:"played"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
	Ties   int `json:"ties"`
}

type standingDTO struct {
	Rank          int       `json:"rank"`
	TeamID        int64     `json:"teamId"`
	TeamName      string    `json:"teamName"`
	TeamLogo      string    `json:"teamLogo,omitempty"`
	Conference    string    `json:"conference,omitempty"`
	Division      string    `json:"division,omitempty"`
	Overall       recordDTO `json:"overall"`
	Home          recordDTO `json:"home"`
	Road          recordDTO `json:"road"`
	PointsFor     int       `json:"pointsFor"`
	PointsAgainst int       `json:"pointsAgainst"`
	PointsDiff    int       `json:"pointsDiff"`
	Points        int       `json:"points"`
	Streak        string    `json:"streak,omitempty"`
	WinPct        float64   `json:"winPct"`
}

type teamDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Logo        string `json:"logo,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	Coach       string `json:"coach,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Stadium     string `json:"stadium,omitempty"`
	Established *int   `json:"established,omitempty"`
	National    bool   `json:"national,omitempty"`
}

type playerDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Age         *int   `json:"age,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Position    string `json:"position,omitempty"`
	Group       string `json:"group,omitempty"`
	Number      *int   `json:"number,omitempty"`
	Injured     bool   `json:"injured"`
	Photo       string `json:"photo,omitempty"`
	College     string `json:"college,omitempty"`
	Experience  *int   `json:"experience,omitempty"`
	TeamName    string `json:"teamName,omitempty"`
}

type injuryDTO struct {
	PlayerID    int64  `json:"playerId"`
	PlayerName  string `json:"playerName"`
	TeamID      int64  `json:"teamId,omitempty"`
	TeamName    string `json:"teamName,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

type outcomeDTO struct {
	Label string `json:"label"`
	Odd   string `json:"odd"`
}

type marketDTO struct {
	Name     string       `json:"name"`
	Outcomes []outcomeDTO `json:"outcomes"`
}

type bookmakerViewDTO struct {
	GameID    int64       `json:"gameId"`
	Bookmaker string      `json:"bookmaker"`
	Markets   []marketDTO `json:"markets"`
}

type comparisonMatrixDTO struct {
	GameID     int64      `json:"gameId"`
	Market     string     `json:"market"`
	Outcomes   []string   `json:"outcomes"`
	Bookmakers []string   `json:"bookmakers"`
	Cells      [][]string `json:"cells"`
}

type oddsResponseDTO struct {
	Availability string                `json:"availability"`
	Bookmaker    *bookmakerViewDTO     `json:"bookmaker,omitempty"`
	Comparison   []comparisonMatrixDTO `json:"comparison,omitempty"`
}

type refreshSectionDTO struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type refreshResultDTO struct {
	LeagueID     int64               `json:"leagueId"`
	Season       int                 `json:"season"`
	WorkerCount  int                 `json:"workerCount"`
	SuccessCount int                 `json:"successCount"`
	FailedCount  int                 `json:"failedCount"`
	Sections     []refreshSectionDTO `json:"sections"`
}

func gameToDTO(g game.Game) gameDTO {
	var kickoff *string
	if g.KickoffAt != nil {
		formatted := g.KickoffAt.UTC().Format(time.RFC3339)
		kickoff = &formatted
	}

	return gameDTO{
		ID:         g.ID,
		LeagueID:   g.LeagueID,
		Season:     g.Season,
		Week:       g.Week,
		Kickoff:    kickoff,
		Status:     g.Status,
		StatusLong: g.StatusLong,
		Elapsed:    g.Elapsed,
		VenueName:  g.Venue.Name,
		VenueCity:  g.Venue.City,
		Home:       teamSideDTO{ID: g.Home.ID, Name: g.Home.Name, Logo: g.Home.Logo},
		Away:       teamSideDTO{ID: g.Away.ID, Name: g.Away.Name, Logo: g.Away.Logo},
		HomeScore:  scoreDTO{Total: g.HomeScore.Total, Quarters: g.HomeScore.Quarters},
		AwayScore:  scoreDTO{Total: g.AwayScore.Total, Quarters: g.AwayScore.Quarters},
	}
}

func gamesToDTO(games []game.Game) []gameDTO {
	out := make([]gameDTO, 0, len(games))
	for _, g := range games {
		out = append(out, gameToDTO(g))
	}
	return out
}

func standingToDTO(s standing.Standing) standingDTO {
	return standingDTO{
		Rank:          s.Rank,
		TeamID:        s.TeamID,
		TeamName:      s.TeamName,
		TeamLogo:      s.TeamLogo,
		Conference:    s.Conference,
		Division:      s.Division,
		Overall:       recordDTO(s.Overall),
		Home:          recordDTO(s.Home),
		Road:          recordDTO(s.Road),
		PointsFor:     s.PointsFor,
		PointsAgainst: s.PointsAgainst,
		PointsDiff:    s.PointsDiff,
		Points:        s.Points,
		Streak:        s.Streak,
		WinPct:        s.WinPercentage(),
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Code:        t.Code,
		Logo:        t.Logo,
		City:        t.City,
		Country:     t.Country,
		Coach:       t.Coach,
		Owner:       t.Owner,
		Stadium:     t.Stadium,
		Established: t.Established,
		National:    t.National,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Age:         p.Age,
		Nationality: p.Nationality,
		Height:      p.Height,
		Weight:      p.Weight,
		Position:    p.Position,
		Group:       p.Group,
		Number:      p.Number,
		Injured:     p.Injured,
		Photo:       p.Photo,
		College:     p.College,
		Experience:  p.Experience,
		TeamName:    p.TeamName,
	}
}

func injuryToDTO(i player.Injury) injuryDTO {
	return injuryDTO(i)
}

func marketsToDTO(markets []odds.Market) []marketDTO {
	out := make([]marketDTO, 0, len(markets))
	for _, m := range markets {
		outcomes := make([]outcomeDTO, 0, len(m.Outcomes))
		for _, o := range m.Outcomes {
			outcomes = append(outcomes, outcomeDTO(o))
		}
		out = append(out, marketDTO{Name: m.Name, Outcomes: outcomes})
	}
	return out
}

func matricesToDTO(matrices []odds.ComparisonMatrix) []comparisonMatrixDTO {
	out := make([]comparisonMatrixDTO, 0, len(matrices))
	for _, m := range matrices {
		out = append(out, comparisonMatrixDTO{
			GameID:     m.GameID,
			Market:     m.Market,
			Outcomes:   m.Outcomes,
			Bookmakers: m.Bookmakers,
			Cells:      m.Cells,
		})
	}
	return out
}

func refreshResultToDTO(result usecase.RefreshResult) refreshResultDTO {
	sections := make([]refreshSectionDTO, 0, len(result.Sections))
	for _, section := range result.Sections {
		sections = append(sections, refreshSectionDTO(section))
	}
	return refreshResultDTO{
		LeagueID:     result.LeagueID,
		Season:       result.Season,
		WorkerCount:  result.WorkerCount,
		SuccessCount: result.SuccessCount,
		FailedCount:  result.FailedCount,
		Sections:     sections,
	}
}
