package standing

import "sort"

// Record is one win/loss/tie split. The provider reports separate home,
// road and overall records.
type Record struct {
	Played int
	Won    int
	Lost   int
	Ties   int
}

// Standing is one team's row in a league table. Points is carried through
// from the upstream source as supplied; some feeds populate it with the
// points differential instead of a win-based total, and this layer does not
// try to infer a scoring formula.
type Standing struct {
	Rank          int
	TeamID        int64
	TeamName      string
	TeamLogo      string
	Conference    string
	Division      string
	Overall       Record
	Home          Record
	Road          Record
	PointsFor     int
	PointsAgainst int
	PointsDiff    int
	Points        int
	Streak        string
}

// WinPercentage returns wins over games played as a percentage. A team
// with no games played has a win percentage of zero.
func (s Standing) WinPercentage() float64 {
	if s.Overall.Played == 0 {
		return 0
	}
	return float64(s.Overall.Won) / float64(s.Overall.Played) * 100
}

// Rerank sorts rows by points descending then points differential
// descending and assigns ranks 1..N. The sort is stable so upstream order
// breaks ties.
func Rerank(rows []Standing) []Standing {
	ranked := make([]Standing, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].PointsDiff > ranked[j].PointsDiff
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
