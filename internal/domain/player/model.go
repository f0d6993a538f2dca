package player

// Player is one roster entry. Height and weight are free-text because the
// provider mixes imperial and metric notation and never commits to either.
type Player struct {
	ID          int64
	Name        string
	FirstName   string
	LastName    string
	Age         *int
	BirthDate   string
	BirthPlace  string
	Nationality string
	Height      string
	Weight      string
	Position    string
	Group       string
	Number      *int
	Injured     bool
	Photo       string
	TeamID      int64
	TeamName    string
	TeamLogo    string
	College     string
	Salary      string
	Experience  *int
}

// Injury is one entry on a team's injury report.
type Injury struct {
	PlayerID    int64
	PlayerName  string
	TeamID      int64
	TeamName    string
	Status      string
	Description string
	Date        string
}
