package team

// Team is an immutable per-season snapshot of one franchise.
type Team struct {
	ID          int64
	Name        string
	Code        string
	Logo        string
	City        string
	Country     string
	Coach       string
	Owner       string
	Stadium     string
	Established *int
	National    bool
}
