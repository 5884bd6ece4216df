package bdl

// PlayerIdentity is the upstream player object.
type PlayerIdentity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// TeamRef carries the team fields we use from the upstream payload.
type TeamRef struct {
	Abbreviation string `json:"abbreviation"`
}

// GameSnapshot is the game state embedded in each box score row.
type GameSnapshot struct {
	ID               int     `json:"id"`
	HomeTeam         TeamRef `json:"home_team"`
	VisitorTeam      TeamRef `json:"visitor_team"`
	HomeTeamScore    int     `json:"home_team_score"`
	VisitorTeamScore int     `json:"visitor_team_score"`
	Status           string  `json:"status"`
}

// PlayerBoxScore is one live box score row for a single player. Rows are
// ephemeral: they live for one poll cycle and are never stored.
type PlayerBoxScore struct {
	Player        PlayerIdentity `json:"player"`
	Team          TeamRef        `json:"team"`
	Points        int            `json:"pts"`
	Assists       int            `json:"ast"`
	Rebounds      int            `json:"reb"`
	PersonalFouls int            `json:"pf"`
	Minutes       string         `json:"min"`
	Game          GameSnapshot   `json:"game"`
}

// liveEnvelope is the upstream response wrapper.
type liveEnvelope struct {
	Data []PlayerBoxScore `json:"data"`
}
