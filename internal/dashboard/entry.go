package dashboard

// Entry is one player's row in the live dashboard payload. Entries are
// rebuilt from scratch every poll cycle; only the slug ID is stable across
// polls so clients can key their rows.
type Entry struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Team           string  `json:"team"`
	GameID         int     `json:"game_id"`
	Matchup        string  `json:"matchup"`
	GameStatus     string  `json:"game_status"`
	ActualPoints   int     `json:"actual_pts"`
	ActualAssists  int     `json:"actual_ast"`
	ActualRebounds int     `json:"actual_reb"`
	Fouls          int     `json:"fouls"`
	Minutes        int     `json:"minutes"`
	ProjectedPts   float64 `json:"projected_pts"`
}
