package bdl

// mockLiveBoxScores returns the fixed sample used when no API key is
// configured: three players across two concurrent games. Local development
// and tests rely on this set being identical on every call.
func mockLiveBoxScores() []PlayerBoxScore {
	lalDen := GameSnapshot{
		ID:               1,
		HomeTeam:         TeamRef{Abbreviation: "LAL"},
		VisitorTeam:      TeamRef{Abbreviation: "DEN"},
		HomeTeamScore:    54,
		VisitorTeamScore: 51,
		Status:           "Q2 03:22",
	}
	gswBos := GameSnapshot{
		ID:               2,
		HomeTeam:         TeamRef{Abbreviation: "GSW"},
		VisitorTeam:      TeamRef{Abbreviation: "BOS"},
		HomeTeamScore:    49,
		VisitorTeamScore: 47,
		Status:           "Q2 04:11",
	}

	return []PlayerBoxScore{
		{
			Player:        PlayerIdentity{FirstName: "LeBron", LastName: "James"},
			Team:          TeamRef{Abbreviation: "LAL"},
			Points:        18,
			Assists:       5,
			Rebounds:      6,
			PersonalFouls: 2,
			Minutes:       "19:15",
			Game:          lalDen,
		},
		{
			Player:        PlayerIdentity{FirstName: "Nikola", LastName: "Jokic"},
			Team:          TeamRef{Abbreviation: "DEN"},
			Points:        14,
			Assists:       4,
			Rebounds:      9,
			PersonalFouls: 3,
			Minutes:       "17:04",
			Game:          lalDen,
		},
		{
			Player:        PlayerIdentity{FirstName: "Stephen", LastName: "Curry"},
			Team:          TeamRef{Abbreviation: "GSW"},
			Points:        20,
			Assists:       2,
			Rebounds:      3,
			PersonalFouls: 1,
			Minutes:       "18:40",
			Game:          gswBos,
		},
	}
}
