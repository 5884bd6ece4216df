package projection

// Baseline is a player's pre-game prior: expected scoring rate and
// expected minutes on the floor.
type Baseline struct {
	PointsPerMinute float64 `json:"points_per_minute"`
	ExpectedMinutes int     `json:"expected_minutes"`
}

// DefaultBaseline is applied to any player without a configured prior.
var DefaultBaseline = Baseline{PointsPerMinute: 1.0, ExpectedMinutes: 30}

// Table maps player display names to their baseline priors. It is built
// once at startup and never mutated afterwards, so it is safe to share
// across sessions without locking.
type Table map[string]Baseline

// NewTable copies the given priors into a fresh table.
func NewTable(priors map[string]Baseline) Table {
	t := make(Table, len(priors))
	for name, b := range priors {
		t[name] = b
	}
	return t
}

// SeedBaselines returns the built-in priors used when no baseline store is
// configured.
func SeedBaselines() Table {
	return Table{
		"LeBron James":  {PointsPerMinute: 1.24, ExpectedMinutes: 35},
		"Stephen Curry": {PointsPerMinute: 1.18, ExpectedMinutes: 34},
		"Nikola Jokic":  {PointsPerMinute: 1.43, ExpectedMinutes: 36},
	}
}

// Lookup returns the prior for a player, falling back to DefaultBaseline
// for players without one.
func (t Table) Lookup(playerName string) Baseline {
	if b, ok := t[playerName]; ok {
		return b
	}
	return DefaultBaseline
}
