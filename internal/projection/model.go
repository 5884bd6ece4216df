package projection

import "math"

// Remaining-minutes discounts. A player in foul trouble early is assumed to
// sit for much of the rest of the game; a decided game pulls starters.
const (
	foulTroubleFactor   = 0.45
	foulTroubleFouls    = 4
	foulTroubleMinutes  = 24
	blowoutFactor       = 0.2
	blowoutMargin       = 20
	blowoutMinutesFloor = 30
)

// LiveProjection estimates a player's end-of-game point total from their
// current line and the game state. scoreDiff is home minus visitor.
//
// The result is rounded to one decimal place, half away from zero.
func (t Table) LiveProjection(playerName string, currentPoints, minutesPlayed, personalFouls, scoreDiff int) float64 {
	baseline := t.Lookup(playerName)
	remaining := math.Max(0, float64(baseline.ExpectedMinutes-minutesPlayed))

	if personalFouls >= foulTroubleFouls && minutesPlayed < foulTroubleMinutes {
		remaining *= foulTroubleFactor
	}

	if abs(scoreDiff) >= blowoutMargin && minutesPlayed >= blowoutMinutesFloor {
		remaining *= blowoutFactor
	}

	projected := float64(currentPoints) + baseline.PointsPerMinute*remaining
	return math.Round(projected*10) / 10
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
