// Package ratings implements Elo rating updates for finished games.
package ratings

import "math"

// transformed maps an Elo rating onto the curve used for expected scores.
func transformed(elo float64) float64 {
	return math.Pow(10, elo/400)
}

// Calculate returns the post-game ratings. homeScore is 1 for a home win,
// 0 for a loss and 0.5 for a draw. kFactor scales the adjustment; 32 is the
// usual choice for casual pools.
func Calculate(homeElo, awayElo, homeScore, kFactor float64) (newHome, newAway float64) {
	th := transformed(homeElo)
	ta := transformed(awayElo)
	expectedHome := th / (th + ta)
	expectedAway := ta / (th + ta)

	newHome = homeElo + kFactor*(homeScore-expectedHome)
	newAway = awayElo + kFactor*((1-homeScore)-expectedAway)
	return newHome, newAway
}
