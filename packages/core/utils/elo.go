package utils

import "math"

// KFactor is the fixed Elo K-factor applied to every match.
const KFactor = 32.0

// ExpectedScore returns the logistic expected outcome for a wrestler against
// an opponent, given their current ratings.
func ExpectedScore(rating, opponentRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponentRating-rating)/400))
}

// UpdateElo applies one match result to a rating. Ratings are unbounded and
// never rounded; replaying the same history always yields the same value.
func UpdateElo(rating, expected, actual float64) float64 {
	return rating + KFactor*(actual-expected)
}

// Hybrid blends Elo and RPI into a single 50/50 score.
func Hybrid(elo, rpi float64) float64 {
	return 0.5*elo + 0.5*rpi
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
