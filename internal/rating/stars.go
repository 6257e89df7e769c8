package rating

import "math"

// Star scale bounds for the human-facing 1-5 rating.
const (
	MinStars = 1.0
	MaxStars = 5.0
)

// Round1 rounds to 1 decimal place. Star averages are reported at this
// precision so persisted artifacts stay stable across runs.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round3 rounds to 3 decimal places. Vote-based scores are reported at
// this precision.
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// ScoreToStars maps a 0-1 score onto the 1-5 star scale, rounded to
// 1 decimal place. Inputs in [0,1] always land in [MinStars, MaxStars].
func ScoreToStars(score float64) float64 {
	return ScoreToStarsRange(score, MinStars, MaxStars)
}

// ScoreToStarsRange is ScoreToStars with explicit scale bounds.
func ScoreToStarsRange(score, minStars, maxStars float64) float64 {
	return Round1(score*(maxStars-minStars) + minStars)
}

// StarsToScore is the inverse linear map back into score space. It is an
// exact inverse of ScoreToStars for round-number inputs; no rounding is
// applied.
func StarsToScore(stars float64) float64 {
	return StarsToScoreRange(stars, MinStars, MaxStars)
}

// StarsToScoreRange is StarsToScore with explicit scale bounds.
func StarsToScoreRange(stars, minStars, maxStars float64) float64 {
	return (stars - minStars) / (maxStars - minStars)
}
