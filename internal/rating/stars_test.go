package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreToStars(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected float64
	}{
		{
			name:     "zero score maps to one star",
			score:    0,
			expected: 1.0,
		},
		{
			name:     "perfect score maps to five stars",
			score:    1,
			expected: 5.0,
		},
		{
			name:     "midpoint maps to three stars",
			score:    0.5,
			expected: 3.0,
		},
		{
			name:     "result is rounded to one decimal",
			score:    0.8407,
			expected: 4.4,
		},
		{
			name:     "quarter score",
			score:    0.25,
			expected: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreToStars(tt.score))
		})
	}
}

func TestStarsToScore(t *testing.T) {
	tests := []struct {
		name     string
		stars    float64
		expected float64
	}{
		{name: "one star is zero", stars: 1, expected: 0},
		{name: "five stars is one", stars: 5, expected: 1},
		{name: "three stars is the midpoint", stars: 3, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, StarsToScore(tt.stars), 1e-10)
		})
	}
}

func TestStarConversion_RoundTrip(t *testing.T) {
	// StarsToScore is the exact inverse for round-number star inputs.
	for stars := 1.0; stars <= 5.0; stars++ {
		assert.Equal(t, stars, ScoreToStars(StarsToScore(stars)))
	}
}

func TestScoreToStars_StaysInRange(t *testing.T) {
	for score := 0.0; score <= 1.0; score += 0.01 {
		stars := ScoreToStars(score)
		assert.GreaterOrEqual(t, stars, MinStars)
		assert.LessOrEqual(t, stars, MaxStars)
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 0.841, Round3(0.8407))
	assert.Equal(t, 0.0, Round3(0.0004))
	assert.Equal(t, 4.2, Round1(4.24))
	assert.Equal(t, 4.3, Round1(4.25))
}
