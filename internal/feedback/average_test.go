package feedback

import (
	"testing"
	"time"

	"github.com/promptkit/bundle-pulse/internal/rating"
	"github.com/stretchr/testify/assert"
)

func TestAverageStars(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []int
		expected StarSummary
	}{
		{
			name:    "empty input yields the zero summary",
			ratings: nil,
			expected: StarSummary{
				Average:    0,
				Count:      0,
				Confidence: rating.ConfidenceLow,
			},
		},
		{
			name:    "five ratings average to one decimal",
			ratings: []int{5, 4, 3, 5, 4},
			expected: StarSummary{
				Average:    4.2,
				Count:      5,
				Confidence: rating.ConfidenceMedium,
			},
		},
		{
			name:    "single rating",
			ratings: []int{3},
			expected: StarSummary{
				Average:    3.0,
				Count:      1,
				Confidence: rating.ConfidenceLow,
			},
		},
		{
			name:    "repeating average rounds to one decimal",
			ratings: []int{5, 5, 4},
			expected: StarSummary{
				Average:    4.7,
				Count:      3,
				Confidence: rating.ConfidenceLow,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AverageStars(tt.ratings))
		})
	}
}

func TestAverageStars_BoundedForNonEmptyInput(t *testing.T) {
	samples := [][]int{{1}, {5}, {1, 5}, {2, 3, 4}, {1, 1, 1, 5, 5, 5}}

	for _, ratings := range samples {
		summary := AverageStars(ratings)
		assert.GreaterOrEqual(t, summary.Average, 1.0)
		assert.LessOrEqual(t, summary.Average, 5.0)
		assert.Equal(t, len(ratings), summary.Count)
	}
}

func TestSummarizeComments(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	comments := []Comment{
		authored("user1", "Rating: ⭐⭐⭐", day1),
		authored("user1", "Rating: ⭐⭐⭐⭐⭐", day2),
		authored("user2", "**Feedback** (4 ⭐⭐⭐⭐)\n\nSolid set of prompts.", day1),
		authored("user3", "Where is the changelog?", day2),
	}

	summary := SummarizeComments(comments)

	assert.Equal(t, 4.5, summary.Average)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, rating.ConfidenceLow, summary.Confidence)
}
