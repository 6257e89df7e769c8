package feedback

import "github.com/promptkit/bundle-pulse/internal/rating"

// StarSummary is the per-resource star rollup after deduplication.
type StarSummary struct {
	Average    float64           `json:"average"`
	Count      int               `json:"count"`
	Confidence rating.Confidence `json:"confidence"`
}

// AverageStars combines individual 1-5 ratings into a mean rounded to
// 1 decimal place. An empty slice yields average 0 and low confidence,
// never an error.
func AverageStars(ratings []int) StarSummary {
	if len(ratings) == 0 {
		return StarSummary{Confidence: rating.ConfidenceLow}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	return StarSummary{
		Average:    rating.Round1(float64(sum) / float64(len(ratings))),
		Count:      len(ratings),
		Confidence: rating.ClassifyConfidence(len(ratings)),
	}
}

// SummarizeComments is the full comment pipeline: parse, deduplicate per
// user, average.
func SummarizeComments(comments []Comment) StarSummary {
	return AverageStars(DeduplicateByUser(comments))
}
