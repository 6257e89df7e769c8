package rating

// Confidence is a coarse qualitative label derived purely from sample
// size, independent of the score itself.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
)

// ClassifyConfidence buckets a vote or rating count. Breakpoints are
// fixed: <5 low, 5-19 medium, 20-99 high, >=100 very_high.
func ClassifyConfidence(count int) Confidence {
	switch {
	case count < 5:
		return ConfidenceLow
	case count < 20:
		return ConfidenceMedium
	case count < 100:
		return ConfidenceHigh
	default:
		return ConfidenceVeryHigh
	}
}
