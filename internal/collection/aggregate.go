// Package collection aggregates many resources' scores into one
// collection-level score and manages the collection to discussion
// mapping document.
package collection

import (
	"math"

	"github.com/promptkit/bundle-pulse/internal/rating"
)

// ResourceScore is one resource's contribution to a collection score.
type ResourceScore struct {
	Score     float64 `json:"score"`
	VoteCount int     `json:"vote_count"`
}

// AggregateScores combines per-resource (score, voteCount) pairs into a
// single collection-level score, weighting each resource by ln(1+votes).
// Log damping keeps one heavily-voted resource from dominating the
// collection while still rewarding real engagement over untested
// resources. A resource with zero votes contributes nothing; an empty or
// all-zero-weight input yields 0. Rounded to 3 decimals like every
// vote-based score.
func AggregateScores(resources []ResourceScore) float64 {
	var weighted, totalWeight float64
	for _, r := range resources {
		w := math.Log1p(float64(r.VoteCount))
		weighted += r.Score * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0
	}
	return rating.Round3(weighted / totalWeight)
}
