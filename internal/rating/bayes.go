package rating

// Prior defaults used when only positive signals (or a single counter)
// are available for a resource.
const (
	DefaultPriorMean     = 0.6
	DefaultPriorStrength = 10.0
)

// BayesianSmoothing blends an observed rate with a prior belief weighted
// by a fixed pseudo-count, so that 1/1 never outscores 1000/1010.
func BayesianSmoothing(positive, total int, priorMean, priorStrength float64) float64 {
	return (float64(positive) + priorStrength*priorMean) / (float64(total) + priorStrength)
}
