package rating

import "math"

// DefaultZ is the 97.5th percentile of the standard normal distribution,
// giving a two-sided 95% confidence interval.
const DefaultZ = 1.96

// WilsonLowerBound computes the lower bound of the Wilson score interval
// for the true positive-vote rate at 95% confidence. Zero votes yields 0.
//
// The lower bound penalizes small samples without an explicit threshold:
// 5 up / 0 down scores well below 1.0, while 100 up / 10 down scores
// above 0.8. This is the primary ranking signal.
func WilsonLowerBound(upvotes, downvotes int) float64 {
	return WilsonLowerBoundZ(upvotes, downvotes, DefaultZ)
}

// WilsonLowerBoundZ is WilsonLowerBound with an explicit z quantile.
func WilsonLowerBoundZ(upvotes, downvotes int, z float64) float64 {
	n := float64(upvotes + downvotes)
	if n == 0 {
		return 0
	}

	pHat := float64(upvotes) / n
	z2 := z * z

	numerator := pHat + z2/(2*n) - z*math.Sqrt((pHat*(1-pHat)+z2/(4*n))/n)
	denominator := 1 + z2/n

	return numerator / denominator
}
