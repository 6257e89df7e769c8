package rating

// Metrics is the complete derived rating record for one resource's
// up/down votes. It is recomputed on demand and never mutated in place.
type Metrics struct {
	WilsonScore   float64    `json:"wilson_score"`
	BayesianScore float64    `json:"bayesian_score"`
	StarRating    float64    `json:"star_rating"`
	Upvotes       int        `json:"upvotes"`
	Downvotes     int        `json:"downvotes"`
	TotalVotes    int        `json:"total_votes"`
	Confidence    Confidence `json:"confidence"`
}

// ComputeMetrics derives the full metrics record from raw vote counts
// using the default prior.
func ComputeMetrics(upvotes, downvotes int) Metrics {
	return ComputeMetricsWithPrior(upvotes, downvotes, DefaultPriorMean)
}

// ComputeMetricsWithPrior derives the full metrics record from raw vote
// counts. Deterministic, no I/O, and total over non-negative inputs:
// zero votes yields a zero Wilson score and low confidence rather than
// an error. Scores are rounded to 3 decimals, the star rating to 1.
func ComputeMetricsWithPrior(upvotes, downvotes int, priorMean float64) Metrics {
	totalVotes := upvotes + downvotes
	wilson := WilsonLowerBound(upvotes, downvotes)
	bayesian := BayesianSmoothing(upvotes, totalVotes, priorMean, DefaultPriorStrength)

	return Metrics{
		WilsonScore:   Round3(wilson),
		BayesianScore: Round3(bayesian),
		StarRating:    ScoreToStars(wilson),
		Upvotes:       upvotes,
		Downvotes:     downvotes,
		TotalVotes:    totalVotes,
		Confidence:    ClassifyConfidence(totalVotes),
	}
}
