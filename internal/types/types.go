// Package types holds the request and response shapes shared by the
// HTTP layer.
package types

import (
	"time"

	"github.com/promptkit/bundle-pulse/internal/feedback"
	"github.com/promptkit/bundle-pulse/internal/rating"
)

// SyncRequest asks the service to refresh a resource's rating from its
// GitHub discussion. The source and resource ID come from the URL.
type SyncRequest struct {
	Owner      string `json:"owner" binding:"required"`
	Repo       string `json:"repo" binding:"required"`
	Discussion int    `json:"discussion" binding:"required,min=1"`
}

// SyncResponse reports the freshly computed rating
type SyncResponse struct {
	Source     string               `json:"source"`
	ResourceID string               `json:"resource_id"`
	Rating     rating.Metrics       `json:"rating"`
	Stars      feedback.StarSummary `json:"stars"`
	SyncedAt   time.Time            `json:"synced_at"`
}

// CollectionScoreResponse reports the aggregate score for a named
// collection of resources.
type CollectionScoreResponse struct {
	Collection    string    `json:"collection"`
	Score         float64   `json:"score"`
	StarRating    float64   `json:"star_rating"`
	ResourceCount int       `json:"resource_count"`
	TotalVotes    int       `json:"total_votes"`
	ComputedAt    time.Time `json:"computed_at"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
