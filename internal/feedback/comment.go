// Package feedback turns free-text discussion comments into star ratings:
// parsing the historical rating formats, collapsing repeat voters to their
// most recent rating, and averaging what remains.
package feedback

import "time"

// Author identifies the user who left a comment. Comments from deleted
// accounts arrive with no author at all.
type Author struct {
	Login string `json:"login"`
}

// Comment is a single discussion comment as supplied by the discussions
// API. CreatedAt is the parsed instant, not the wire string, so recency
// comparison stays correct across time zones.
type Comment struct {
	Body      string    `json:"body"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
