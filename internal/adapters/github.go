// Package adapters fetches engagement signals from external APIs and
// converts them into the domain types the rating engine consumes.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/promptkit/bundle-pulse/internal/feedback"
	"github.com/promptkit/bundle-pulse/internal/resilience"
)

const (
	defaultBaseURL  = "https://api.github.com"
	commentsPerPage = 100
)

// ReactionTally holds the vote rollup for one discussion
type ReactionTally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// githubReactions mirrors the reaction summary GitHub attaches to
// discussions and comments. Only thumbs count as votes.
type githubReactions struct {
	PlusOne  int `json:"+1"`
	MinusOne int `json:"-1"`
}

type githubUser struct {
	Login string `json:"login"`
}

type githubDiscussion struct {
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	Reactions githubReactions `json:"reactions"`
}

type githubComment struct {
	Body      string      `json:"body"`
	User      *githubUser `json:"user"`
	CreatedAt string      `json:"created_at"`
}

// GitHubAdapter fetches discussion reactions and comments from the GitHub API
type GitHubAdapter struct {
	token   string
	baseURL string
	client  *resilience.Client
}

// NewGitHubAdapter creates a GitHub adapter with retries and circuit breaking
func NewGitHubAdapter(token string) *GitHubAdapter {
	client := resilience.NewClient(
		30*time.Second,
		resilience.DefaultCircuitBreakerConfig(),
		resilience.DefaultRetryConfig(),
	)

	return &GitHubAdapter{
		token:   token,
		baseURL: defaultBaseURL,
		client:  client,
	}
}

// SetBaseURL overrides the API base URL (used in tests)
func (g *GitHubAdapter) SetBaseURL(baseURL string) {
	g.baseURL = baseURL
}

// FetchDiscussionReactions fetches the thumb reaction tally for a discussion
func (g *GitHubAdapter) FetchDiscussionReactions(ctx context.Context, owner, repo string, number int) (ReactionTally, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/discussions/%d", g.baseURL, owner, repo, number)

	resp, err := g.makeRequest(ctx, http.MethodGet, url)
	if err != nil {
		return ReactionTally{}, fmt.Errorf("failed to fetch discussion %d: %w", number, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return ReactionTally{}, fmt.Errorf("github API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var discussion githubDiscussion
	if err := json.NewDecoder(resp.Body).Decode(&discussion); err != nil {
		return ReactionTally{}, fmt.Errorf("failed to decode discussion: %w", err)
	}

	return ReactionTally{
		Upvotes:   discussion.Reactions.PlusOne,
		Downvotes: discussion.Reactions.MinusOne,
	}, nil
}

// FetchDiscussionComments fetches all comments on a discussion, following
// pagination, and converts them to feedback comments.
func (g *GitHubAdapter) FetchDiscussionComments(ctx context.Context, owner, repo string, number int) ([]feedback.Comment, error) {
	var comments []feedback.Comment

	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/discussions/%d/comments?per_page=%d&page=%d",
			g.baseURL, owner, repo, number, commentsPerPage, page)

		batch, err := g.fetchCommentPage(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comments for discussion %d: %w", number, err)
		}

		for _, c := range batch {
			comments = append(comments, toFeedbackComment(c))
		}

		if len(batch) < commentsPerPage {
			break
		}
	}

	return comments, nil
}

func (g *GitHubAdapter) fetchCommentPage(ctx context.Context, url string) ([]githubComment, error) {
	resp, err := g.makeRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("github API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var batch []githubComment
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return batch, nil
}

// toFeedbackComment converts an API comment to the domain type. A
// missing user (deleted account) maps to an anonymous comment, and an
// unparseable timestamp maps to the zero time so dedup treats the
// comment as oldest.
func toFeedbackComment(c githubComment) feedback.Comment {
	comment := feedback.Comment{Body: c.Body}

	if c.User != nil && c.User.Login != "" {
		comment.Author = &feedback.Author{Login: c.User.Login}
	}

	if createdAt, err := time.Parse(time.RFC3339, c.CreatedAt); err == nil {
		comment.CreatedAt = createdAt
	}

	return comment
}

// makeRequest issues an API request through the resilient client
func (g *GitHubAdapter) makeRequest(ctx context.Context, method, url string) (*http.Response, error) {
	headers := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": "bundle-pulse/1.0",
	}

	if g.token != "" {
		headers["Authorization"] = "Bearer " + g.token
	}

	return g.client.Do(ctx, method, url, headers)
}

// BreakerState exposes the circuit state for the cache stats endpoint
func (g *GitHubAdapter) BreakerState() resilience.CircuitState {
	return g.client.BreakerState()
}

// Close releases idle connections
func (g *GitHubAdapter) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
