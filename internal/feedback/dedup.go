package feedback

import "time"

type userRating struct {
	stars int
	at    time.Time
}

// DeduplicateByUser parses every comment and collapses each author's
// ratings down to the one on their most recent comment, modeling "I
// changed my mind". Comments without a rating marker are dropped.
// Comments without an author are never merged with anything and each
// contribute their own rating.
//
// Recency is compared on the parsed instant, not input position: a
// later-in-time comment earlier in the slice still wins. When two
// comments from the same author carry the exact same timestamp, the one
// encountered later in the input wins, which keeps the result
// deterministic for a given input. Output order is per-user ratings in
// first-seen author order followed by anonymous ratings; callers should
// rely only on membership.
func DeduplicateByUser(comments []Comment) []int {
	byLogin := make(map[string]*userRating)
	logins := make([]string, 0, len(comments))
	var anonymous []int

	for _, c := range comments {
		stars, ok := ParseStarRating(c.Body)
		if !ok {
			continue
		}

		if c.Author == nil || c.Author.Login == "" {
			anonymous = append(anonymous, stars)
			continue
		}

		current, seen := byLogin[c.Author.Login]
		if !seen {
			byLogin[c.Author.Login] = &userRating{stars: stars, at: c.CreatedAt}
			logins = append(logins, c.Author.Login)
			continue
		}

		if !c.CreatedAt.Before(current.at) {
			current.stars = stars
			current.at = c.CreatedAt
		}
	}

	ratings := make([]int, 0, len(logins)+len(anonymous))
	for _, login := range logins {
		ratings = append(ratings, byLogin[login].stars)
	}
	return append(ratings, anonymous...)
}
