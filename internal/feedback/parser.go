package feedback

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// starMatcher extracts a rating from a single comment line.
type starMatcher func(line string) (int, bool)

var (
	// Current format: "Rating: ⭐⭐⭐", where the glyph count is the rating.
	ratingLineRe = regexp.MustCompile(`^Rating:\s*(⭐+)`)

	// Legacy format: "**Feedback** (4 ⭐⭐⭐⭐)". The leading integer is
	// authoritative even when the glyph count disagrees; the bold label
	// text itself is not required to read "Feedback".
	legacyLineRe = regexp.MustCompile(`^\*\*[^*]+\*\*\s*\((\d+)\s*⭐`)

	// Fallback: a line that simply opens with "4 ⭐".
	bareLineRe = regexp.MustCompile(`^(\d+)\s*⭐`)
)

// starMatchers in priority order; the first format that matches any line
// of the body wins. Keeping them independent keeps format evolution
// additive.
var starMatchers = []starMatcher{matchRatingLine, matchLegacyLine, matchBareLine}

// ParseStarRating extracts an explicit 1-5 rating from a comment body.
// Matching is line-oriented so markers quoted inside replies ("> Rating:
// ⭐⭐") are not picked up. A body with no recognizable marker is a
// legitimate non-vote: the second return is false and no error exists.
func ParseStarRating(body string) (int, bool) {
	lines := strings.Split(body, "\n")
	for _, match := range starMatchers {
		for _, line := range lines {
			if stars, ok := match(strings.TrimSpace(line)); ok {
				return stars, true
			}
		}
	}
	return 0, false
}

func matchRatingLine(line string) (int, bool) {
	m := ratingLineRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	// Glyph count is the rating, clamped to the 1-5 domain.
	return clampStars(utf8.RuneCountInString(m[1])), true
}

func matchLegacyLine(line string) (int, bool) {
	m := legacyLineRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return starsFromDigits(m[1])
}

func matchBareLine(line string) (int, bool) {
	m := bareLineRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return starsFromDigits(m[1])
}

func starsFromDigits(digits string) (int, bool) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return clampStars(n), true
}

func clampStars(n int) int {
	if n > 5 {
		return 5
	}
	return n
}
