// Package fuzzy scores approximate matches between a short query and a
// body of text. Scores are normalized to [0, 1] where 0 is a perfect
// match; a candidate matches when its score is at or below the threshold.
package fuzzy

import (
	"strings"
	"unicode"
)

// Thresholds for the two match tiers. Note search is permissive so
// near-miss substrings and reordered tokens still land; workspace-tag
// matching is near-exact.
const (
	PermissiveThreshold = 0.3
	TightThreshold      = 0.05
)

// Range is a half-open [Start, End) byte range of matched text, for
// highlighting.
type Range struct {
	Start, End int
}

// Match pairs a candidate index with its score and highlight ranges.
type Match struct {
	Index  int
	Score  float64
	Ranges []Range
}

// Score rates how well query matches text. Each whitespace-separated query
// token is scored independently against its best approximate occurrence in
// text, so reordered tokens still match; the final score is the mean of
// the token scores.
func Score(query, text string) float64 {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(text)

	var total float64
	for _, tok := range tokens {
		total += tokenScore(tok, lower)
	}
	return total / float64(len(tokens))
}

// Matches scores query against every candidate and returns those at or
// below threshold, ordered best-first. Ties keep candidate order (stable).
func Matches(query string, candidates []string, threshold float64) []Match {
	var out []Match
	for i, c := range candidates {
		score := Score(query, c)
		if score <= threshold {
			out = append(out, Match{Index: i, Score: score, Ranges: Ranges(query, c)})
		}
	}
	// Insertion sort keeps equal scores in candidate order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Score < out[j-1].Score; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Best returns the index of the single best candidate at or below
// threshold, or false when nothing qualifies.
func Best(query string, candidates []string, threshold float64) (int, bool) {
	matches := Matches(query, candidates, threshold)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Index, true
}

// Ranges returns highlight ranges for query tokens that occur literally
// (case-insensitive) in text. Approximate-only matches get no highlight.
func Ranges(query, text string) []Range {
	lower := strings.ToLower(text)
	var out []Range
	for _, tok := range tokenize(query) {
		if pos := strings.Index(lower, tok); pos >= 0 {
			out = append(out, Range{Start: pos, End: pos + len(tok)})
		}
	}
	return out
}

// tokenScore computes the normalized distance between token and its best
// approximate occurrence anywhere in text (Sellers' approximate substring
// matching: leading and trailing text is free, edits inside the window
// cost 1 each).
func tokenScore(token, text string) float64 {
	m := len(token)
	if m == 0 {
		return 0
	}
	if strings.Contains(text, token) {
		return 0
	}
	if len(text) == 0 {
		return 1
	}

	prev := make([]int, len(text)+1)
	cur := make([]int, len(text)+1)
	// Row 0 is all zeros: a match may start at any position.
	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 1
			if token[i-1] == text[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}

	best := prev[0]
	for _, d := range prev {
		if d < best {
			best = d
		}
	}
	return float64(best) / float64(m)
}

func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), unicode.IsSpace)
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
