// Package lexical holds the text primitives shared by search and retrieval:
// case-insensitive containment, term coverage scoring, snippet windows and
// keyword frequency extraction. Tokenization is whitespace only.
//
// Two scoring modes coexist on purpose. Search treats a match as binary and
// reports a fixed visible score, while retrieval ranks by Coverage. The
// asymmetry is a known quirk that callers must not "fix" on one side only.
package lexical

import (
	"strings"
	"unicode"
)

// Fold lowercases s one rune at a time so rune offsets stay aligned with the
// original string (strings.ToLower may change lengths for some scripts).
func Fold(s string) string {
	return string(foldRunes([]rune(s)))
}

func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// Contains reports whether the whole folded query is a substring of any single
// folded field. A blank query matches nothing.
func Contains(query string, fields ...string) bool {
	_, ok := MatchingField(query, fields...)
	return ok
}

// MatchingField returns the index of the first field containing the query.
func MatchingField(query string, fields ...string) (int, bool) {
	if strings.TrimSpace(query) == "" {
		return -1, false
	}
	q := Fold(query)
	for i, f := range fields {
		if f != "" && strings.Contains(Fold(f), q) {
			return i, true
		}
	}
	return -1, false
}

// Terms returns the distinct whitespace-separated folded terms of s in first-seen order.
func Terms(s string) []string {
	fields := strings.Fields(Fold(s))
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Coverage is the fraction of distinct query terms found as substrings of the
// joined fields, in [0, 1]. A query without terms scores 0.
func Coverage(query string, fields ...string) float64 {
	terms := Terms(query)
	if len(terms) == 0 {
		return 0
	}
	text := Fold(strings.Join(fields, " "))
	found := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			found++
		}
	}
	return float64(found) / float64(len(terms))
}
