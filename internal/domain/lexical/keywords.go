package lexical

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// KeywordExtractor picks the most frequent long tokens of a text.
// Zero fields fall back to MinLength 4 and Limit 10.
type KeywordExtractor struct {
	MinLength int // minimum token length in runes
	Limit     int
}

// Preset extractors.
var (
	// DefaultKeywords keeps tokens longer than three characters.
	DefaultKeywords = KeywordExtractor{MinLength: 4, Limit: 10}
	// TopicKeywords keeps tokens longer than four characters, for project topics.
	TopicKeywords = KeywordExtractor{MinLength: 5, Limit: 10}
)

// KeywordCount is a keyword with its frequency.
type KeywordCount struct {
	word  string
	count int
}

// Extract returns up to Limit tokens ordered by frequency descending; ties keep
// first-occurrence order so the output is deterministic.
func (k KeywordExtractor) Extract(text string) []string {
	counts := k.Count(text)
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.word
	}
	return out
}

// Count is Extract with the frequencies kept.
func (k KeywordExtractor) Count(text string) []KeywordCount {
	minLen, limit := k.MinLength, k.Limit
	if minLen <= 0 {
		minLen = DefaultKeywords.MinLength
	}
	if limit <= 0 {
		limit = DefaultKeywords.Limit
	}

	index := make(map[string]int)
	var ordered []KeywordCount
	for _, tok := range strings.Fields(Fold(text)) {
		if utf8.RuneCountInString(tok) < minLen {
			continue
		}
		if i, ok := index[tok]; ok {
			ordered[i].count++
			continue
		}
		index[tok] = len(ordered)
		ordered = append(ordered, KeywordCount{word: tok, count: 1})
	}

	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].count > ordered[j].count })
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// Word returns the keyword.
func (c KeywordCount) Word() string { return c.word }

// Frequency returns how often the keyword occurred.
func (c KeywordCount) Frequency() int { return c.count }
