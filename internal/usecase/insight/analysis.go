package insight

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/labdex/internal/domain/lexical"
)

// Sentiment is a coarse polarity label.
type Sentiment string

// Sentiment labels.
const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

const summaryLength = 200

var (
	positiveWords = []string{"good", "great", "excellent", "successful", "innovative"}
	negativeWords = []string{"bad", "poor", "failed", "problem", "issue"}

	sentenceBreak = regexp.MustCompile(`[.!?]+`)
)

// Summarize returns text unchanged up to 200 characters, otherwise its first
// 200 characters followed by "...".
func Summarize(text string) string {
	r := []rune(text)
	if len(r) <= summaryLength {
		return text
	}
	return string(r[:summaryLength]) + lexical.Ellipsis
}

// Classify counts how many positive and negative marker words occur in text
// (as substrings, each counted once) and returns the dominant polarity.
func Classify(text string) Sentiment {
	lower := lexical.Fold(text)
	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	default:
		return Neutral
	}
}

// Readability is a simplified Flesch reading ease with a fixed 1.5 syllables
// per word. Blank text scores 0.
func Readability(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	sentences := countSentences(text)
	if sentences == 0 {
		return 0
	}
	return 206.835 - 1.015*(float64(words)/float64(sentences)) - 84.6*1.5
}

// countSentences splits on runs of terminal punctuation; trailing empty
// pieces do not count.
func countSentences(text string) int {
	parts := sentenceBreak.Split(text, -1)
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return n
}

// Jaccard returns |a∩b| / |a∪b| of the keyword sets and the shared keywords
// in the order they appear in a. Two empty sets score 0.
func Jaccard(a, b string) (float64, []string) {
	left, right := lexical.Terms(a), lexical.Terms(b)
	inRight := make(map[string]struct{}, len(right))
	for _, k := range right {
		inRight[k] = struct{}{}
	}

	common := []string{}
	for _, k := range left {
		if _, ok := inRight[k]; ok {
			common = append(common, k)
		}
	}
	union := len(left) + len(right) - len(common)
	if union == 0 {
		return 0, common
	}
	return float64(len(common)) / float64(union), common
}
