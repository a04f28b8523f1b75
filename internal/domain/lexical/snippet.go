package lexical

// Snippet window sizes, in runes.
const (
	SnippetThreshold = 200
	SnippetBefore    = 50
	SnippetAfter     = 150
	Ellipsis         = "..."
)

// Snippet returns a window of content around the first case-insensitive
// occurrence of the whole query. Content shorter than SnippetThreshold runes is
// returned unchanged. When the query is absent (or blank) the first
// SnippetThreshold runes are returned. Longer results always end in Ellipsis.
func Snippet(content, query string) string {
	runes := []rune(content)
	if len(runes) < SnippetThreshold {
		return content
	}

	i := -1
	if q := []rune(query); len(q) > 0 {
		i = indexRunes(foldRunes(runes), foldRunes(q))
	}
	if i < 0 {
		return string(runes[:SnippetThreshold]) + Ellipsis
	}

	start := max(0, i-SnippetBefore)
	end := min(len(runes), i+SnippetAfter)
	return string(runes[start:end]) + Ellipsis
}

func indexRunes(s, sub []rune) int {
	n := len(sub)
	for i := 0; i+n <= len(s); i++ {
		match := true
		for j := 0; j < n; j++ {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
