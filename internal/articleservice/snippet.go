package articleservice

import (
	"regexp"
	"strings"
)

const (
	defaultSurroundingWords = 15
	defaultSuffix           = "..."
)

var punctuationRX = regexp.MustCompile(`([^\s\w]|_)+`)

// normalizeWord strips punctuation and lowercases, so that the search term
// and content words compare case- and punctuation-insensitively. The same
// normalization must be applied to both sides.
func normalizeWord(text string) string {
	return strings.ToLower(punctuationRX.ReplaceAllString(text, ""))
}

// extractSnippet returns an excerpt of content of at most 2*surroundingWords
// words centred on the leftmost occurrence of term. The window is clamped
// asymmetrically: when it would run off either end of the content it is
// re-anchored there rather than shrunk. A suffix marks each truncated edge.
// When the term does not occur, the first 2*surroundingWords words are
// returned with no suffix.
func extractSnippet(content, term string, surroundingWords int, suffix string) string {
	words := strings.Fields(content)
	normTerm := normalizeWord(term)

	index := -1
	for i, word := range words {
		if normalizeWord(word) == normTerm {
			index = i
			break
		}
	}

	if index < 0 {
		end := 2 * surroundingWords
		if end > len(words) {
			end = len(words)
		}
		return strings.Join(words[:end], " ")
	}

	start := index - surroundingWords
	end := index + surroundingWords
	if start < 0 {
		start = 0
		end = 2 * surroundingWords
	}
	if end >= len(words) {
		end = len(words) - 1
		start = end - 2*surroundingWords
		if start < 0 {
			start = 0
		}
	}

	result := strings.Join(words[start:end], " ")
	if start > 0 {
		result = suffix + " " + result
	}
	if end < len(words)-1 {
		result = result + " " + suffix
	}

	return result
}
