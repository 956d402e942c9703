package search

import (
	"strings"
	"unicode/utf8"
)

const (
	ellipsis = "..."
	// snippetLead is how far before the first match the window starts.
	snippetLead = 50
)

// Snippet extracts a window of content around the earliest occurrence
// of any matched keyword. Without a match it falls back to the leading
// maxLength characters. Truncated edges are marked with an ellipsis.
func Snippet(content string, matched []string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultSnippetLength
	}

	lower := strings.ToLower(content)
	first := -1
	for _, kw := range matched {
		idx := strings.Index(lower, strings.ToLower(kw))
		if idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}

	if first < 0 {
		if len(content) <= maxLength {
			return content
		}
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		return content[:cut] + ellipsis
	}

	start := first - snippetLead
	if start < 0 {
		start = 0
	}
	end := first + maxLength
	if end > len(content) {
		end = len(content)
	}

	// the byte offsets can land inside a multibyte rune; snap outward
	// to the nearest rune start
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	out := content[start:end]
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(content) {
		out += ellipsis
	}

	return out
}
