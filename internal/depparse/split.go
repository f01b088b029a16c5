package depparse

import "strings"

// SplitText breaks text into pieces no longer than maxChars, preferring
// paragraph boundaries, then sentence boundaries, then a hard cut. Pieces
// never overlap: a repeated span would double-count temporal mentions.
func SplitText(text string, maxChars int) []string {
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}

	var pieces []string
	rest := text
	for len(rest) > maxChars {
		cut := boundary(rest, maxChars)
		pieces = append(pieces, rest[:cut])
		rest = rest[cut:]
	}
	if len(rest) > 0 {
		pieces = append(pieces, rest)
	}
	return pieces
}

// boundary finds the best split point at or before limit.
func boundary(text string, limit int) int {
	window := text[:limit]

	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return i + 2
	}
	if i := strings.LastIndex(window, ". "); i > 0 {
		return i + 2
	}
	if i := strings.LastIndex(window, "\n"); i > 0 {
		return i + 1
	}
	if i := strings.LastIndex(window, " "); i > 0 {
		return i + 1
	}
	return limit
}
