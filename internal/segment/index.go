package segment

import (
	"strings"

	"github.com/dgallion1/aaerminer/internal/document"
)

// Index maps a normalized lowercase bold word to the byte offsets where it
// starts in the full document text, in encounter order. Built once per
// document and never mutated afterwards.
type Index map[string][]int

// FirstOffset returns the first recorded offset for a key.
func (idx Index) FirstOffset(key string) (int, bool) {
	offs := idx[strings.ToLower(key)]
	if len(offs) == 0 {
		return 0, false
	}
	return offs[0], true
}

// Characters that terminate a bold word even when the glyph itself is bold.
// Section numbers and quoted fragments would otherwise glue onto headings.
const breakChars = ".,0123456789'\""

// Section headings are numbered with roman numerals followed by a period.
// The numeral itself is usually the only bold glyph run, so the period is
// restored when indexing.
var romanNumerals = map[string]bool{
	"i": true, "ii": true, "iii": true, "iv": true, "v": true,
	"vi": true, "vii": true, "viii": true, "ix": true, "x": true,
	"xi": true, "xii": true, "xiii": true, "xiv": true, "xv": true,
}

// BuildIndex consumes a page-ordered character stream and returns the
// concatenated full text together with the bold-span index. Single forward
// pass, no backtracking.
func BuildIndex(chars []document.PositionedChar) (string, Index) {
	var text strings.Builder
	idx := make(Index)

	start := 0 // where the next potential bold word would begin
	word := ""
	page := -1

	for _, ch := range chars {
		if ch.Page != page {
			page = ch.Page
			word = ""
		}

		pos := text.Len()
		text.WriteString(ch.Text)

		whitespace := strings.TrimSpace(ch.Text) == ""
		switch {
		case ch.Bold || whitespace:
			if whitespace || strings.Contains(breakChars, ch.Text) {
				// Flush point.
				if pos > start && word != "" {
					key := word
					if romanNumerals[key] {
						key += "."
					}
					idx[key] = append(idx[key], start)
				}
				word = ""
				start = text.Len()
			} else {
				word += strings.ToLower(ch.Text)
			}
		default:
			// Ordinary body text.
			start = text.Len()
		}
	}

	return text.String(), idx
}
