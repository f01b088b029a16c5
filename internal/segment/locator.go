package segment

import (
	"strings"

	"github.com/dgallion1/aaerminer/internal/document"
)

// Fallback marker when the summary's start anchor never appears in bold.
// The order language leading into the summary narration is near-invariant.
const summaryStartMarker = "on the basis of this order and"

// LocateSection slices the header section between two bold anchors.
// The span's text is trimmed of surrounding whitespace; offsets are raw.
func LocateSection(text string, idx Index, startAnchor, endAnchor string) (document.TextSpan, error) {
	start, ok := idx.FirstOffset(startAnchor)
	if !ok {
		return document.TextSpan{}, &SequenceNotFoundError{Anchor: startAnchor}
	}
	endOff, ok := idx.FirstOffset(endAnchor)
	if !ok {
		return document.TextSpan{}, &SequenceNotFoundError{Anchor: endAnchor}
	}
	end := endOff - 1
	if end < start {
		return document.TextSpan{}, &SequenceNotFoundError{Anchor: endAnchor}
	}

	return document.TextSpan{
		Text:  strings.TrimSpace(slice(text, start, end)),
		Start: start,
		End:   end,
	}, nil
}

// LocateSummary slices the narrative summary. The section span is needed to
// detect a mis-fired start heuristic: a summary resolving before the section
// yields a degraded span covering everything after the section instead.
func LocateSummary(text string, idx Index, section document.TextSpan, startAnchor, endAnchor string) (span document.TextSpan, degraded bool, err error) {
	start, ok := idx.FirstOffset(startAnchor)
	if !ok {
		start = strings.Index(strings.ToLower(text), summaryStartMarker)
		if start < 0 {
			return document.TextSpan{}, false, &KeyNotFoundError{Key: startAnchor}
		}
	}

	if start < section.Start {
		// The heuristic mis-fired; fall back to the rest of the document.
		from := section.End + 1
		if from > len(text) {
			from = len(text)
		}
		return document.TextSpan{Text: text[from:], Start: from, End: -1}, true, nil
	}

	end, found := summaryEnd(idx, endAnchor, start)
	if !found {
		return document.TextSpan{Text: text[start:], Start: start, End: -1}, false, nil
	}

	return document.TextSpan{Text: slice(text, start, end), Start: start, End: end}, false, nil
}

// summaryEnd resolves the summary's end offset, trying in order: the end
// anchor itself, the anchor pluralized, then the nearest bold span after the
// summary start.
func summaryEnd(idx Index, anchor string, start int) (int, bool) {
	if end, ok := endFromAnchor(idx, anchor, start); ok {
		return end, true
	}
	if end, ok := endFromAnchor(idx, anchor+"s", start); ok {
		return end, true
	}

	// The next bold heading after the summary begins is the implicit
	// boundary.
	best := -1
	for _, offs := range idx {
		for _, off := range offs {
			if off > start && (best < 0 || off < best) {
				best = off
			}
		}
	}
	if best >= 0 {
		return best, true
	}
	return 0, false
}

// endFromAnchor takes the first occurrence of the anchor whose preceding
// offset still lies at or after the summary start.
func endFromAnchor(idx Index, anchor string, start int) (int, bool) {
	for _, off := range idx[strings.ToLower(anchor)] {
		if off-1 >= start {
			return off - 1, true
		}
	}
	return 0, false
}

func slice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	return text[start:end]
}
