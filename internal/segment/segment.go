// Package segment reconstructs bold typographic spans from per-character
// font metadata and uses them as anchors to locate the header section and
// narrative summary of an enforcement document. All functions are pure
// transforms over in-memory inputs; callers own logging and retries.
package segment

import (
	"strings"

	"github.com/dgallion1/aaerminer/internal/document"
)

// Proceedings instituted under Section 21C name cease-and-desist respondents.
const riskMarker = "21c"

// Anchors are the bold phrases delimiting the section and summary regions.
type Anchors struct {
	SectionStart string
	SectionEnd   string
	SummaryStart string
	SummaryEnd   string
}

// DefaultAnchors match the house style of the documents: the header begins
// "In the Matter of" and ends at the first numbered heading, the summary is
// the bold "Summary" heading ending at "Respondent".
func DefaultAnchors() Anchors {
	return Anchors{
		SectionStart: "In",
		SectionEnd:   "I.",
		SummaryStart: "Summary",
		SummaryEnd:   "Respondent",
	}
}

// Segment locates the section and summary spans of a document and checks the
// section for the risk marker.
func Segment(text string, idx Index, anchors Anchors) (document.Segments, error) {
	section, err := LocateSection(text, idx, anchors.SectionStart, anchors.SectionEnd)
	if err != nil {
		return document.Segments{}, err
	}

	summary, degraded, err := LocateSummary(text, idx, section, anchors.SummaryStart, anchors.SummaryEnd)
	if err != nil {
		return document.Segments{}, err
	}

	return document.Segments{
		Section:            section,
		Summary:            summary,
		ContainsRiskMarker: strings.Contains(strings.ToLower(section.Text), riskMarker),
		SummaryDegraded:    degraded,
	}, nil
}
