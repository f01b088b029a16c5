package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/aaerminer/internal/document"
)

func TestLocateSection(t *testing.T) {
	text := "In the Matter of Acme Corp, Respondent  I. The Commission deems it appropriate"
	idx := Index{"in": {0}, "i.": {40}}

	span, err := LocateSection(text, idx, "In", "I.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Start != 0 || span.End != 39 {
		t.Fatalf("expected span [0,39], got [%d,%d]", span.Start, span.End)
	}
	if span.Text != "In the Matter of Acme Corp, Respondent" {
		t.Fatalf("unexpected section text: %q", span.Text)
	}
}

func TestLocateSectionMissingAnchor(t *testing.T) {
	idx := Index{"in": {0}}

	_, err := LocateSection("whatever", idx, "In", "I.")
	var seqErr *SequenceNotFoundError
	if !errors.As(err, &seqErr) {
		t.Fatalf("expected SequenceNotFoundError, got %v", err)
	}
	if seqErr.Anchor != "I." {
		t.Fatalf("expected missing anchor I., got %q", seqErr.Anchor)
	}
}

func TestLocateSectionNeverInverts(t *testing.T) {
	// End anchor physically before the start anchor is an error, not an
	// inverted span.
	idx := Index{"in": {50}, "i.": {10}}

	_, err := LocateSection(strings.Repeat("a", 60), idx, "In", "I.")
	var seqErr *SequenceNotFoundError
	if !errors.As(err, &seqErr) {
		t.Fatalf("expected SequenceNotFoundError, got %v", err)
	}
}

func TestLocateSummaryWithEndAnchor(t *testing.T) {
	text := strings.Repeat("a", 700)
	idx := Index{"summary": {300}, "respondent": {500}}
	section := document.TextSpan{Start: 0, End: 250}

	span, degraded, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if degraded {
		t.Fatalf("expected non-degraded span")
	}
	if span.Start != 300 || span.End != 499 {
		t.Fatalf("expected span [300,499], got [%d,%d]", span.Start, span.End)
	}
}

func TestLocateSummarySkipsEndOccurrencesBeforeStart(t *testing.T) {
	text := strings.Repeat("a", 700)
	idx := Index{"summary": {300}, "respondent": {10, 600}}
	section := document.TextSpan{Start: 0, End: 250}

	span, _, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.End != 599 {
		t.Fatalf("expected end 599, got %d", span.End)
	}
}

func TestLocateSummaryPluralizationFallback(t *testing.T) {
	text := strings.Repeat("a", 700)
	idx := Index{"summary": {300}, "respondents": {500}}
	section := document.TextSpan{Start: 0, End: 250}

	span, _, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.End != 499 {
		t.Fatalf("expected end 499, got %d", span.End)
	}
}

func TestLocateSummaryNearestBoldFallback(t *testing.T) {
	text := strings.Repeat("a", 700)
	idx := Index{
		"summary":  {150},
		"findings": {100},
		"order":    {250},
		"sanction": {400},
	}
	section := document.TextSpan{Start: 0, End: 120}

	span, _, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Start != 150 || span.End != 250 {
		t.Fatalf("expected span [150,250], got [%d,%d]", span.Start, span.End)
	}
}

func TestLocateSummaryMarkerPhraseStart(t *testing.T) {
	prefix := strings.Repeat("a", 200)
	text := prefix + "On the basis of this Order and Respondent's Offer, the Commission finds"
	idx := Index{"respondent": {250}}
	section := document.TextSpan{Start: 0, End: 100}

	span, _, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Start != 200 {
		t.Fatalf("expected marker-phrase start 200, got %d", span.Start)
	}
	if span.End != 249 {
		t.Fatalf("expected end 249, got %d", span.End)
	}
}

func TestLocateSummaryKeyNotFound(t *testing.T) {
	idx := Index{}
	section := document.TextSpan{Start: 0, End: 100}

	_, _, err := LocateSummary(strings.Repeat("a", 200), idx, section, "Summary", "Respondent")
	var keyErr *KeyNotFoundError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected KeyNotFoundError, got %v", err)
	}
	if keyErr.Key != "Summary" {
		t.Fatalf("expected missing key Summary, got %q", keyErr.Key)
	}

	// The two failure modes must remain distinguishable.
	var seqErr *SequenceNotFoundError
	if errors.As(err, &seqErr) {
		t.Fatalf("KeyNotFoundError must not match SequenceNotFoundError")
	}
}

func TestLocateSummaryDegradedWhenBeforeSection(t *testing.T) {
	text := strings.Repeat("a", 400)
	idx := Index{"summary": {50}, "respondent": {350}}
	section := document.TextSpan{Start: 100, End: 200}

	span, degraded, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !degraded {
		t.Fatalf("expected degraded span")
	}
	if span.Start != 201 || span.End != -1 {
		t.Fatalf("expected span [201,-1], got [%d,%d]", span.Start, span.End)
	}
	if span.Text != text[201:] {
		t.Fatalf("degraded span must cover the rest of the document")
	}
}

func TestLocateSummaryNoBoundary(t *testing.T) {
	text := strings.Repeat("a", 400)
	idx := Index{"summary": {300}}
	section := document.TextSpan{Start: 0, End: 250}

	span, degraded, err := LocateSummary(text, idx, section, "Summary", "Respondent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if degraded {
		t.Fatalf("expected non-degraded span")
	}
	if span.Start != 300 || span.End != -1 {
		t.Fatalf("expected open span [300,-1], got [%d,%d]", span.Start, span.End)
	}
}
