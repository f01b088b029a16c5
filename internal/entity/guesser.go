// Package entity guesses the respondent company named by a document, from
// the recognizer's ORG entities or from the header section itself.
package entity

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/dgallion1/aaerminer/internal/depparse"
)

// Similarity scores two strings in [0, 1]. Injected so the comparator
// stays a replaceable collaborator.
type Similarity func(a, b string) float64

// DefaultSimilarity is Jaro-Winkler, which weights the leading characters
// company names share.
func DefaultSimilarity() Similarity {
	jw := metrics.NewJaroWinkler()
	return func(a, b string) float64 {
		return strutil.Similarity(a, b, jw)
	}
}

// Corporate-suffix indicators for NER entities and for header titles. The
// header list is narrower: "In the Matter of" titles use the short forms.
var (
	entityIndicators = []string{" LTD", " LLC", " CORP", " INC", " LIMITED", " INTERNATIONAL", " CO."}
	headerIndicators = []string{"LLP", "LLC", "CORP", "INC"}
)

const headerMarker = "in the matter of"

// Guesser picks a company name, refusing to guess when candidates are
// ambiguous.
type Guesser struct {
	similarity Similarity
	threshold  float64
}

func NewGuesser(sim Similarity) *Guesser {
	if sim == nil {
		sim = DefaultSimilarity()
	}
	return &Guesser{similarity: sim, threshold: 0.9}
}

// FromEntities scans recognized entities for an ORG carrying a corporate
// suffix. The first hit wins; a later, dissimilar hit makes the guess
// ambiguous and returns "".
func (g *Guesser) FromEntities(ents []depparse.Entity) string {
	company := ""
	for _, ent := range ents {
		if ent.Label != "ORG" {
			continue
		}
		upper := strings.ToUpper(ent.Text)
		if !containsAny(upper, entityIndicators) {
			continue
		}
		if company == "" {
			company = upper
			continue
		}
		if g.similarity(firstWord(company), firstWord(upper)) >= g.threshold {
			continue
		}
		return ""
	}
	return company
}

// FromSection slices the respondent title out of the header section,
// between "In the Matter of" and "Respondent". When several respondents are
// joined with "and", the clause carrying a corporate suffix wins.
func (g *Guesser) FromSection(section string) (string, bool) {
	lower := strings.ToLower(section)
	start := strings.Index(lower, headerMarker)
	if start < 0 {
		return "", false
	}
	end := strings.Index(lower[start:], "respondent")
	if end < 0 {
		return "", false
	}

	title := strings.TrimSpace(section[start+len(headerMarker) : start+end])
	title = strings.TrimSuffix(strings.TrimSpace(title), ",")
	if !containsAny(strings.ToUpper(title), headerIndicators) {
		return "", false
	}

	parts := strings.Split(title, " and ")
	if len(parts) == 1 {
		return title, true
	}
	for _, part := range parts {
		if containsAny(strings.ToUpper(part), headerIndicators) {
			return strings.TrimSpace(part), true
		}
	}
	return "", false
}

func containsAny(s string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(s, ind) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	return word
}
