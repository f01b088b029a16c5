package entity

import (
	"testing"

	"github.com/dgallion1/aaerminer/internal/depparse"
)

func ents(pairs ...string) []depparse.Entity {
	out := make([]depparse.Entity, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, depparse.Entity{Text: pairs[i], Label: pairs[i+1]})
	}
	return out
}

func TestFromEntitiesFirstOrgWithSuffix(t *testing.T) {
	g := NewGuesser(nil)
	got := g.FromEntities(ents(
		"the Commission", "ORG",
		"Acme Widgets Inc.", "ORG",
		"John Smith", "PERSON",
	))
	if got != "ACME WIDGETS INC." {
		t.Fatalf("company = %q, want %q", got, "ACME WIDGETS INC.")
	}
}

func TestFromEntitiesIgnoresNonOrg(t *testing.T) {
	g := NewGuesser(nil)
	if got := g.FromEntities(ents("Acme Widgets Inc.", "PERSON")); got != "" {
		t.Fatalf("company = %q, want empty", got)
	}
}

func TestFromEntitiesSimilarRepeatsKeepFirst(t *testing.T) {
	g := NewGuesser(nil)
	got := g.FromEntities(ents(
		"Acme Widgets Inc.", "ORG",
		"Acme Widgets, Inc", "ORG",
	))
	if got != "ACME WIDGETS INC." {
		t.Fatalf("company = %q, want first mention kept", got)
	}
}

func TestFromEntitiesAmbiguousCandidates(t *testing.T) {
	g := NewGuesser(nil)
	got := g.FromEntities(ents(
		"Acme Widgets Inc.", "ORG",
		"Zenith Holdings LLC", "ORG",
	))
	if got != "" {
		t.Fatalf("company = %q, want empty for ambiguous candidates", got)
	}
}

func TestFromEntitiesInjectedSimilarity(t *testing.T) {
	// A comparator that declares everything identical suppresses the
	// ambiguity path entirely.
	g := NewGuesser(func(a, b string) float64 { return 1 })
	got := g.FromEntities(ents(
		"Acme Widgets Inc.", "ORG",
		"Zenith Holdings LLC", "ORG",
	))
	if got != "ACME WIDGETS INC." {
		t.Fatalf("company = %q, want first candidate", got)
	}
}

func TestFromSectionSingleRespondent(t *testing.T) {
	g := NewGuesser(nil)
	section := "ORDER INSTITUTING PROCEEDINGS In the Matter of ACME WIDGETS INC., Respondent."
	got, ok := g.FromSection(section)
	if !ok {
		t.Fatal("expected a company from section")
	}
	if got != "ACME WIDGETS INC." {
		t.Fatalf("company = %q", got)
	}
}

func TestFromSectionMultipleRespondents(t *testing.T) {
	g := NewGuesser(nil)
	section := "In the Matter of JANE DOE and ACME WIDGETS LLC, Respondents."
	got, ok := g.FromSection(section)
	if !ok {
		t.Fatal("expected a company from section")
	}
	if got != "ACME WIDGETS LLC" {
		t.Fatalf("company = %q", got)
	}
}

func TestFromSectionNoCorporateSuffix(t *testing.T) {
	g := NewGuesser(nil)
	section := "In the Matter of JOHN SMITH, Respondent."
	if got, ok := g.FromSection(section); ok {
		t.Fatalf("company = %q, want no guess for an individual", got)
	}
}

func TestFromSectionMissingMarkers(t *testing.T) {
	g := NewGuesser(nil)
	if _, ok := g.FromSection("SECURITIES ACT OF 1933 Release No. 1234"); ok {
		t.Fatal("expected no guess without the header markers")
	}
}
