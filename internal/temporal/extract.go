package temporal

import (
	"strconv"
	"strings"
)

// Short fiscal-year marker forms ("FY 2014", "FYs 2014 and 2015"). Exact
// membership; the scraped source compared against a substring instead.
var fiscalYearMarkers = map[string]bool{"fy": true, "fys": true}

// QuarterMention is one quarter reference tied to a year.
type QuarterMention struct {
	// Location is the ordinal word ("first", ...), empty if absent.
	Location string
	// Quantity is the numeral-modifier child, nil if absent.
	Quantity Token
}

// Mentions are the raw temporal references collected from one token span.
type Mentions struct {
	Years    []int
	Quarters map[int][]QuarterMention
	Months   map[int][]int
}

// Count is the total number of collected mentions. Callers use it to tell a
// vacuous interval from a genuine zero-length one.
func (m Mentions) Count() int {
	n := len(m.Years)
	for _, qs := range m.Quarters {
		n += len(qs)
	}
	for _, ms := range m.Months {
		n += len(ms)
	}
	return n
}

// Empty reports whether nothing was collected.
func (m Mentions) Empty() bool { return m.Count() == 0 }

// Extractor collects year, quarter and month mentions from a token
// sequence. It holds only the immutable lookup tables and is safe for
// concurrent use across documents.
type Extractor struct {
	tables Tables
}

func NewExtractor(tables Tables) *Extractor {
	return &Extractor{tables: tables}
}

// Collect evaluates every token independently; a token may contribute to
// several collections.
func (e *Extractor) Collect(tokens []Token) Mentions {
	m := Mentions{
		Quarters: make(map[int][]QuarterMention),
		Months:   make(map[int][]int),
	}

	for _, tok := range tokens {
		switch tok.Shape() {
		case ShapeYear:
			if year, ok := parseInt(tok.Text()); ok {
				if e.yearCandidate(tok) {
					m.Years = append(m.Years, year)
				}
				if tok.Dep() == DepNumericModifier && tok.Head() != nil {
					if month, ok := e.tables.MonthNames[strings.ToLower(tok.Head().Text())]; ok {
						m.Months[year] = append(m.Months[year], month)
					}
				}
			}
		case ShapeYearOneDec, ShapeYearTwoDec:
			// Citation punctuation glued onto the year, e.g. "2014.12".
			if tok.Dep() == DepObjectOfPreposition {
				if year, ok := parseIntPart(tok.Text()); ok {
					m.Years = append(m.Years, year)
				}
			}
		}

		if tok.Lemma() == "quarter" {
			if year, ok := findYear(tok); ok {
				location, quantity := findQuarters(tok)
				m.Quarters[year] = append(m.Quarters[year], QuarterMention{
					Location: location,
					Quantity: quantity,
				})
			}
		}
	}

	return m
}

// yearCandidate decides whether a four-digit token is a year mention.
func (e *Extractor) yearCandidate(tok Token) bool {
	head := tok.Head()
	if tok.Dep() == DepNumericModifier && head != nil &&
		e.tables.MisreportingLemmas[strings.ToLower(head.Lemma())] {
		return true
	}
	if head != nil {
		if fiscalYearMarkers[strings.ToLower(head.Text())] {
			return true
		}
		if head.Shape() == ShapeYear && head.Head() != nil &&
			fiscalYearMarkers[strings.ToLower(head.Head().Text())] {
			return true
		}
	}
	return tok.Dep() == DepObjectOfPreposition
}

// findYear searches a quarter token's local subtree for the year the quarter
// belongs to. A year is rarely attached to the quarter directly, so only
// grandchildren are examined. The last qualifying value wins.
func findYear(tok Token) (int, bool) {
	year, found := 0, false
	for _, child := range tok.Children() {
		for _, grandchild := range child.Children() {
			lemma := strings.ToLower(grandchild.Lemma())
			if lemma == "year" || fiscalYearMarkers[lemma] {
				for _, c := range grandchild.Children() {
					if y, ok := yearFromToken(c); ok {
						year, found = y, true
					}
				}
			} else if y, ok := yearFromToken(grandchild); ok {
				year, found = y, true
			}
		}
	}
	return year, found
}

// findQuarters scans a quarter token's children for the numeral modifier
// (the quantity) and the ordinal modifier (the location). In constructions
// like "the first and second quarters" the ordinal nests under the
// quantity, which then overrides.
func findQuarters(tok Token) (location string, quantity Token) {
	for _, child := range tok.Children() {
		switch child.Dep() {
		case DepNumericModifier:
			quantity = child
		case DepAdjectivalModifier:
			location = child.Text()
		}
	}
	if quantity != nil {
		for _, child := range quantity.Children() {
			if child.Dep() == DepAdjectivalModifier {
				location = child.Text()
			}
		}
	}
	return location, quantity
}

func yearFromToken(tok Token) (int, bool) {
	if tok.Dep() != DepObjectOfPreposition && tok.Dep() != DepNumericModifier {
		return 0, false
	}
	switch tok.Shape() {
	case ShapeYear:
		return parseInt(tok.Text())
	case ShapeYearOneDec, ShapeYearTwoDec:
		return parseIntPart(tok.Text())
	}
	return 0, false
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseIntPart(s string) (int, bool) {
	head, _, _ := strings.Cut(s, ".")
	return parseInt(head)
}
