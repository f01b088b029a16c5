// Package temporal walks dependency-annotated token sequences to collect
// year, quarter and month mentions and reduce them into a best-guess time
// interval. Tokens are read-only nodes in a graph owned by the external
// dependency parser; this package never assumes a backing structure beyond
// the Token interface.
package temporal

// Token is one node of an externally owned dependency parse.
type Token interface {
	// Text is the surface form.
	Text() string
	// Lemma is the lowercase-insensitive base form.
	Lemma() string
	// Shape is the digit/letter class signature, e.g. "dddd".
	Shape() string
	// Dep is the grammatical relation to the head, e.g. "pobj".
	Dep() string
	// Head is the parent token, nil at the root.
	Head() Token
	// Children are the dependent tokens in sentence order.
	Children() []Token
}

// Shape codes and dependency relations follow the external parser's
// conventions.
const (
	ShapeYear       = "dddd"
	ShapeYearOneDec = "dddd.d"
	ShapeYearTwoDec = "dddd.dd"

	DepObjectOfPreposition = "pobj"
	DepNumericModifier     = "nummod"
	DepAdjectivalModifier  = "amod"
)
