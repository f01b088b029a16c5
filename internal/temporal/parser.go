package temporal

import "github.com/dgallion1/aaerminer/internal/document"

// Parser runs mention extraction and interval aggregation over one token
// sequence.
type Parser struct {
	extractor  *Extractor
	aggregator *Aggregator
}

func NewParser(tables Tables) *Parser {
	return &Parser{
		extractor:  NewExtractor(tables),
		aggregator: NewAggregator(tables),
	}
}

// InferInterval collects temporal mentions from the token sequence and
// reduces them to an interval. ok is false when no mention qualified;
// callers must check it (or the mentions) rather than trust the zero
// interval.
func (p *Parser) InferInterval(tokens []Token) (document.Interval, Mentions, bool) {
	mentions := p.extractor.Collect(tokens)
	interval, ok := p.aggregator.Infer(mentions)
	return interval, mentions, ok
}
