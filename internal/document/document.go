package document

// PositionedChar is a single glyph from the character-stream provider, in
// reading order within its page.
type PositionedChar struct {
	Text   string // glyph text, usually one rune
	Bold   bool   // true if the glyph's font is a bold face
	Page   int    // zero-based page index
	Offset int    // byte offset into the concatenated full text
}

// TextSpan is a half-open slice of the full document text.
// End == -1 means "through end of document".
type TextSpan struct {
	Text  string
	Start int
	End   int
}

// Segments is the structural decomposition of one document.
type Segments struct {
	Section TextSpan
	Summary TextSpan

	// ContainsRiskMarker reports whether the fixed marker string appears
	// (case-insensitively) in the section text.
	ContainsRiskMarker bool

	// SummaryDegraded is set when the summary start resolved before the
	// section start and the locator fell back to everything after the
	// section. The span is valid but low confidence.
	SummaryDegraded bool
}

// Interval is the inferred fraud/reporting period. A month of 0 means the
// month within that year is unspecified.
type Interval struct {
	YearStart  int `json:"year_start"`
	MonthStart int `json:"month_start"`
	YearEnd    int `json:"year_end"`
	MonthEnd   int `json:"month_end"`
}

// Extraction is the stored result for one processed document.
type Extraction struct {
	DocID string `json:"doc_id"`
	URL   string `json:"url"`

	CIK         string `json:"cik,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Ticker      string `json:"ticker,omitempty"`

	Section     string `json:"itmo_section"`
	Contains21C bool   `json:"contains_21c"`

	SummaryDegraded bool `json:"summary_degraded,omitempty"`

	Interval      Interval `json:"interval"`
	IntervalFound bool     `json:"interval_found"`
	MentionCount  int      `json:"mention_count"`
}
