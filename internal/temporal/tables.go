package temporal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables are the lookup tables the extractor and aggregator consult. Loaded
// once at process start and treated as immutable afterwards.
type Tables struct {
	// MonthNames maps a month word to its number, 1-12.
	MonthNames map[string]int
	// QuarterToMonth maps an ordinal word to a representative month within
	// the year.
	QuarterToMonth map[string]int
	// MisreportingLemmas are verb lemmas whose numeric-modifier year
	// children count as high-confidence year mentions.
	MisreportingLemmas map[string]bool
}

// DefaultTables returns the compiled-in tables.
func DefaultTables() Tables {
	return Tables{
		MonthNames: map[string]int{
			"january": 1, "february": 2, "march": 3, "april": 4,
			"may": 5, "june": 6, "july": 7, "august": 8,
			"september": 9, "october": 10, "november": 11, "december": 12,
		},
		// Mid-quarter months; "the last quarter" is read as Q4. A quarter
		// mention pins the year more than the month, so mid-quarter keeps
		// the error bounded either way.
		QuarterToMonth: map[string]int{
			"first": 2, "second": 5, "third": 8, "fourth": 11, "last": 11,
		},
		MisreportingLemmas: map[string]bool{
			"restate":    true,
			"misstate":   true,
			"overstate":  true,
			"understate": true,
			"inflate":    true,
			"file":       true,
			"report":     true,
		},
	}
}

type tablesFile struct {
	MonthNames         map[string]int `yaml:"month_names"`
	QuarterToMonth     map[string]int `yaml:"quarter_to_month"`
	MisreportingLemmas []string       `yaml:"misreporting_lemmas"`
}

// LoadTables reads a YAML override file. Tables present in the file replace
// the corresponding default table wholesale; absent tables keep the
// defaults.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables: %w", err)
	}

	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Tables{}, fmt.Errorf("parse tables: %w", err)
	}

	t := DefaultTables()
	if len(f.MonthNames) > 0 {
		t.MonthNames = f.MonthNames
	}
	if len(f.QuarterToMonth) > 0 {
		t.QuarterToMonth = f.QuarterToMonth
	}
	if len(f.MisreportingLemmas) > 0 {
		t.MisreportingLemmas = make(map[string]bool, len(f.MisreportingLemmas))
		for _, lemma := range f.MisreportingLemmas {
			t.MisreportingLemmas[lemma] = true
		}
	}
	return t, nil
}
