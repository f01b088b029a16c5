package temporal

import (
	"testing"

	"github.com/dgallion1/aaerminer/internal/document"
)

func infer(t *testing.T, m Mentions) (document.Interval, bool) {
	t.Helper()
	return NewAggregator(DefaultTables()).Infer(m)
}

func TestInferRejectsOutlierYear(t *testing.T) {
	// Years repeat the way real documents mention them; the two-sigma
	// window over this set ends around 2086 and rejects 2099.
	m := Mentions{
		Years: []int{2015, 2015, 2016, 2016, 2017, 2017, 2099},
		Months: map[int][]int{
			2015: {3},
			2017: {9},
			2099: {6},
		},
	}

	interval, ok := infer(t, m)
	if !ok {
		t.Fatalf("expected an interval")
	}
	if interval.YearEnd >= 2099 {
		t.Fatalf("outlier year leaked into interval: %+v", interval)
	}
	if interval.YearStart != 2015 || interval.MonthStart != 3 {
		t.Fatalf("expected start 2015-03, got %+v", interval)
	}
	if interval.YearEnd != 2017 || interval.MonthEnd != 9 {
		t.Fatalf("expected end 2017-09, got %+v", interval)
	}
}

func TestInferQuarterToMonthTranslation(t *testing.T) {
	m := Mentions{
		Quarters: map[int][]QuarterMention{
			2019: {{Location: "first"}},
		},
	}

	interval, ok := infer(t, m)
	if !ok {
		t.Fatalf("expected an interval")
	}
	want := DefaultTables().QuarterToMonth["first"]
	if interval.YearStart != 2019 || interval.YearEnd != 2019 {
		t.Fatalf("expected degenerate 2019 interval, got %+v", interval)
	}
	if interval.MonthStart != want || interval.MonthEnd != want {
		t.Fatalf("expected month %d, got %+v", want, interval)
	}
}

func TestInferSingleYearSkipsFilter(t *testing.T) {
	m := Mentions{Years: []int{2017}}

	interval, ok := infer(t, m)
	if !ok {
		t.Fatalf("expected an interval from a single year")
	}
	if interval.YearStart != 2017 || interval.YearEnd != 2017 {
		t.Fatalf("expected degenerate 2017 interval, got %+v", interval)
	}
	if interval.MonthStart != 0 || interval.MonthEnd != 0 {
		t.Fatalf("expected unspecified months, got %+v", interval)
	}
}

func TestInferSingleYearWithMonth(t *testing.T) {
	m := Mentions{
		Years:  []int{2017},
		Months: map[int][]int{2017: {6}},
	}

	interval, ok := infer(t, m)
	if !ok {
		t.Fatalf("expected an interval")
	}
	if interval.YearStart != 2017 || interval.MonthStart != 6 ||
		interval.YearEnd != 2017 || interval.MonthEnd != 6 {
		t.Fatalf("expected 2017-06 both ends, got %+v", interval)
	}
}

func TestInferVacuousMentions(t *testing.T) {
	var m Mentions

	interval, ok := infer(t, m)
	if ok {
		t.Fatalf("expected no interval, got %+v", interval)
	}
	if !m.Empty() {
		t.Fatalf("mention count must expose the vacuous case")
	}
}

func TestInferUnknownOrdinalContributesNothing(t *testing.T) {
	m := Mentions{
		Quarters: map[int][]QuarterMention{
			2019: {{Location: ""}},
		},
	}

	_, ok := infer(t, m)
	if ok {
		t.Fatalf("quarter without a recognized ordinal must not produce an interval")
	}
}

func TestInferDecemberRollsIntoNextYear(t *testing.T) {
	// Continuous-timestamp arithmetic: 2019 + 12/12 converts back as
	// {2020, month 0}.
	m := Mentions{
		Years:  []int{2019},
		Months: map[int][]int{2019: {12}},
	}

	interval, ok := infer(t, m)
	if !ok {
		t.Fatalf("expected an interval")
	}
	if interval.YearEnd != 2020 || interval.MonthEnd != 0 {
		t.Fatalf("expected December rollover to 2020-00, got %+v", interval)
	}
}

func TestInferMergesQuartersAndMonths(t *testing.T) {
	m := Mentions{
		Years: []int{2014},
		Months: map[int][]int{
			2014: {10},
		},
		Quarters: map[int][]QuarterMention{
			2014: {{Location: "first"}},
		},
	}

	interval, ok := infer(t, m)
	if !ok {
		t.Fatalf("expected an interval")
	}
	want := DefaultTables().QuarterToMonth["first"]
	if interval.MonthStart != want {
		t.Fatalf("expected quarter month %d as start, got %+v", want, interval)
	}
	if interval.MonthEnd != 10 {
		t.Fatalf("expected explicit month 10 as end, got %+v", interval)
	}
}

func TestMeanStddev(t *testing.T) {
	mean, stddev := meanStddev([]int{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 {
		t.Fatalf("expected mean 5, got %f", mean)
	}
	if stddev != 2 {
		t.Fatalf("expected stddev 2, got %f", stddev)
	}
}
