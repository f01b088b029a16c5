package temporal

import (
	"math"
	"strings"

	"github.com/dgallion1/aaerminer/internal/document"
)

// window is the year acceptance range derived from the observed years. An
// unbounded window accepts everything.
type window struct {
	lower, upper float64
	bounded      bool
}

func (w window) contains(ts float64) bool {
	if !w.bounded {
		return true
	}
	return w.lower < ts && ts < w.upper
}

// yearWindow applies a two-sigma outlier filter when more than one year was
// observed; a single year gives no basis for rejection.
func yearWindow(years []int) window {
	if len(years) < 2 {
		return window{}
	}
	mean, stddev := meanStddev(years)
	return window{
		lower:   mean - 2*stddev,
		upper:   mean + 2*stddev,
		bounded: true,
	}
}

func meanStddev(values []int) (mean, stddev float64) {
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// Aggregator reduces collected mentions into a single best-guess interval.
// Safe for concurrent use across documents.
type Aggregator struct {
	tables Tables
}

func NewAggregator(tables Tables) *Aggregator {
	return &Aggregator{tables: tables}
}

// Infer returns the widest interval spanned by the accepted timestamps.
// ok is false when nothing qualified; the zero Interval carries no meaning
// then.
func (a *Aggregator) Infer(m Mentions) (document.Interval, bool) {
	w := yearWindow(m.Years)

	// Merge quarter mentions into the months map via their representative
	// month. Mentions without a recognized ordinal contribute nothing.
	months := make(map[int][]int, len(m.Months))
	for year, list := range m.Months {
		months[year] = append(months[year], list...)
	}
	for year, qs := range m.Quarters {
		for _, q := range qs {
			if month, ok := a.tables.QuarterToMonth[strings.ToLower(q.Location)]; ok {
				months[year] = append(months[year], month)
			}
		}
	}

	minTS := math.Inf(1)
	maxTS := math.Inf(-1)
	accept := func(ts float64) {
		if !w.contains(ts) {
			return
		}
		if ts < minTS {
			minTS = ts
		}
		if ts > maxTS {
			maxTS = ts
		}
	}

	for year, list := range months {
		for _, month := range list {
			accept(float64(year) + float64(month)/12)
		}
	}

	// No month-level timestamp survived; degrade to whole-year endpoints
	// over the in-window years so a bare year still yields an interval.
	if math.IsInf(minTS, 1) {
		for _, year := range m.Years {
			accept(float64(year))
		}
	}
	if math.IsInf(minTS, 1) {
		return document.Interval{}, false
	}

	startYear, startMonth := splitTimestamp(minTS)
	endYear, endMonth := splitTimestamp(maxTS)
	return document.Interval{
		YearStart:  startYear,
		MonthStart: startMonth,
		YearEnd:    endYear,
		MonthEnd:   endMonth,
	}, true
}

// splitTimestamp converts a continuous year+month/12 timestamp back to a
// year and a month rounded to the nearest integer. December timestamps land
// exactly on the next year boundary and come back as {year+1, 0}.
func splitTimestamp(ts float64) (year, month int) {
	whole := math.Floor(ts)
	return int(whole), int(math.Round((ts - whole) * 12))
}
