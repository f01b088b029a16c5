// Package report renders a stored extraction as a human-readable Markdown
// summary, with optional HTML output.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dgallion1/aaerminer/internal/document"
)

// Markdown renders the extraction as a Markdown document.
func Markdown(ex document.Extraction) string {
	var b strings.Builder

	title := ex.CompanyName
	if title == "" {
		title = ex.DocID
	}
	fmt.Fprintf(&b, "# Extraction Report: %s\n\n", title)

	fmt.Fprintf(&b, "- **Document**: %s\n", ex.DocID)
	if ex.URL != "" {
		fmt.Fprintf(&b, "- **Source**: %s\n", ex.URL)
	}
	if ex.CIK != "" {
		fmt.Fprintf(&b, "- **CIK**: %s\n", ex.CIK)
	}
	if ex.Ticker != "" {
		fmt.Fprintf(&b, "- **Ticker**: %s\n", ex.Ticker)
	}
	fmt.Fprintf(&b, "- **21C proceeding**: %s\n", yesNo(ex.Contains21C))
	b.WriteString("\n")

	b.WriteString("## Misreporting Interval\n\n")
	if ex.IntervalFound {
		fmt.Fprintf(&b, "%s through %s, from %d temporal mentions.\n\n",
			formatEndpoint(ex.Interval.YearStart, ex.Interval.MonthStart),
			formatEndpoint(ex.Interval.YearEnd, ex.Interval.MonthEnd),
			ex.MentionCount)
	} else {
		b.WriteString("No interval could be inferred from this document.\n\n")
	}

	if ex.Section != "" {
		b.WriteString("## Header Section\n\n")
		fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(strings.TrimSpace(ex.Section), "\n", "\n> "))
	}

	if ex.SummaryDegraded {
		b.WriteString("*Summary boundaries were approximate; figures above may cover extra text.*\n")
	}

	return b.String()
}

// HTML renders the Markdown report to HTML.
func HTML(ex document.Extraction) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(ex)), &buf); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}

// formatEndpoint prints a year-month endpoint; month 0 means the endpoint
// is only resolved to the year.
func formatEndpoint(year, month int) string {
	if month == 0 {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%d-%02d", year, month)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
