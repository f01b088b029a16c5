package discover

import (
	"strings"
	"testing"
)

const indexPage = `<html><body>
<table>
<tr><th>Date</th><th>Release No.</th><th>Respondents</th></tr>
<tr>
  <td>Aug. 12, 2021</td>
  <td><a href="/litigation/admin/2021/34-92641.pdf">34-92641</a></td>
  <td>Acme Widgets Inc.</td>
</tr>
<tr>
  <td>Jul. 30, 2021</td>
  <td><a href="https://www.example.gov/admin/34-92600.pdf">34-92600</a></td>
  <td>Zenith Holdings LLC and Jane Doe</td>
</tr>
<tr>
  <td>Jul. 28, 2021</td>
  <td><a href="/litigation/admin/2021/34-92590.htm">34-92590</a></td>
  <td>HTML-only release, no PDF</td>
</tr>
</table>
</body></html>`

func TestParseIndex(t *testing.T) {
	releases, err := ParseIndex(strings.NewReader(indexPage), "https://www.example.gov/divisions/enforce/")
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(releases) != 2 {
		t.Fatalf("got %d releases, want 2 (non-PDF row skipped)", len(releases))
	}

	first := releases[0]
	if first.URL != "https://www.example.gov/litigation/admin/2021/34-92641.pdf" {
		t.Errorf("URL = %q", first.URL)
	}
	if first.ReleaseNo != "34-92641" {
		t.Errorf("ReleaseNo = %q", first.ReleaseNo)
	}
	if first.Respondents != "Acme Widgets Inc." {
		t.Errorf("Respondents = %q", first.Respondents)
	}
	if first.DateText != "Aug. 12, 2021" {
		t.Errorf("DateText = %q", first.DateText)
	}

	// Absolute links pass through untouched.
	if releases[1].URL != "https://www.example.gov/admin/34-92600.pdf" {
		t.Errorf("absolute URL = %q", releases[1].URL)
	}
}

func TestParseIndexEmptyPage(t *testing.T) {
	releases, err := ParseIndex(strings.NewReader("<html><body><p>nothing here</p></body></html>"), "https://example.gov/")
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(releases) != 0 {
		t.Fatalf("got %d releases, want 0", len(releases))
	}
}

func TestParseIndexShortRows(t *testing.T) {
	page := `<table><tr><td>Aug. 1, 2021</td><td><a href="/a.pdf">34-1</a></td></tr></table>`
	releases, err := ParseIndex(strings.NewReader(page), "https://example.gov/")
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(releases) != 0 {
		t.Fatalf("got %d releases, want 0 for rows missing cells", len(releases))
	}
}
