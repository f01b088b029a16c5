// Package discover parses the enforcement release index pages and pulls out
// links to individual release documents.
package discover

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Release is one row scraped from an index page.
type Release struct {
	URL         string `json:"url"`
	ReleaseNo   string `json:"release_no"`
	Respondents string `json:"respondents"`
	DateText    string `json:"date_text"`
}

// ParseIndex walks an index page and collects every row whose link points
// at a PDF release. Relative links are resolved against baseURL.
func ParseIndex(r io.Reader, baseURL string) ([]Release, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse index html: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	var releases []Release
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if rel, ok := parseRow(n, base); ok {
				releases = append(releases, rel)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return releases, nil
}

// parseRow expects index rows shaped as date cell, release-number cell with
// the document link, respondents cell. Rows without a PDF link are skipped.
func parseRow(tr *html.Node, base *url.URL) (Release, bool) {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, c)
		}
	}
	if len(cells) < 3 {
		return Release{}, false
	}

	href := findHref(cells[1])
	if href == "" || !strings.HasSuffix(strings.ToLower(href), ".pdf") {
		return Release{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return Release{}, false
	}

	return Release{
		URL:         base.ResolveReference(ref).String(),
		ReleaseNo:   textContent(cells[1]),
		Respondents: textContent(cells[2]),
		DateText:    textContent(cells[0]),
	}, true
}

func findHref(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				return attr.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href := findHref(c); href != "" {
			return href
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
