// Package charstream turns a PDF into the positioned, font-tagged character
// stream the segmenter consumes.
package charstream

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dgallion1/aaerminer/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// Source extracts a character stream from raw document bytes.
type Source interface {
	Extract(r io.Reader) ([]document.PositionedChar, error)
}

// PDFSource reads per-glyph text with font metadata. Glyphs are taken in
// content-stream order per page; positional re-sorting is layout analysis
// and out of scope.
type PDFSource struct{}

func (s *PDFSource) Extract(r io.Reader) ([]document.PositionedChar, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "aaerminer-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var chars []document.PositionedChar
	offset := 0
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		chars, offset = appendGlyphs(chars, page.Content().Text, i-1, offset)
	}

	if len(chars) == 0 {
		return nil, fmt.Errorf("no extractable glyphs")
	}
	return chars, nil
}

// appendGlyphs converts one page's glyph list into characters, synthesizing
// the whitespace the content stream leaves implicit: a newline on a line
// change, a space on a horizontal gap wider than a third of the font size.
func appendGlyphs(chars []document.PositionedChar, texts []pdflib.Text, page, offset int) ([]document.PositionedChar, int) {
	havePrev := false
	var prev pdflib.Text

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if havePrev {
			if sep := separator(prev, t); sep != "" {
				chars = append(chars, document.PositionedChar{
					Text:   sep,
					Page:   page,
					Offset: offset,
				})
				offset += len(sep)
			}
		}

		bold := IsBoldFont(t.Font)
		for _, r := range t.S {
			g := string(r)
			chars = append(chars, document.PositionedChar{
				Text:   g,
				Bold:   bold,
				Page:   page,
				Offset: offset,
			})
			offset += len(g)
		}

		prev = t
		havePrev = true
	}

	// Page boundaries read as line breaks.
	if havePrev {
		chars = append(chars, document.PositionedChar{Text: "\n", Page: page, Offset: offset})
		offset++
	}
	return chars, offset
}

// separator decides what whitespace, if any, belongs between two adjacent
// glyphs.
func separator(prev, cur pdflib.Text) string {
	if math.Abs(prev.Y-cur.Y) > 0.5 {
		return "\n"
	}
	size := prev.FontSize
	if size <= 0 {
		size = 1
	}
	if cur.X-(prev.X+prev.W) > size*0.3 {
		return " "
	}
	return ""
}

// IsBoldFont reports whether a font name denotes a bold face, e.g.
// "Times-Bold" or "ABCDEF+Arial,BoldItalic".
func IsBoldFont(name string) bool {
	return strings.Contains(strings.ToLower(name), "bold")
}
