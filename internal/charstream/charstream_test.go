package charstream

import (
	"strings"
	"testing"

	pdflib "github.com/ledongthuc/pdf"
)

func glyph(s, font string, x, y, w, size float64) pdflib.Text {
	return pdflib.Text{S: s, Font: font, X: x, Y: y, W: w, FontSize: size}
}

func TestIsBoldFont(t *testing.T) {
	cases := map[string]bool{
		"Times-Bold":             true,
		"ABCDEF+Arial,BoldItalic": true,
		"Helvetica":              false,
		"Times-Roman":            false,
	}
	for font, want := range cases {
		if got := IsBoldFont(font); got != want {
			t.Errorf("IsBoldFont(%q) = %v, want %v", font, got, want)
		}
	}
}

func TestAppendGlyphsSynthesizesSpaces(t *testing.T) {
	// "In re" with a wide gap between the words and none inside them.
	texts := []pdflib.Text{
		glyph("I", "Times-Bold", 10, 700, 5, 12),
		glyph("n", "Times-Bold", 15, 700, 5, 12),
		glyph("r", "Times-Roman", 30, 700, 5, 12),
		glyph("e", "Times-Roman", 35, 700, 5, 12),
	}

	chars, offset := appendGlyphs(nil, texts, 0, 0)

	var text strings.Builder
	for _, ch := range chars {
		text.WriteString(ch.Text)
	}
	if text.String() != "In re\n" {
		t.Fatalf("unexpected text %q", text.String())
	}
	if offset != len("In re\n") {
		t.Fatalf("expected offset %d, got %d", len("In re\n"), offset)
	}
	if !chars[0].Bold || !chars[1].Bold {
		t.Fatalf("expected bold glyphs for the bold font run")
	}
	if chars[2].Bold {
		t.Fatalf("synthesized space must not be bold")
	}
}

func TestAppendGlyphsLineBreakOnYChange(t *testing.T) {
	texts := []pdflib.Text{
		glyph("a", "Helvetica", 10, 700, 5, 12),
		glyph("b", "Helvetica", 10, 688, 5, 12),
	}

	chars, _ := appendGlyphs(nil, texts, 0, 0)
	var text strings.Builder
	for _, ch := range chars {
		text.WriteString(ch.Text)
	}
	if text.String() != "a\nb\n" {
		t.Fatalf("expected line break, got %q", text.String())
	}
}

func TestAppendGlyphsOffsetsAreContiguous(t *testing.T) {
	texts := []pdflib.Text{
		glyph("a", "Helvetica", 10, 700, 5, 12),
		glyph("b", "Helvetica", 40, 700, 5, 12),
	}

	chars, _ := appendGlyphs(nil, texts, 2, 100)
	offset := 100
	for _, ch := range chars {
		if ch.Offset != offset {
			t.Fatalf("expected offset %d for %q, got %d", offset, ch.Text, ch.Offset)
		}
		if ch.Page != 2 {
			t.Fatalf("expected page 2, got %d", ch.Page)
		}
		offset += len(ch.Text)
	}
}
