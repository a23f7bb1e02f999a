package parser

import (
	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/docoutline/internal/layout"
)

// helveticaWidths holds Helvetica's AFM advance widths, in thousandths of an
// em, for printable ASCII starting at the space character.
var helveticaWidths = [...]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // space - /
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, // 0 - 9
	278, 278, 584, 584, 584, 556, 1015, // : - @
	667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, // A - M
	722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, // N - Z
	278, 278, 278, 469, 556, 333, // [ - `
	556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, // a - m
	556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, // n - z
	334, 260, 334, 584, // { - ~
}

const (
	defaultGlyphWidth   = 556
	monospaceGlyphWidth = 600
)

// glyphAdvance returns the glyph's advance width. ledongthuc reports zero for
// fonts without a /Widths array (the standard 14 fonts usually have none), so
// the advance is then estimated from Courier or Helvetica metrics.
func glyphAdvance(t pdflib.Text) float64 {
	if t.W > 0 {
		return t.W
	}
	mono := fontFlags(t.Font)&layout.FlagMonospace != 0
	var units float64
	for _, r := range t.S {
		switch {
		case mono:
			units += monospaceGlyphWidth
		case r >= ' ' && r <= '~':
			units += float64(helveticaWidths[r-' '])
		default:
			units += defaultGlyphWidth
		}
	}
	return units / 1000 * t.FontSize
}
