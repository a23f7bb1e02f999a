package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// US Letter, used when a page has no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

const (
	// Gap, relative to font size, above which a space is inserted between glyphs.
	wordGapFactor = 0.15
	// Gap, relative to font size, at which a glyph run is closed.
	runBreakFactor = 1.0
	// Largest negative advance still treated as kerning, relative to font size.
	kerningFactor = 0.2
	// Baseline drift allowed within one run.
	baselineTolerance = 0.5
	// Distance under which two glyph origins count as the same point.
	stackTolerance = 0.01
)

// PDFParser extracts positioned spans with ledongthuc/pdf and derives the
// outline with the layout heuristics.
type PDFParser struct {
	Outliner *layout.Outliner
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Outline, error) {
	if p.Outliner == nil {
		return nil, fmt.Errorf("pdf parser for %s has no outliner", filename)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	doc, err := ReadPDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return p.Outliner.Outline(doc), nil
}

// ReadPDF extracts the metadata title and every page's spans. Pages without
// content simply have no spans.
func ReadPDF(ra io.ReaderAt, size int64) (*layout.Document, error) {
	reader, err := pdflib.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc := &layout.Document{Title: metadataTitle(reader)}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		box := mediaBox(page)
		lp := layout.Page{Number: i, Width: box.width(), Height: box.height()}
		if !page.V.IsNull() {
			lp.Spans = spansFromText(page.Content().Text, i, box)
		}
		doc.Pages = append(doc.Pages, lp)
	}
	return doc, nil
}

func metadataTitle(r *pdflib.Reader) string {
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return info.Key("Title").Text()
}

// pageBox is a MediaBox in PDF user space (origin bottom-left).
type pageBox struct {
	llx, lly, urx, ury float64
}

func (b pageBox) width() float64  { return b.urx - b.llx }
func (b pageBox) height() float64 { return b.ury - b.lly }

// mediaBox resolves the page's MediaBox, which may be inherited from an
// ancestor Pages node.
func mediaBox(p pdflib.Page) pageBox {
	v := p.V
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdflib.Array && box.Len() == 4 {
			b := pageBox{
				llx: box.Index(0).Float64(),
				lly: box.Index(1).Float64(),
				urx: box.Index(2).Float64(),
				ury: box.Index(3).Float64(),
			}
			if b.width() > 0 && b.height() > 0 {
				return b
			}
		}
		v = v.Key("Parent")
	}
	return pageBox{urx: defaultPageWidth, ury: defaultPageHeight}
}

// glyphRun accumulates consecutive glyphs drawn with one font on one baseline.
type glyphRun struct {
	font   string
	size   float64
	y      float64
	x0, x1 float64
	lastX  float64 // origin of the last glyph as reported by the reader
	text   strings.Builder
}

func newGlyphRun(t pdflib.Text) *glyphRun {
	r := &glyphRun{font: t.Font, size: t.FontSize, y: t.Y, x0: t.X, x1: t.X + glyphAdvance(t), lastX: t.X}
	r.text.WriteString(t.S)
	return r
}

// stacked reports a zero-width glyph drawn at the previous glyph's origin.
// The reader does not advance the text position when a font has no widths,
// so every glyph of one show-text operator lands on the same X.
func (r *glyphRun) stacked(t pdflib.Text) bool {
	return t.W <= 0 && math.Abs(t.X-r.lastX) < stackTolerance
}

func (r *glyphRun) accepts(t pdflib.Text) bool {
	if t.Font != r.font || t.FontSize != r.size || math.Abs(t.Y-r.y) > baselineTolerance {
		return false
	}
	if r.stacked(t) {
		return true
	}
	gap := t.X - r.x1
	return gap >= -r.size*kerningFactor && gap < r.size*runBreakFactor
}

func (r *glyphRun) add(t pdflib.Text) {
	advance := glyphAdvance(t)
	if r.stacked(t) {
		r.text.WriteString(t.S)
		r.x1 += advance
		return
	}
	gap := t.X - r.x1
	if gap > r.size*wordGapFactor && !strings.HasSuffix(r.text.String(), " ") && !strings.HasPrefix(t.S, " ") {
		r.text.WriteByte(' ')
	}
	r.text.WriteString(t.S)
	r.x1 = max(r.x1, t.X+advance)
	r.lastX = t.X
}

// span converts the run to top-down page coordinates. Compatibility
// characters such as the "fi" ligature are folded so heading text matches
// what a reader would type.
func (r *glyphRun) span(page int, box pageBox) layout.Span {
	baseline := box.ury - r.y
	return layout.Span{
		Text:  norm.NFKC.String(r.text.String()),
		Size:  roundSize(r.size),
		Font:  normalizeFont(r.font),
		Flags: fontFlags(r.font),
		BBox: layout.Rect{
			X0: r.x0 - box.llx,
			Y0: baseline - r.size,
			X1: r.x1 - box.llx,
			Y1: baseline,
		},
		Page: page,
	}
}

// spansFromText coalesces the per-glyph output of Page.Content into spans.
func spansFromText(texts []pdflib.Text, page int, box pageBox) []layout.Span {
	var spans []layout.Span
	var run *glyphRun
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if run != nil && run.accepts(t) {
			run.add(t)
			continue
		}
		if run != nil {
			spans = append(spans, run.span(page, box))
		}
		run = newGlyphRun(t)
	}
	if run != nil {
		spans = append(spans, run.span(page, box))
	}
	return spans
}

// roundSize rounds half to even so 12.5pt and 11.5pt both land on 12.
func roundSize(size float64) int {
	return int(math.RoundToEven(size))
}

// normalizeFont drops the subset tag ("ABCDEF+") and lowercases the name.
func normalizeFont(name string) string {
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// fontFlags infers style bits from the font name; the parser exposes no
// font descriptor flags.
func fontFlags(name string) int {
	lower := strings.ToLower(normalizeFont(name))
	flags := 0
	for _, w := range []string{"bold", "black", "heavy", "semibold", "demi"} {
		if strings.Contains(lower, w) {
			flags |= layout.FlagBold
			break
		}
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= layout.FlagItalic
	}
	if strings.Contains(lower, "mono") || strings.Contains(lower, "courier") {
		flags |= layout.FlagMonospace
	}
	return flags
}
