// Package layout recovers a document outline from positioned text spans using
// geometry and typography alone.
package layout

// Style flag bits as reported by the span source.
const (
	FlagSuperscript = 1 << 0
	FlagItalic      = 1 << 1
	FlagSerif       = 1 << 2
	FlagMonospace   = 1 << 3
	FlagBold        = 1 << 4
)

// IsBold reports whether the bold bit (16) is set in a style-flag bitmask.
func IsBold(flags int) bool { return flags&FlagBold != 0 }

// Rect is a bounding box in page coordinates with y growing downward.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Union returns the smallest rectangle enclosing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return r.X0 <= o.X0 && r.Y0 <= o.Y0 && r.X1 >= o.X1 && r.Y1 >= o.Y1
}

// Span is the smallest unit of positioned, styled text.
type Span struct {
	Text  string
	Size  int    // rounded font size
	Font  string // lowercased family name
	Flags int
	Color int
	BBox  Rect
	Page  int // 1-based
}

// Page is one page of spans together with its geometry.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Spans  []Span
}

// Document is the parsed input handed to the Outliner.
type Document struct {
	Title string // metadata title, may be empty
	Pages []Page
}

// Line is a reconstructed visual row of text. Style attributes come from the
// first member span; BBox encloses every member.
type Line struct {
	Text       string
	Size       int
	Font       string
	Flags      int
	Color      int
	BBox       Rect
	Page       int
	PageWidth  float64
	PageHeight float64
}
