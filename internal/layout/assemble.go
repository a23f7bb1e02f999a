package layout

import (
	"cmp"
	"slices"
	"strings"
)

const (
	// Spans whose tops differ by less than this share a row.
	rowTolerance = 2.0
	// Maximum horizontal gap between consecutive spans of one line.
	spanGapLimit = 10.0
)

// AssembleLines groups every page's spans into lines, in page order.
func AssembleLines(doc *Document) []Line {
	var lines []Line
	for _, p := range doc.Pages {
		lines = append(lines, AssemblePage(p)...)
	}
	return lines
}

// AssemblePage sorts the page's spans top-to-bottom, left-to-right and walks
// them once, closing the open group whenever the next span is not on the same
// row or not directly to the right of the group's last span.
func AssemblePage(p Page) []Line {
	if len(p.Spans) == 0 {
		return nil
	}

	spans := slices.Clone(p.Spans)
	slices.SortStableFunc(spans, func(a, b Span) int {
		if c := cmp.Compare(a.BBox.Y0, b.BBox.Y0); c != 0 {
			return c
		}
		return cmp.Compare(a.BBox.X0, b.BBox.X0)
	})

	var lines []Line
	group := []Span{spans[0]}
	for _, s := range spans[1:] {
		if adjacent(group[len(group)-1], s) {
			group = append(group, s)
			continue
		}
		if l, ok := newLine(group, p); ok {
			lines = append(lines, l)
		}
		group = []Span{s}
	}
	if l, ok := newLine(group, p); ok {
		lines = append(lines, l)
	}
	return lines
}

func adjacent(last, s Span) bool {
	dy := s.BBox.Y0 - last.BBox.Y0
	if dy < 0 {
		dy = -dy
	}
	if dy >= rowTolerance {
		return false
	}
	gap := s.BBox.X0 - last.BBox.X1
	return gap >= 0 && gap < spanGapLimit
}

// newLine closes a span group. Groups whose text trims to nothing are dropped.
func newLine(group []Span, p Page) (Line, bool) {
	var sb strings.Builder
	bbox := group[0].BBox
	for _, s := range group {
		sb.WriteString(s.Text)
		bbox = bbox.Union(s.BBox)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Line{}, false
	}

	first := group[0]
	return Line{
		Text:       text,
		Size:       first.Size,
		Font:       first.Font,
		Flags:      first.Flags,
		Color:      first.Color,
		BBox:       bbox,
		Page:       first.Page,
		PageWidth:  p.Width,
		PageHeight: p.Height,
	}, true
}
