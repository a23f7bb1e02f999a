package layout

import (
	"slices"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// ResolveHierarchy ranks the distinct sizes of the heading candidates, largest
// first, and assigns H1, H2 and H3 to the top three. Headings of any smaller
// size are dropped. Document order is preserved.
func ResolveHierarchy(headings []Line) []doctree.Heading {
	var sizes []int
	for _, h := range headings {
		if !slices.Contains(sizes, h.Size) {
			sizes = append(sizes, h.Size)
		}
	}
	slices.Sort(sizes)
	slices.Reverse(sizes)

	levels := make(map[int]doctree.Level, 3)
	for i, size := range sizes {
		level, ok := doctree.LevelForDepth(i + 1)
		if !ok {
			break
		}
		levels[size] = level
	}

	outline := make([]doctree.Heading, 0, len(headings))
	for _, h := range headings {
		level, ok := levels[h.Size]
		if !ok {
			continue
		}
		outline = append(outline, doctree.Heading{
			Level: level,
			Text:  h.Text,
			Page:  h.Page,
		})
	}
	return outline
}
