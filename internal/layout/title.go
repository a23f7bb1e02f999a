package layout

import (
	"strings"
	"unicode/utf8"
)

// UntitledDocument is the title used when nothing better is found.
const UntitledDocument = "Untitled Document"

// ResolveTitle prefers a meaningful metadata title. Otherwise it joins every
// line in the upper half of the first page that is set in the largest size
// found there.
func ResolveTitle(doc *Document) string {
	if t := strings.TrimSpace(doc.Title); usableMetadataTitle(t) {
		return t
	}
	if len(doc.Pages) == 0 {
		return UntitledDocument
	}

	page := doc.Pages[0]
	half := page.Height / 2

	largest, found := 0, false
	for _, s := range page.Spans {
		if s.BBox.Y1 < half && (!found || s.Size > largest) {
			largest, found = s.Size, true
		}
	}
	if !found {
		return UntitledDocument
	}

	var candidates []string
	for _, l := range AssemblePage(page) {
		if l.BBox.Y1 < half && l.Size == largest {
			candidates = append(candidates, l.Text)
		}
	}
	if len(candidates) == 0 {
		return UntitledDocument
	}
	return strings.Join(candidates, " ")
}

func usableMetadataTitle(t string) bool {
	return utf8.RuneCountInString(t) > 5 && !strings.HasPrefix(strings.ToLower(t), "untitled")
}
