package layout

const (
	// Horizontal continuation gap, as a fraction of the current line's size.
	continuationGapFactor = 0.8
	// Maximum vertical gap between a line and its wrapped continuation.
	wrapGapLimit = 5.0
)

// RecombineLines merges lines that were split from one semantic line, such as
// a "1." fragment and its heading text or a heading wrapped onto two rows.
//
// It is a greedy single pass in document order: a merged line keeps competing
// against the following lines, which is what lets chains of fragments collapse.
// The input slice is not modified.
func RecombineLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}

	out := make([]Line, 0, len(lines))
	cur := lines[0]
	for _, next := range lines[1:] {
		if continues(cur, next) {
			cur.Text += " " + next.Text
			cur.BBox = cur.BBox.Union(next.BBox)
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}

func continues(cur, next Line) bool {
	if next.Page != cur.Page || next.Size != cur.Size || next.Font != cur.Font {
		return false
	}
	hgap := next.BBox.X0 - cur.BBox.X1
	if hgap >= 0 && hgap < float64(cur.Size)*continuationGapFactor {
		return true
	}
	vgap := next.BBox.Y0 - cur.BBox.Y1
	return vgap >= 0 && vgap < wrapGapLimit
}
