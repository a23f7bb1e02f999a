package layout

const (
	letterWidth  = 612.0
	letterHeight = 792.0
)

func mkSpan(text string, x0, y0, x1, y1 float64, size int) Span {
	return Span{
		Text: text,
		Size: size,
		Font: "helvetica",
		BBox: Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Page: 1,
	}
}

func mkLine(text string, x0, y0, x1, y1 float64, size int) Line {
	return Line{
		Text:       text,
		Size:       size,
		Font:       "helvetica",
		BBox:       Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Page:       1,
		PageWidth:  letterWidth,
		PageHeight: letterHeight,
	}
}

func letterPage(number int, spans ...Span) Page {
	for i := range spans {
		spans[i].Page = number
	}
	return Page{Number: number, Width: letterWidth, Height: letterHeight, Spans: spans}
}
