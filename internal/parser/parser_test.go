package parser

import (
	"errors"
	"testing"

	"github.com/dgallion1/docoutline/internal/layout"
)

func TestForFile_Dispatch(t *testing.T) {
	o, err := layout.NewOutliner(layout.DefaultHeuristics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "*parser.PDFParser"},
		{"REPORT.PDF", "*parser.PDFParser"},
		{"notes.md", "*parser.MarkdownParser"},
		{"notes.markdown", "*parser.MarkdownParser"},
		{"page.htm", "*parser.HTMLParser"},
		{"brief.docx", "*parser.DOCXParser"},
	}
	for _, tt := range tests {
		p, err := ForFile(tt.filename, o)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("data.csv", nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestIsPDF(t *testing.T) {
	for name, want := range map[string]bool{
		"a.pdf":     true,
		"B.PDF":     true,
		"c.Pdf":     true,
		"d.pdf.txt": false,
		"pdf":       false,
	} {
		if got := IsPDF(name); got != want {
			t.Errorf("IsPDF(%q) = %v, expected %v", name, got, want)
		}
	}
}

func typeName(p Parser) string {
	switch p.(type) {
	case *PDFParser:
		return "*parser.PDFParser"
	case *MarkdownParser:
		return "*parser.MarkdownParser"
	case *HTMLParser:
		return "*parser.HTMLParser"
	case *DOCXParser:
		return "*parser.DOCXParser"
	}
	return "unknown"
}
