package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
)

// ErrUnsupportedFormat is returned by ForFile for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// Parser converts raw document bytes into an Outline.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Outline, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename. PDFs are outlined
// with o; the other formats carry their own heading markup.
func ForFile(filename string, o *layout.Outliner) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{Outliner: o}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsPDF reports whether filename has a .pdf extension, in any case.
func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// stem strips the extension from a filename.
func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// outlineBuilder collects headings from sources with explicit heading levels.
type outlineBuilder struct {
	fallbackTitle string
	title         string
	headings      []doctree.Heading
}

func newOutlineBuilder(filename string) *outlineBuilder {
	return &outlineBuilder{fallbackTitle: stem(filename)}
}

// add records a heading of the given depth. The first top-level heading
// doubles as the title unless one was set explicitly. Depths past H3 are dropped.
func (b *outlineBuilder) add(depth int, text string, page int) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return
	}
	if b.title == "" && depth == 1 {
		b.title = text
	}
	level, ok := doctree.LevelForDepth(depth)
	if !ok {
		return
	}
	b.headings = append(b.headings, doctree.Heading{Level: level, Text: text, Page: page})
}

func (b *outlineBuilder) outline() *doctree.Outline {
	title := b.title
	if title == "" {
		title = b.fallbackTitle
	}
	headings := b.headings
	if headings == nil {
		headings = []doctree.Heading{}
	}
	return &doctree.Outline{Title: title, Outline: headings}
}
