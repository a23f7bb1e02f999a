// Package render writes outlines in the supported output formats.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// WriteJSON encodes v with four-space indentation, leaving non-ASCII and
// HTML-significant characters unescaped.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// WriteFile writes v as JSON to path via a temporary file in the same
// directory, so readers never see a partial result.
func WriteFile(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".outline-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WriteJSON(tmp, v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Markdown renders the title as a heading and the outline as a nested list.
func Markdown(o *doctree.Outline) []byte {
	var buf bytes.Buffer
	buf.WriteString("# ")
	buf.WriteString(escape(o.Title))
	buf.WriteString("\n\n")

	var walk func(nodes []*doctree.DocNode, indent int)
	walk = func(nodes []*doctree.DocNode, indent int) {
		for _, n := range nodes {
			fmt.Fprintf(&buf, "%s- %s (p. %d)\n", strings.Repeat("  ", indent), escape(n.Text), n.Page)
			walk(n.Children, indent+1)
		}
	}
	walk(doctree.Nest(o), 0)
	return buf.Bytes()
}

// HTML renders the Markdown form with goldmark.
func HTML(o *doctree.Outline) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(Markdown(o), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// escape backslash-escapes ASCII punctuation so heading text is never read
// as Markdown syntax.
func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune("\\`*_{}[]<>()#+-.!|~&\"'", r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
