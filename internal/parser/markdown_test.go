package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
)

func TestMarkdownParser_HeadingLevels(t *testing.T) {
	input := `# Design Notes

Intro text.

## Goals

### Non-goals

#### Too deep

## Layout *heuristics* and ` + "`code`" + `

Setext Heading
--------------
`
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "notes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title != "Design Notes" {
		t.Errorf("expected title %q, got %q", "Design Notes", got.Title)
	}
	want := []doctree.Heading{
		{Level: doctree.H1, Text: "Design Notes", Page: 1},
		{Level: doctree.H2, Text: "Goals", Page: 1},
		{Level: doctree.H3, Text: "Non-goals", Page: 1},
		{Level: doctree.H2, Text: "Layout heuristics and code", Page: 1},
		{Level: doctree.H2, Text: "Setext Heading", Page: 1},
	}
	if len(got.Outline) != len(want) {
		t.Fatalf("expected %d headings, got %+v", len(want), got.Outline)
	}
	for i := range want {
		if got.Outline[i] != want[i] {
			t.Errorf("heading[%d]: expected %+v, got %+v", i, want[i], got.Outline[i])
		}
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader("Just text.\n\nMore text."), "plain.markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "plain" {
		t.Errorf("expected filename stem as title, got %q", got.Title)
	}
	if got.Outline == nil || len(got.Outline) != 0 {
		t.Errorf("expected empty outline, got %#v", got.Outline)
	}
}

func TestMarkdownParser_NestedInBlockquote(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader("> ## Quoted\n"), "q.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Outline) != 1 || got.Outline[0].Text != "Quoted" {
		t.Errorf("expected quoted heading, got %+v", got.Outline)
	}
}
