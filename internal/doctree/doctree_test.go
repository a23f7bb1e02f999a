package doctree

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNest_BuildsHierarchy(t *testing.T) {
	o := &Outline{
		Title: "Doc",
		Outline: []Heading{
			{Level: H1, Text: "Intro", Page: 1},
			{Level: H2, Text: "Scope", Page: 1},
			{Level: H3, Text: "Terms", Page: 2},
			{Level: H2, Text: "Goals", Page: 2},
			{Level: H1, Text: "Design", Page: 3},
		},
	}

	roots := Nest(o)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	intro := roots[0]
	if intro.Text != "Intro" {
		t.Errorf("expected %q, got %q", "Intro", intro.Text)
	}
	if len(intro.Children) != 2 {
		t.Fatalf("expected 2 children under Intro, got %d", len(intro.Children))
	}
	scope := intro.Children[0]
	if len(scope.Children) != 1 || scope.Children[0].Text != "Terms" {
		t.Errorf("expected Terms under Scope, got %+v", scope.Children)
	}
	if roots[1].Text != "Design" {
		t.Errorf("expected %q, got %q", "Design", roots[1].Text)
	}
}

func TestNest_OrphanH3AttachesToH1(t *testing.T) {
	o := &Outline{Outline: []Heading{
		{Level: H1, Text: "A", Page: 1},
		{Level: H3, Text: "a.1", Page: 1},
	}}
	roots := Nest(o)
	if len(roots) != 1 || len(roots[0].Children) != 1 {
		t.Fatalf("expected H3 nested under H1, got %+v", roots)
	}
}

func TestNest_LeadingH2IsRoot(t *testing.T) {
	o := &Outline{Outline: []Heading{
		{Level: H2, Text: "first", Page: 1},
		{Level: H1, Text: "second", Page: 1},
	}}
	roots := Nest(o)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
}

func TestLevelForDepth(t *testing.T) {
	tests := []struct {
		depth int
		want  Level
		ok    bool
	}{
		{1, H1, true},
		{2, H2, true},
		{3, H3, true},
		{4, "", false},
		{0, "", false},
	}
	for _, tt := range tests {
		got, ok := LevelForDepth(tt.depth)
		if got != tt.want || ok != tt.ok {
			t.Errorf("depth=%d: expected (%q, %v), got (%q, %v)", tt.depth, tt.want, tt.ok, got, ok)
		}
	}
}

func TestOutline_JSONShape(t *testing.T) {
	o := Outline{Title: "T", Outline: []Heading{{Level: H1, Text: "1. Introduction", Page: 1}}}
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"title":"T","outline":[{"level":"H1","text":"1. Introduction","page":1}]}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestNewErrorResult(t *testing.T) {
	r := NewErrorResult("broken.pdf", errors.New("malformed PDF: missing xref"))
	if r.Error != "Failed to process broken.pdf" {
		t.Errorf("unexpected error field %q", r.Error)
	}
	if r.Details != "malformed PDF: missing xref" {
		t.Errorf("unexpected details %q", r.Details)
	}
}
