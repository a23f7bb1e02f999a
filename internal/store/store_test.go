package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache", "outlines.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_Miss(t *testing.T) {
	s := openTestStore(t)
	o, ok, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || o != nil {
		t.Errorf("expected miss, got %+v", o)
	}
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := &doctree.Outline{
		Title: "Annual Report",
		Outline: []doctree.Heading{
			{Level: doctree.H1, Text: "1 Summary", Page: 1},
			{Level: doctree.H2, Text: "1.1 Revenue", Page: 2},
		},
	}
	if err := s.Put(ctx, "k1", "report.pdf", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := s.Get(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Title != want.Title || len(got.Outline) != 2 || got.Outline[1] != want.Outline[1] {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	s.Put(ctx, "k", "a.pdf", &doctree.Outline{Title: "Old", Outline: []doctree.Heading{}})
	s.Put(ctx, "k", "a.pdf", &doctree.Outline{Title: "New", Outline: []doctree.Heading{}})

	got, _, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "New" {
		t.Errorf("expected %q, got %q", "New", got.Title)
	}
}

func TestStore_EmptyOutlineStaysNonNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Put(ctx, "k", "a.pdf", &doctree.Outline{Title: "T", Outline: []doctree.Heading{}}); err != nil {
		t.Fatal(err)
	}
	got, _, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got.Outline == nil {
		t.Error("expected non-nil outline slice")
	}
}
