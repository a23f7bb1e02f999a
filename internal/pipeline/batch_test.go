package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
)

func writeInputs(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir, map[string]string{
		"b.pdf":     "x",
		"C.PDF":     "x",
		"a.pdf":     "x",
		"notes.txt": "x",
	})
	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	names, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a.pdf", "b.pdf", "C.PDF"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected names[%d]=%q, got %q", i, want[i], names[i])
		}
	}
}

func TestScan_MissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRunBatch_OneFailureDoesNotStopOthers(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeInputs(t, in, map[string]string{
		"a.pdf":     "Alpha",
		"b.pdf":     "corrupt",
		"C.PDF":     "Gamma",
		"notes.txt": "ignored",
	})

	summary, err := RunBatch(context.Background(), fakeWorker(nil, 0), in, out, 2, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}

	for _, name := range []string{"a.json", "C.json"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
		var o doctree.Outline
		if err := json.Unmarshal(data, &o); err != nil {
			t.Fatalf("%s: invalid JSON: %v", name, err)
		}
		if len(o.Outline) != 1 {
			t.Errorf("%s: expected one heading, got %d", name, len(o.Outline))
		}
	}

	data, err := os.ReadFile(filepath.Join(out, "b.json"))
	if err != nil {
		t.Fatalf("expected b.json: %v", err)
	}
	var res doctree.ErrorResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.Error != "Failed to process b.pdf" {
		t.Errorf("expected error %q, got %q", "Failed to process b.pdf", res.Error)
	}

	if _, err := os.Stat(filepath.Join(out, "notes.json")); !os.IsNotExist(err) {
		t.Error("expected non-PDF input to be skipped")
	}
}

func TestRunBatch_GarbagePDFWithRealParser(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeInputs(t, in, map[string]string{"junk.pdf": "this is not a pdf"})

	o, err := layout.NewOutliner(layout.DefaultHeuristics())
	if err != nil {
		t.Fatal(err)
	}
	summary, err := RunBatch(context.Background(), NewWorker(o, discardLogger(), nil, 0), in, out, 1, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failure, got %+v", summary)
	}

	data, err := os.ReadFile(filepath.Join(out, "junk.json"))
	if err != nil {
		t.Fatalf("expected junk.json: %v", err)
	}
	var res doctree.ErrorResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if res.Error != "Failed to process junk.pdf" || res.Details == "" {
		t.Errorf("unexpected error object %+v", res)
	}
}

func TestRunBatch_EmptyInput(t *testing.T) {
	summary, err := RunBatch(context.Background(), fakeWorker(nil, 0), t.TempDir(), t.TempDir(), 4, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":     "report.json",
		"REPORT.PDF":     "REPORT.json",
		"v1.2.notes.pdf": "v1.2.notes.json",
	}
	for in, want := range tests {
		if got := outputName(in); got != want {
			t.Errorf("outputName(%q): expected %q, got %q", in, want, got)
		}
	}
}
