package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/docoutline/internal/parser"
)

// Scan lists the PDF files directly inside dir, sorted by name ignoring case.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsPDF(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names, nil
}

// BatchSummary counts the outcome of one batch run.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// RunBatch outlines every PDF in inputDir with up to workers documents in
// flight and writes <stem>.json for each into outputDir. A failed document
// gets an error object and never stops the batch; the returned error is only
// for problems with the directories or cancellation.
func RunBatch(ctx context.Context, w *Worker, inputDir, outputDir string, workers int, log *slog.Logger) (BatchSummary, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("create output dir: %w", err)
	}
	names, err := Scan(inputDir)
	if err != nil {
		return BatchSummary{}, err
	}
	if workers <= 0 {
		workers = 1
	}
	log.Info("found documents", "input_dir", inputDir, "count", len(names))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	jobs := make([]*Job, 0, len(names))

submit:
	for _, name := range names {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			break submit
		}

		job := NewJob(name)
		job.SetSourcePath(filepath.Join(inputDir, name))
		job.OutputPath = filepath.Join(outputDir, outputName(name))
		jobs = append(jobs, job)

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			w.Process(ctx, job)
		}()
	}
	wg.Wait()

	summary := BatchSummary{Total: len(names)}
	for _, job := range jobs {
		if job.Snapshot().Status == StatusCompleted {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	summary.Failed += len(names) - len(jobs)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("batch interrupted: %w", err)
	}
	return summary, nil
}

// outputName maps "report.PDF" to "report.json".
func outputName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".json"
}
