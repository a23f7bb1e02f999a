package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/render"
)

// ParserFunc picks a parser for a filename.
type ParserFunc func(filename string) (parser.Parser, error)

// OutlineCache stores finished PDF outlines by content key.
type OutlineCache interface {
	Get(ctx context.Context, key string) (*doctree.Outline, bool, error)
	Put(ctx context.Context, key, filename string, o *doctree.Outline) error
}

// Worker processes a single document job. It is stateless apart from its
// collaborators and may be shared by many goroutines.
type Worker struct {
	parserFor ParserFunc
	log       *slog.Logger
	stats     *Stats
	timeout   time.Duration

	cache     OutlineCache
	namespace string

	// slots bounds parses in flight, including ones that outlived their deadline.
	slots chan struct{}
}

// NewWorker builds a worker that outlines PDFs with o. A positive timeout
// bounds each document.
func NewWorker(o *layout.Outliner, log *slog.Logger, stats *Stats, timeout time.Duration) *Worker {
	return &Worker{
		parserFor: func(filename string) (parser.Parser, error) {
			return parser.ForFile(filename, o)
		},
		log:     log,
		stats:   stats,
		timeout: timeout,
	}
}

// SetCache makes the worker reuse outlines of PDFs it has seen before.
// namespace must change whenever the heuristics do.
func (w *Worker) SetCache(c OutlineCache, namespace string) {
	w.cache = c
	w.namespace = namespace
}

// SetParseLimit caps how many documents are parsed at once. A parse that
// overruns the deadline keeps its slot until it really finishes, so timed-out
// documents cannot pile up beyond n. Zero or less removes the cap.
func (w *Worker) SetParseLimit(n int) {
	if n <= 0 {
		w.slots = nil
		return
	}
	w.slots = make(chan struct{}, n)
}

// Process runs the document through parsing and outlining and, if the job
// has an OutputPath, writes the result there. Any failure, including a
// panic inside a parser, becomes the job's error result; nothing escapes to
// the caller.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	job.SetStatus(StatusParsing, "parsing")
	outline, err := w.outline(ctx, job)
	took := time.Since(start)

	var result any
	if err != nil {
		log.Error("processing failed", "error", err)
		job.AddError(err.Error())
		result = doctree.NewErrorResult(job.Filename, err)
	} else {
		log.Info("outline extracted", "title", outline.Title, "headings", len(outline.Outline), "duration_ms", took.Milliseconds())
		result = outline
	}
	job.setResult(result, took)
	if w.stats != nil {
		w.stats.Record(took.Milliseconds(), err == nil)
	}

	if job.OutputPath != "" {
		job.SetStatus(StatusWriting, "writing")
		if werr := render.WriteFile(job.OutputPath, result); werr != nil {
			log.Error("write failed", "path", job.OutputPath, "error", werr)
			job.AddError(fmt.Sprintf("write: %s", werr))
			job.SetStatus(StatusFailed, "writing")
			return
		}
	}

	if err != nil {
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetStatus(StatusCompleted, "done")
}

// outline applies the per-document deadline, if any, around run.
func (w *Worker) outline(ctx context.Context, job *Job) (*doctree.Outline, error) {
	release, err := w.acquire(ctx)
	if err != nil {
		return nil, err
	}
	if w.timeout <= 0 {
		defer release()
		return w.run(ctx, job)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	type outcome struct {
		outline *doctree.Outline
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		defer release()
		o, err := w.run(ctx, job)
		done <- outcome{o, err}
	}()

	select {
	case r := <-done:
		return r.outline, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("processing timed out after %s", w.timeout)
		}
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	}
}

// acquire waits for a parse slot and returns the function that frees it.
func (w *Worker) acquire(ctx context.Context) (func(), error) {
	slots := w.slots
	if slots == nil {
		return func() {}, nil
	}
	select {
	case slots <- struct{}{}:
		return func() { <-slots }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	}
}

func (w *Worker) run(ctx context.Context, job *Job) (outline *doctree.Outline, err error) {
	defer func() {
		if r := recover(); r != nil {
			outline, err = nil, fmt.Errorf("panic while processing: %v", r)
		}
	}()

	p, err := w.parserFor(job.Filename)
	if err != nil {
		return nil, err
	}
	data, err := job.load()
	if err != nil {
		return nil, err
	}

	if w.cache == nil || !parser.IsPDF(job.Filename) {
		return p.Parse(bytes.NewReader(data), job.Filename)
	}

	key := w.namespace + ":" + ContentHashHex(data)
	if cached, ok, err := w.cache.Get(ctx, key); err != nil {
		w.log.Warn("cache lookup failed", "filename", job.Filename, "error", err)
	} else if ok {
		w.log.Debug("cache hit", "filename", job.Filename)
		return cached, nil
	}

	outline, err = p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		return nil, err
	}
	if err := w.cache.Put(ctx, key, job.Filename, outline); err != nil {
		w.log.Warn("cache store failed", "filename", job.Filename, "error", err)
	}
	return outline, nil
}
