package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/layout"
)

// NewOutliner builds the layout Outliner from the configured heuristics.
func NewOutliner(cfg config.Config) (*layout.Outliner, error) {
	return layout.NewOutliner(HeuristicsFromConfig(cfg))
}

// CacheNamespace fingerprints the configured heuristics so cached outlines
// are never served under different tuning.
func CacheNamespace(cfg config.Config) string {
	return ContentHashHex([]byte(fmt.Sprintf("%+v", HeuristicsFromConfig(cfg))))[:16]
}

// HeuristicsFromConfig overlays the configured tuning on the defaults.
func HeuristicsFromConfig(cfg config.Config) layout.Heuristics {
	h := layout.DefaultHeuristics()
	h.HeaderMarginPercent = cfg.HeaderMarginPercent
	h.FooterMarginPercent = cfg.FooterMarginPercent
	h.MaxWordCount = cfg.MaxWordCount
	h.MinWordCount = cfg.MinWordCount
	h.SizeMultiplier = cfg.SizeMultiplier
	h.UseSize = cfg.SignalSize
	h.UseBold = cfg.SignalBold
	h.UseNumbering = cfg.SignalNumbering
	h.UseAllCaps = cfg.SignalAllCaps
	h.RequireDifferentColor = cfg.RequireDifferentColor
	h.RequireCentered = cfg.RequireCentered
	h.CenterTolerance = cfg.CenterTolerance
	return h
}

// Orchestrator runs submitted jobs on a fixed pool of workers.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	worker *Worker
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline; call Start to launch workers.
func NewOrchestrator(cfg config.Config, worker *Worker, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		worker: worker,
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Worker returns the shared worker for synchronous use by API handlers.
func (o *Orchestrator) Worker() *Worker {
	return o.worker
}

// Stats returns the worker's processing stats, or nil if none are kept.
func (o *Orchestrator) Stats() *Stats {
	return o.worker.stats
}
