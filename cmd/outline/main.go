// Command outline extracts a heading outline from every PDF in INPUT_DIR
// and writes one JSON file per document to OUTPUT_DIR.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/dgallion1/docoutline/internal/store"
)

func main() {
	os.Exit(run(slog.New(slog.NewJSONHandler(os.Stdout, nil))))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(log *slog.Logger) int {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	outliner, err := pipeline.NewOutliner(cfg)
	if err != nil {
		log.Error("invalid heuristics", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := pipeline.NewStats(24 * time.Hour)
	worker := pipeline.NewWorker(outliner, log, stats, cfg.DocumentTimeout)
	worker.SetParseLimit(cfg.WorkerCount)
	if cfg.CachePath != "" {
		cache, err := store.Open(cfg.CachePath)
		if err != nil {
			log.Error("open outline cache", "path", cfg.CachePath, "error", err)
			return 1
		}
		defer cache.Close()
		worker.SetCache(cache, pipeline.CacheNamespace(cfg))
	}

	start := time.Now()
	summary, err := pipeline.RunBatch(ctx, worker, cfg.InputDir, cfg.OutputDir, cfg.WorkerCount, log)
	if err != nil {
		log.Error("batch failed", "error", err)
		return 1
	}

	snap := stats.Snapshot()
	log.Info("batch complete",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
		"p95_ms", snap.P95Ms,
	)
	return 0
}
