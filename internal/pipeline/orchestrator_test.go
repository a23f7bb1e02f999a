package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		WorkerCount:         2,
		MaxQueueSize:        4,
		JobTTL:              time.Hour,
		HeaderMarginPercent: 10,
		FooterMarginPercent: 10,
		MaxWordCount:        20,
		MinWordCount:        1,
		SizeMultiplier:      1.15,
		SignalSize:          true,
		SignalBold:          true,
		SignalNumbering:     true,
		SignalAllCaps:       true,
		CenterTolerance:     20,
	}
}

func waitForStatus(t *testing.T, job *Job, want JobStatus) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if job.Snapshot().Status == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s: expected status %q, got %q", job.ID, want, job.Snapshot().Status)
}

func TestNewOutliner_FromConfig(t *testing.T) {
	if _, err := NewOutliner(testConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testConfig()
	cfg.MinWordCount = 30
	if _, err := NewOutliner(cfg); err == nil {
		t.Fatal("expected error when MinWordCount exceeds MaxWordCount")
	}
}

func TestOrchestrator_SubmitAndGet(t *testing.T) {
	orch := NewOrchestrator(testConfig(), fakeWorker(nil, 0), discardLogger())
	orch.Start(context.Background())
	defer orch.Stop()

	job := NewJob("a.pdf")
	job.SetFileData([]byte("Scope"))
	if err := orch.Submit(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if orch.GetJob(job.ID) != job {
		t.Fatal("expected job to be retrievable by ID")
	}
	waitForStatus(t, job, StatusCompleted)
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	// Not started, so nothing drains the queue.
	orch := NewOrchestrator(cfg, fakeWorker(nil, 0), discardLogger())

	first := NewJob("a.pdf")
	if err := orch.Submit(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := NewJob("b.pdf")
	if err := orch.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to be failed, got %q", second.Snapshot().Status)
	}
	if orch.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", orch.QueueDepth())
	}
}
