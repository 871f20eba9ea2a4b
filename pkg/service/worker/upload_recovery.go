package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/timeshift/pkg/utils/logging"
)

// UploadResumer restarts watchers of uploads whose result was never recorded
type UploadResumer interface {
	ResumeUploads(ctx context.Context) (int, error)
}

// UploadRecoveryWorker periodically picks up uploads left in uploading state,
// e.g. by a process that was killed while polling.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - A run is only picked after the longest possible watch has elapsed
type UploadRecoveryWorker struct {
	resumer  UploadResumer
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewUploadRecoveryWorker(resumer UploadResumer, interval time.Duration) *UploadRecoveryWorker {
	return &UploadRecoveryWorker{
		resumer:  resumer,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the recovery loop in a background goroutine. It does not
// block server startup.
func (w *UploadRecoveryWorker) Start(ctx context.Context) error {
	logging.Default().Info("upload recovery worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *UploadRecoveryWorker) Stop() {
	logging.Default().Info("upload recovery worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("upload recovery worker stopped")
}

func (w *UploadRecoveryWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.resume(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.resume(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("upload recovery worker context cancelled")
			return
		}
	}
}

func (w *UploadRecoveryWorker) resume(ctx context.Context) {
	resumed, err := w.resumer.ResumeUploads(ctx)
	if err != nil {
		// retried on the next tick
		logging.Default().Error("upload recovery failed", "error", err.Error())
		return
	}
	if resumed > 0 {
		logging.Default().Info("resumed stalled uploads", "count", resumed)
	}
}
