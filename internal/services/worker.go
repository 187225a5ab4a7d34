package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"interview-prep-agent/internal/models"
)

// Runner is the part of PipelineRunner the worker needs.
type Runner interface {
	Run(ctx context.Context, rec *models.WorkflowRecord) models.RunState
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueRun(runID uuid.UUID)
}

type worker struct {
	runs        *RunStore
	runner      Runner
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(runs *RunStore, runner Runner, concurrency int) Worker {
	return &worker{
		runs:        runs,
		runner:      runner,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueRun implements Worker.
func (w *worker) EnqueueRun(runID uuid.UUID) {
	select {
	case w.jobQueue <- runID:
		log.Printf("📥 Run %s enqueued\n", runID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue run %s\n", runID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case runID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing run %s\n", workerID, runID)
			w.process(ctx, runID)
		}
	}
}

func (w *worker) process(ctx context.Context, runID uuid.UUID) {
	run, err := w.runs.FindByID(runID)
	if err != nil {
		log.Printf("⚠️  Run %s vanished before processing: %v\n", runID, err)
		return
	}

	if err := w.runs.UpdateStatus(runID, models.StatusProcessing); err != nil {
		log.Printf("⚠️  Failed to mark run %s processing: %v\n", runID, err)
		return
	}

	state := w.runner.Run(ctx, run.Record)
	if state == models.StateDone {
		if err := w.runs.Complete(runID); err != nil {
			log.Printf("⚠️  Failed to complete run %s: %v\n", runID, err)
		}
		log.Printf("✅ Run %s completed\n", runID)
		return
	}

	if err := w.runs.Fail(runID, run.Record.Error); err != nil {
		log.Printf("⚠️  Failed to record failure of run %s: %v\n", runID, err)
	}
	log.Printf("❌ Run %s failed: %s\n", runID, run.Record.Error)
}
