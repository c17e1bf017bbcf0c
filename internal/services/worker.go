package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// BatchRequest is one unit of batch work: evaluate a single resume against a
// single job. Requests for the same (student, job) pair may run concurrently;
// each successful one appends its own history row.
type BatchRequest struct {
	StudentID  string
	JobID      string
	ResumeText string
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// Enqueue hands a request to the pool. Returns false once the worker is
	// stopped.
	Enqueue(req BatchRequest) bool
}

type worker struct {
	evaluator   EvaluatorService
	jobQueue    chan BatchRequest
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	logger      *zap.Logger
}

func NewWorker(evaluator EvaluatorService, concurrency int, logger *zap.Logger) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		evaluator:   evaluator,
		jobQueue:    make(chan BatchRequest, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting batch workers", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Blocks until in-flight evaluations finish.
func (w *worker) Stop() {
	w.logger.Info("stopping batch workers")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("batch workers stopped")
}

// Enqueue implements Worker.
func (w *worker) Enqueue(req BatchRequest) bool {
	select {
	case <-w.stopChan:
		w.logger.Warn("worker stopped, dropping batch request",
			zap.String("student_id", req.StudentID),
			zap.String("job_id", req.JobID),
		)
		return false
	default:
	}

	select {
	case w.jobQueue <- req:
		return true
	case <-w.stopChan:
		w.logger.Warn("worker stopped, dropping batch request",
			zap.String("student_id", req.StudentID),
			zap.String("job_id", req.JobID),
		)
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case req := <-w.jobQueue:
			if _, err := w.evaluator.Evaluate(ctx, req.StudentID, req.JobID, req.ResumeText); err != nil {
				w.logger.Error("batch evaluation failed",
					zap.Int("worker", workerID),
					zap.String("student_id", req.StudentID),
					zap.String("job_id", req.JobID),
					zap.Error(err),
				)
			}
		}
	}
}
