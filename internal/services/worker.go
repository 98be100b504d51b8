package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Job is one queued processing task. Done is closed exactly once when the
// document reaches a terminal state, so callers can await completion
// instead of polling.
type Job struct {
	ResumeID uuid.UUID
	FilePath string

	done chan struct{}
}

func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Worker is a bounded pool draining the processing queue. The bound keeps a
// burst of uploads (or a set of slow model calls) from spawning unbounded
// concurrent pipelines.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(resumeID uuid.UUID, filePath string) *Job
}

type worker struct {
	pipeline    *Pipeline
	jobQueue    chan *Job
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	log         *zap.Logger
}

func NewWorker(pipeline *Pipeline, concurrency, queueSize int, log *zap.Logger) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &worker{
		pipeline:    pipeline,
		jobQueue:    make(chan *Job, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		log:         log,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting worker pool", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs still sitting in the queue are dropped and
// their done channels closed so awaiting callers never hang; the records
// stay at their pre-processing status for the operator to re-submit.
func (w *worker) Stop() {
	w.log.Info("stopping worker pool")
	close(w.stopChan)
	w.wg.Wait()

	for {
		select {
		case job := <-w.jobQueue:
			w.log.Warn("dropping queued job", zap.String("resume_id", job.ResumeID.String()))
			close(job.done)
		default:
			return
		}
	}
}

// Enqueue implements Worker. The returned job's Done channel closes when
// processing finishes; if the pool is already stopped the job is dropped
// and Done closes immediately.
func (w *worker) Enqueue(resumeID uuid.UUID, filePath string) *Job {
	job := &Job{
		ResumeID: resumeID,
		FilePath: filePath,
		done:     make(chan struct{}),
	}

	select {
	case <-w.stopChan:
		w.log.Warn("worker stopped, dropping job", zap.String("resume_id", resumeID.String()))
		close(job.done)
		return job
	default:
	}

	select {
	case w.jobQueue <- job:
		w.log.Debug("job enqueued", zap.String("resume_id", resumeID.String()))
	case <-w.stopChan:
		w.log.Warn("worker stopped, dropping job", zap.String("resume_id", resumeID.String()))
		close(job.done)
	}

	return job
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		// prefer stopping over picking up more work
		select {
		case <-w.stopChan:
			w.log.Debug("worker exiting", zap.Int("worker_id", workerID))
			return
		default:
		}

		select {
		case <-w.stopChan:
			w.log.Debug("worker exiting", zap.Int("worker_id", workerID))
			return
		case job := <-w.jobQueue:
			if err := w.pipeline.Process(ctx, job.ResumeID, job.FilePath); err != nil {
				w.log.Warn("job finished with failure",
					zap.Int("worker_id", workerID),
					zap.String("resume_id", job.ResumeID.String()),
					zap.Error(err))
			}
			close(job.done)
		}
	}
}
