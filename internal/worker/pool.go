package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrQueueFull is returned by Submit when the job queue has no room left.
	ErrQueueFull = errors.New("job queue full")
	// ErrStopped is returned by Submit once the dispatcher has been stopped.
	ErrStopped = errors.New("dispatcher stopped")
)

// Job represents a unit of work to be executed in the background.
type Job interface {
	Execute(ctx context.Context) error // The method that performs the actual work
	ID() string                        // A unique identifier for the job
}

// Worker pulls jobs from the shared queue until it is closed.
type Worker struct {
	ID      int
	jobs    <-chan Job
	timeout time.Duration
	logger  *logrus.Logger
	wg      *sync.WaitGroup
}

// NewWorker creates a new Worker.
func NewWorker(id int, jobs <-chan Job, timeout time.Duration, logger *logrus.Logger, wg *sync.WaitGroup) Worker {
	return Worker{
		ID:      id,
		jobs:    jobs,
		timeout: timeout,
		logger:  logger,
		wg:      wg,
	}
}

// Start makes the Worker listen for jobs.
func (w Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for job := range w.jobs {
			w.run(job)
		}
		w.logger.Debugf("Worker %d: Stopping", w.ID)
	}()
}

func (w Worker) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	entry := w.logger.WithFields(logrus.Fields{"worker": w.ID, "job_id": job.ID()})
	entry.Debug("Started job")
	if err := job.Execute(ctx); err != nil {
		// No retry: a failed job is logged and dropped.
		entry.WithError(err).Error("Error processing job")
		return
	}
	entry.Debug("Finished job")
}

// Dispatcher manages a pool of workers fed from a buffered queue.
type Dispatcher struct {
	MaxWorkers int
	JobTimeout time.Duration
	JobQueue   chan Job

	logger  *logrus.Logger
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(maxWorkers, jobQueueSize int, logger *logrus.Logger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if jobQueueSize < 0 {
		jobQueueSize = 0
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		JobTimeout: 30 * time.Second,
		JobQueue:   make(chan Job, jobQueueSize),
		logger:     logger,
	}
}

// Run starts the workers.
func (d *Dispatcher) Run() {
	d.logger.Infof("Dispatcher starting with %d workers...", d.MaxWorkers)
	for i := 1; i <= d.MaxWorkers; i++ {
		NewWorker(i, d.JobQueue, d.JobTimeout, d.logger, &d.wg).Start()
	}
}

// Submit enqueues job without blocking.
func (d *Dispatcher) Submit(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}
	select {
	case d.JobQueue <- job:
		d.logger.Debugf("Dispatcher: Job %s submitted to queue.", job.ID())
		return nil
	default:
		d.logger.Warnf("Dispatcher: Job queue full. Job %s could not be submitted.", job.ID())
		return ErrQueueFull
	}
}

// Stop closes the queue, lets the workers drain what is already queued and waits for them.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.JobQueue)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("Dispatcher: Shutdown complete.")
}
