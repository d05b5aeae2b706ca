package workers

import (
	"context"
	"log/slog"
	"sync"

	"east/internal/lib/logger/sl"
)

// WorkerPool fans jobs out over a fixed number of goroutines. The job
// queue is unbuffered, so AddJob blocks until a worker started by Run
// takes the job: enqueue with AddJob while Run is running, call Close
// once everything is queued, and read Results (or wait on Done) until
// the workers drain the queue.
type WorkerPool struct {
	log          *slog.Logger
	workersCount int
	jobs         chan Job
	results      chan Result
	Done         chan struct{}
}

func New(log *slog.Logger, numWorkers int) *WorkerPool {
	return &WorkerPool{
		log:          log,
		workersCount: numWorkers,
		jobs:         make(chan Job),
		results:      make(chan Result, numWorkers),
		Done:         make(chan struct{}),
	}
}

func (wp *WorkerPool) AddJob(job Job) {
	wp.jobs <- job
}

// Close signals that no more jobs will be queued.
func (wp *WorkerPool) Close() {
	close(wp.jobs)
}

// Results delivers one Result per executed job.
func (wp *WorkerPool) Results() <-chan Result {
	return wp.results
}

// Run blocks until every queued job has been executed or ctx is
// cancelled, then closes Done and the results channel.
func (wp *WorkerPool) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < wp.workersCount; i++ {
		wg.Add(1)
		go worker(ctx, &wg, wp)
	}

	wg.Wait()
	close(wp.results)
	close(wp.Done)
}

func worker(ctx context.Context, wg *sync.WaitGroup, wp *WorkerPool) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-wp.jobs:
			if !ok {
				return
			}
			result := job.execute(ctx)
			if result.Err != nil {
				wp.log.Error("Job failed", "job", string(job.Description.ID), "error", sl.Err(result.Err))
			}
			select {
			case wp.results <- result:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			wp.log.Debug("Worker cancelled", "error", sl.Err(ctx.Err()))
			return
		}
	}
}
