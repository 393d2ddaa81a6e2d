package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lecture-companion/internal/logger"
)

// Job is a unit of batch work, such as importing one video transcript.
type Job struct {
	ID  string
	Run func(ctx context.Context) error
}

// Result records how a job finished.
type Result struct {
	ID       string
	Attempts int
	Err      error
}

type Pool struct {
	workerCount int
	maxAttempts int
	backoff     func(attempt int) time.Duration
	log         *logger.Logger
}

func NewPool(workerCount int, log *logger.Logger) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Pool{
		workerCount: workerCount,
		maxAttempts: 3,
		backoff:     exponentialBackoff,
		log:         log,
	}
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// Run executes jobs on at most workerCount goroutines and returns results
// in the order the jobs were given. Failed jobs are retried with backoff
// until maxAttempts is reached or ctx is done.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	queue := make(chan int)

	var wg sync.WaitGroup
	n := p.workerCount
	if n > len(jobs) {
		n = len(jobs)
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go p.worker(ctx, i, jobs, queue, results, &wg)
	}
	p.log.Debug("Started worker goroutines", "workers", n, "jobs", len(jobs))

	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()
	return results
}

func (p *Pool) worker(ctx context.Context, id int, jobs []Job, queue <-chan int, results []Result, wg *sync.WaitGroup) {
	defer wg.Done()
	for idx := range queue {
		job := jobs[idx]
		results[idx] = p.process(ctx, id, job)
	}
}

func (p *Pool) process(ctx context.Context, workerID int, job Job) Result {
	res := Result{ID: job.ID}
	for {
		if err := ctx.Err(); err != nil {
			if res.Err == nil {
				res.Err = err
			}
			return res
		}

		res.Attempts++
		p.log.Debug("Processing job", "worker", workerID, "job_id", job.ID, "attempt", res.Attempts)
		err := job.Run(ctx)
		if err == nil {
			res.Err = nil
			return res
		}
		res.Err = err

		if res.Attempts >= p.maxAttempts {
			p.log.Warn("Job failed permanently", "job_id", job.ID, "attempts", res.Attempts, "error", err)
			res.Err = fmt.Errorf("after %d attempts: %w", res.Attempts, err)
			return res
		}

		wait := p.backoff(res.Attempts)
		p.log.Info("Job failed, retrying", "job_id", job.ID, "attempt", res.Attempts, "backoff", wait, "error", err)
		select {
		case <-ctx.Done():
			return res
		case <-time.After(wait):
		}
	}
}
