package stream

import (
	"context"
	"fmt"
	"sync"
)

// Job is one unit of generation work scheduled by the limiter.
type Job func(ctx context.Context) error

// RunLimited executes the given jobs with at most limit running concurrently.
// It behaves like a worker pool: a free slot always picks up the next pending
// job, completion order is unspecified, and one job failing does not cancel or
// block its siblings. The returned slice holds the per-job results indexed the
// same as jobs; it is nil for an empty job list.
func RunLimited(ctx context.Context, limit int, jobs []Job) []error {
	if len(jobs) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}
	if limit > len(jobs) {
		limit = len(jobs)
	}

	errs := make([]error, len(jobs))
	next := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				errs[i] = runJob(ctx, jobs[i])
			}
		}()
	}

	for i := range jobs {
		next <- i
	}
	close(next)
	wg.Wait()

	return errs
}

func runJob(ctx context.Context, job Job) (err error) {
	// A panicking job must not take the worker (and its siblings) down with it.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation job panicked: %v", r)
		}
	}()
	return job(ctx)
}
