package stream

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLimitedBoundsConcurrency(t *testing.T) {
	const limit = 2
	const jobCount = 5

	var running, peak int32
	var mu sync.Mutex

	jobs := make([]Job, jobCount)
	for i := 0; i < jobCount; i++ {
		jobs[i] = func(ctx context.Context) error {
			now := atomic.AddInt32(&running, 1)
			mu.Lock()
			if now > peak {
				peak = now
			}
			mu.Unlock()
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		}
	}

	errs := RunLimited(context.Background(), limit, jobs)

	require.Len(t, errs, jobCount)
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, peak, int32(limit), "more than limit jobs observed running at once")
}

func TestRunLimitedFreeSlotPicksUpNextJob(t *testing.T) {
	// One slow job must not hold back the rest when a second slot is free.
	var order []int
	var mu sync.Mutex
	record := func(i int) {
		mu.Lock()
		order = append(order, i)
		mu.Unlock()
	}

	jobs := []Job{
		func(ctx context.Context) error {
			time.Sleep(80 * time.Millisecond)
			record(0)
			return nil
		},
		func(ctx context.Context) error { record(1); return nil },
		func(ctx context.Context) error { record(2); return nil },
	}

	errs := RunLimited(context.Background(), 2, jobs)

	require.Len(t, errs, 3)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, order[len(order)-1], "slow job should finish last, not block the queue")
}

func TestRunLimitedErrorIsolation(t *testing.T) {
	boom := errors.New("boom")
	jobs := []Job{
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return nil },
	}

	errs := RunLimited(context.Background(), 1, jobs)

	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[0], boom)
	assert.NoError(t, errs[1])
	assert.NoError(t, errs[2])
}

func TestRunLimitedRecoverPanic(t *testing.T) {
	jobs := []Job{
		func(ctx context.Context) error { panic("job exploded") },
		func(ctx context.Context) error { return nil },
	}

	errs := RunLimited(context.Background(), 1, jobs)

	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], "job exploded")
	assert.NoError(t, errs[1])
}

func TestRunLimitedEmptyJobs(t *testing.T) {
	assert.Nil(t, RunLimited(context.Background(), 3, nil))
}

func TestRunLimitedZeroLimitClampsToOne(t *testing.T) {
	done := false
	errs := RunLimited(context.Background(), 0, []Job{
		func(ctx context.Context) error { done = true; return nil },
	})

	require.Len(t, errs, 1)
	assert.NoError(t, errs[0])
	assert.True(t, done)
}
