package dataset

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TaskGroup abstracts "run this unit of work" over a serial or pooled
// execution strategy, tracking the first failure. Append submits a unit
// of work and never blocks; Finish blocks until every submitted unit has
// finished, or returns the first failure observed. After the first
// failure, not-yet-started work is skipped on a best-effort basis.
type TaskGroup interface {
	Append(task func() error)
	Finish() error
}

// serialTaskGroup runs units of work synchronously on the calling
// thread, in submission order. Submitting and running to completion are
// the same event; once a unit fails, subsequent units are not run.
type serialTaskGroup struct {
	firstErr error
}

// CreateSerialTaskGroup produces a TaskGroup which runs units of work immediately on the calling goroutine
func CreateSerialTaskGroup() TaskGroup {
	return &serialTaskGroup{}
}

func (stg *serialTaskGroup) Append(task func() error) {
	if stg.firstErr != nil {
		return
	}
	stg.firstErr = task()
}

func (stg *serialTaskGroup) Finish() error {
	return stg.firstErr
}

// threadedTaskGroup dispatches units of work to goroutines capped by a
// weighted semaphore. The semaphore is acquired inside the worker
// goroutine so that Append never blocks the submitting goroutine.
type threadedTaskGroup struct {
	group *errgroup.Group
	ctx   context.Context
	pool  *semaphore.Weighted
}

// CreateThreadedTaskGroup produces a TaskGroup which dispatches units of work to a pool of at most workers goroutines
func CreateThreadedTaskGroup(workers int) TaskGroup {
	group, ctx := errgroup.WithContext(context.Background())
	return &threadedTaskGroup{
		group: group,
		ctx:   ctx,
		pool:  semaphore.NewWeighted(int64(workers)),
	}
}

func (ttg *threadedTaskGroup) Append(task func() error) {
	ttg.group.Go(func() error {
		// the group context is cancelled by the first failure, so
		// queued work which has not yet acquired a worker slot is
		// skipped rather than run
		if err := ttg.pool.Acquire(ttg.ctx, 1); err != nil {
			return nil
		}
		defer ttg.pool.Release(1)
		return task()
	})
}

func (ttg *threadedTaskGroup) Finish() error {
	return ttg.group.Wait()
}
