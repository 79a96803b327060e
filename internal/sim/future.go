package sim

import (
	"context"

	"github.com/san-kum/horyzen/internal/geodesic"
)

// Future is the pending result of one submitted job.
type Future struct {
	done chan struct{}
	traj geodesic.Trajectory
	err  error
}

// Submit schedules job, reported under index idx, on the worker pool. It
// blocks while every worker is busy. If ctx ends first the future resolves
// with ctx's error and the job never starts.
func (s *Scheduler) Submit(ctx context.Context, idx int, job geodesic.Job) *Future {
	return s.submit(ctx, idx, job, nil)
}

// submit calls fail with the job's error before its worker slot is
// released, so a waiting submission sees the cancellation.
func (s *Scheduler) submit(ctx context.Context, idx int, job geodesic.Job, fail context.CancelCauseFunc) *Future {
	f := &Future{done: make(chan struct{})}

	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		f.err = ctx.Err()
		close(f.done)
		return f
	}

	go func() {
		defer close(f.done)
		defer func() { <-s.slots }()
		f.traj, f.err = s.runOne(ctx, idx, job)
		if f.err != nil && fail != nil {
			fail(f.err)
		}
	}()
	return f
}

// Wait blocks until the job completes.
func (f *Future) Wait() (geodesic.Trajectory, error) {
	<-f.done
	return f.traj, f.err
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}
