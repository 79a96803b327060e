package sim

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/san-kum/horyzen/internal/geodesic"
)

// Scheduler runs independent simulation jobs on a bounded pool of
// goroutines and returns their trajectories in job order. At most Workers
// integrations run at once, whether they come from Run or Submit.
type Scheduler struct {
	integ   geodesic.Integrator
	workers int
	slots   chan struct{}
	logger  *slog.Logger
}

// New returns a Scheduler. workers <= 0 selects runtime.GOMAXPROCS(0).
func New(integ geodesic.Integrator, workers int, logger *slog.Logger) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		integ:   integ,
		workers: workers,
		slots:   make(chan struct{}, workers),
		logger:  logger,
	}
}

func (s *Scheduler) Workers() int {
	return s.workers
}

// Run executes every job and returns result[i] for jobs[i]. The first
// failure cancels the remaining jobs and no partial results are returned.
func (s *Scheduler) Run(ctx context.Context, jobs []geodesic.Job) ([]geodesic.Trajectory, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	rctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	futures := make([]*Future, 0, len(jobs))
	for i := range jobs {
		if rctx.Err() != nil {
			break
		}
		futures = append(futures, s.submit(rctx, i, jobs[i], cancel))
	}

	results := make([]geodesic.Trajectory, len(jobs))
	for i, f := range futures {
		results[i], _ = f.Wait()
	}

	if err := context.Cause(rctx); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Scheduler) runOne(ctx context.Context, idx int, job geodesic.Job) (geodesic.Trajectory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.logger.With("job", idx, "config", job.SourcePath)
	log.Debug("simulation started", "background", job.Background.Name, "steps", job.NumSteps)
	start := time.Now()

	traj, err := s.integ.Integrate(ctx, job)
	if err != nil {
		log.Error("simulation failed", "err", err)
		return nil, &geodesic.SimulationError{Index: idx, SourcePath: job.SourcePath, Err: err}
	}
	if len(traj) != job.NumSteps {
		err := fmt.Errorf("%w: want %d, got %d", geodesic.ErrStepCount, job.NumSteps, len(traj))
		log.Error("simulation failed", "err", err)
		return nil, &geodesic.SimulationError{Index: idx, SourcePath: job.SourcePath, Err: err}
	}

	log.Info("simulation finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return traj, nil
}
