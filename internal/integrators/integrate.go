package integrators

import (
	"context"
	"fmt"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/metric"
)

// System is a first-order autonomous system dx/dτ = f(x).
type System interface {
	Derive(x geodesic.State) geodesic.State
}

// stepper advances a packed state in place by one affine-parameter step.
type stepper func(z geodesic.State, dt float64)

const cancelCheckEvery = 256

// geometryFor resolves the job's background into a Kerr-Newman geometry.
func geometryFor(job geodesic.Job) (metric.Geometry, error) {
	bg, err := metric.Lookup(job.Background.Name)
	if err != nil {
		return metric.Geometry{}, err
	}
	return bg.Geometry(job.Params())
}

// drive runs step NumSteps-1 times from z, recording the first four
// components as (t, r, θ, φ). The initial position is the first sample.
func drive(ctx context.Context, job geodesic.Job, z geodesic.State, step stepper) (geodesic.Trajectory, error) {
	if job.NumSteps <= 0 {
		return nil, fmt.Errorf("num_steps must be positive, got %d", job.NumSteps)
	}

	traj := make(geodesic.Trajectory, 0, job.NumSteps)
	traj = append(traj, sampleOf(z))

	for i := 1; i < job.NumSteps; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		step(z, job.TimeStep)

		if !z.IsValid() {
			return nil, fmt.Errorf("step %d (t=%.4f): %w", i, traj[len(traj)-1].T, geodesic.ErrUnstable)
		}
		traj = append(traj, sampleOf(z))
	}

	return traj, nil
}

func sampleOf(z geodesic.State) geodesic.Sample {
	return geodesic.Sample{T: z[0], R: z[1], Theta: z[2], Phi: z[3]}
}
