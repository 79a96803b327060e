package geodesic

import (
	"context"
	"math"
)

// Layout selects how a trajectory is persisted.
type Layout int

const (
	// LayoutHDF5 writes one results.h5 with a dataset per column.
	LayoutHDF5 Layout = iota
	// LayoutText writes one plain-text file per column plus a raw .npy dump.
	LayoutText
)

func (l Layout) String() string {
	if l == LayoutText {
		return "text"
	}
	return "hdf5"
}

// Background is a named spacetime background with its ordered parameters
// (mass, angular momentum, charge, ...).
type Background struct {
	Name   string
	Params []float64
}

// Particle holds the initial 4-position and covariant 4-momentum.
type Particle struct {
	Position [4]float64
	Momentum [4]float64
}

// Job describes one simulation. Jobs are values: nothing downstream of the
// builder mutates them.
type Job struct {
	NumSteps   int
	TimeStep   float64
	Order      int
	Omega      float64
	Particle   Particle
	Background Background
	OutputDir  string
	SourcePath string
	Layout     Layout
	Integrator string
}

// Params returns a copy of the background parameters so integrators cannot
// alias the job's slice.
func (j Job) Params() []float64 {
	p := make([]float64, len(j.Background.Params))
	copy(p, j.Background.Params)
	return p
}

// Sample is one integration step in the background's native chart.
type Sample struct {
	T, R, Theta, Phi float64
}

// Trajectory is the raw integrator output, one sample per step.
type Trajectory []Sample

// Column extracts a single coordinate column (0=t, 1=r, 2=θ, 3=φ).
func (t Trajectory) Column(idx int) []float64 {
	col := make([]float64, len(t))
	for i, s := range t {
		switch idx {
		case 0:
			col[i] = s.T
		case 1:
			col[i] = s.R
		case 2:
			col[i] = s.Theta
		default:
			col[i] = s.Phi
		}
	}
	return col
}

// Point is a Cartesian position.
type Point struct {
	X, Y, Z float64
}

// Cartesian is a trajectory transformed to Cartesian coordinates.
type Cartesian []Point

// Axes splits the trajectory into x, y and z columns.
func (c Cartesian) Axes() (xs, ys, zs []float64) {
	xs = make([]float64, len(c))
	ys = make([]float64, len(c))
	zs = make([]float64, len(c))
	for i, p := range c {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}

// State is a flat phase-space vector used by the integrators.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Integrator computes the full trajectory for a job. Implementations must
// not share mutable state between calls; the scheduler calls Integrate
// concurrently from several workers.
type Integrator interface {
	Integrate(ctx context.Context, job Job) (Trajectory, error)
}

// IntegratorFunc adapts a function to the Integrator interface.
type IntegratorFunc func(ctx context.Context, job Job) (Trajectory, error)

func (f IntegratorFunc) Integrate(ctx context.Context, job Job) (Trajectory, error) {
	return f(ctx, job)
}
