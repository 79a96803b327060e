package integrators

import (
	"context"

	"github.com/san-kum/horyzen/internal/geodesic"
)

// RK4 integrates Hamilton's equations with the classical fourth-order
// Runge-Kutta method. It is not symplectic and ignores the job's order and
// omega; it exists to compare drift against Fantasy.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Integrate(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
	g, err := geometryFor(job)
	if err != nil {
		return nil, err
	}

	z := make(geodesic.State, 8)
	copy(z[0:4], job.Particle.Position[:])
	copy(z[4:8], job.Particle.Momentum[:])

	st := &rk4Stepper{sys: g}
	return drive(ctx, job, z, st.step)
}

type rk4Stepper struct {
	sys            System
	k1, k2, k3, k4 geodesic.State
	scratch        geodesic.State
}

func (r *rk4Stepper) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(geodesic.State, n)
		r.k2 = make(geodesic.State, n)
		r.k3 = make(geodesic.State, n)
		r.k4 = make(geodesic.State, n)
		r.scratch = make(geodesic.State, n)
	}
}

func (r *rk4Stepper) step(x geodesic.State, dt float64) {
	copy(x, r.Step(r.sys, x, dt))
}

// Step returns x advanced by dt.
func (r *rk4Stepper) Step(sys System, x geodesic.State, dt float64) geodesic.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch))

	result := make(geodesic.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
