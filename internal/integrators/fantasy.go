package integrators

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/metric"
)

// Fantasy integrates geodesics with Tao's explicit symplectic scheme for
// non-separable Hamiltonians. Phase space is doubled to (q, p, x, y); the
// copies are bound together by a rotation with coupling Omega.
//
// The base method is second order. Higher even orders are built by Yoshida
// triple-jump composition.
type Fantasy struct{}

func NewFantasy() *Fantasy {
	return &Fantasy{}
}

func (f *Fantasy) Integrate(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
	if job.Order < 2 || job.Order%2 != 0 {
		return nil, fmt.Errorf("integration order must be a positive even number, got %d", job.Order)
	}
	g, err := geometryFor(job)
	if err != nil {
		return nil, err
	}

	// z = q | p | x | y
	z := make(geodesic.State, 16)
	copy(z[0:4], job.Particle.Position[:])
	copy(z[4:8], job.Particle.Momentum[:])
	copy(z[8:12], job.Particle.Position[:])
	copy(z[12:16], job.Particle.Momentum[:])

	fs := &fantasyStepper{g: g, omega: job.Omega, order: job.Order}
	return drive(ctx, job, z, fs.step)
}

type fantasyStepper struct {
	g     metric.Geometry
	omega float64
	order int
	grad  [4]float64
}

func (s *fantasyStepper) step(z geodesic.State, dt float64) {
	s.compose(z, s.order, dt)
}

func (s *fantasyStepper) compose(z geodesic.State, order int, dt float64) {
	if order <= 2 {
		s.second(z, dt)
		return
	}
	k := math.Pow(2, 1/float64(order-1))
	outer := 1 / (2 - k)
	inner := -k / (2 - k)
	s.compose(z, order-2, outer*dt)
	s.compose(z, order-2, inner*dt)
	s.compose(z, order-2, outer*dt)
}

func (s *fantasyStepper) second(z geodesic.State, dt float64) {
	s.flowA(z, dt/2)
	s.flowB(z, dt/2)
	s.flowC(z, dt)
	s.flowB(z, dt/2)
	s.flowA(z, dt/2)
}

// flowA evolves H(q, y): p and x move.
func (s *fantasyStepper) flowA(z geodesic.State, dt float64) {
	q, p, x, y := z[0:4], z[4:8], z[8:12], z[12:16]
	s.g.DHdq(q, y, s.grad[:])
	for i := range 4 {
		p[i] -= dt * s.grad[i]
	}
	s.g.DHdp(q, y, s.grad[:])
	for i := range 4 {
		x[i] += dt * s.grad[i]
	}
}

// flowB evolves H(x, p): q and y move.
func (s *fantasyStepper) flowB(z geodesic.State, dt float64) {
	q, p, x, y := z[0:4], z[4:8], z[8:12], z[12:16]
	s.g.DHdp(x, p, s.grad[:])
	for i := range 4 {
		q[i] += dt * s.grad[i]
	}
	s.g.DHdq(x, p, s.grad[:])
	for i := range 4 {
		y[i] -= dt * s.grad[i]
	}
}

// flowC is the exact flow of the coupling term ω/2 (|q-x|² + |p-y|²).
func (s *fantasyStepper) flowC(z geodesic.State, dt float64) {
	q, p, x, y := z[0:4], z[4:8], z[8:12], z[12:16]
	sin, cos := math.Sincos(2 * s.omega * dt)
	for i := range 4 {
		sq, dq := q[i]+x[i], q[i]-x[i]
		sp, dp := p[i]+y[i], p[i]-y[i]
		q[i] = 0.5 * (sq + cos*dq + sin*dp)
		p[i] = 0.5 * (sp - sin*dq + cos*dp)
		x[i] = 0.5 * (sq - cos*dq - sin*dp)
		y[i] = 0.5 * (sp + sin*dq - cos*dp)
	}
}
