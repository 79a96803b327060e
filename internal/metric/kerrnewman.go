package metric

import (
	"math"

	"github.com/san-kum/horyzen/internal/geodesic"
)

// Geometry is a Kerr-Newman spacetime with mass M, spin a and charge Q.
type Geometry struct {
	M float64
	A float64
	Q float64
}

// Inverse holds the non-zero contravariant metric components. The metric
// depends only on r and θ.
type Inverse struct {
	TT, TPhi, RR, ThTh, PhPh float64
}

// Inverse evaluates g^{μν} at (r, θ).
func (g Geometry) Inverse(r, theta float64) Inverse {
	a2 := g.A * g.A
	sin, cos := math.Sincos(theta)
	sin2 := sin * sin
	sigma := r*r + a2*cos*cos
	delta := r*r - 2*g.M*r + a2 + g.Q*g.Q
	sd := sigma * delta
	ra := r*r + a2

	return Inverse{
		TT:   -(ra*ra - a2*delta*sin2) / sd,
		TPhi: -g.A * (2*g.M*r - g.Q*g.Q) / sd,
		RR:   delta / sigma,
		ThTh: 1 / sigma,
		PhPh: (delta - a2*sin2) / (sd * sin2),
	}
}

// Hamiltonian returns ½ g^{μν}(q) p_μ p_ν.
func (g Geometry) Hamiltonian(q, p []float64) float64 {
	inv := g.Inverse(q[1], q[2])
	return 0.5 * (inv.TT*p[0]*p[0] +
		2*inv.TPhi*p[0]*p[3] +
		inv.RR*p[1]*p[1] +
		inv.ThTh*p[2]*p[2] +
		inv.PhPh*p[3]*p[3])
}

// DHdp returns ∂H/∂p = g^{μν} p_ν evaluated at q.
func (g Geometry) DHdp(q, p []float64, out []float64) {
	inv := g.Inverse(q[1], q[2])
	out[0] = inv.TT*p[0] + inv.TPhi*p[3]
	out[1] = inv.RR * p[1]
	out[2] = inv.ThTh * p[2]
	out[3] = inv.TPhi*p[0] + inv.PhPh*p[3]
}

// DHdq returns ∂H/∂q by central differences in r and θ. The t and φ
// derivatives vanish: the background is stationary and axisymmetric.
func (g Geometry) DHdq(q, p []float64, out []float64) {
	out[0], out[3] = 0, 0
	var shifted [4]float64
	for _, i := range []int{1, 2} {
		h := 1e-6 * math.Max(1, math.Abs(q[i]))
		copy(shifted[:], q)
		shifted[i] = q[i] + h
		hi := g.Hamiltonian(shifted[:], p)
		shifted[i] = q[i] - h
		lo := g.Hamiltonian(shifted[:], p)
		out[i] = (hi - lo) / (2 * h)
	}
}

// Derive returns Hamilton's equations for the packed state (q0..q3, p0..p3).
func (g Geometry) Derive(x geodesic.State) geodesic.State {
	d := make(geodesic.State, 8)
	g.DHdp(x[:4], x[4:], d[:4])
	g.DHdq(x[:4], x[4:], d[4:])
	for i := 4; i < 8; i++ {
		d[i] = -d[i]
	}
	return d
}

// Horizon returns the outer event horizon radius, or NaN for a naked
// singularity.
func (g Geometry) Horizon() float64 {
	disc := g.M*g.M - g.A*g.A - g.Q*g.Q
	if disc < 0 {
		return math.NaN()
	}
	return g.M + math.Sqrt(disc)
}
