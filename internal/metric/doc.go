// Package metric provides the enumerated spacetime backgrounds geodesics are
// integrated against.
//
// Every background is a special case of Kerr-Newman in Boyer-Lindquist
// coordinates (G = c = 1):
//
//   - schwarzschild: M
//   - kerr: M, J
//   - kerr-newman: M, J, Q
//
// The spin parameter of the geometry is a = J/M, which is the same ratio the
// Cartesian transform uses, so plotted trajectories and the metric agree.
//
// A [Geometry] exposes the Hamiltonian H = ½ g^{μν} p_μ p_ν and its
// gradients, which is all a symplectic integrator needs.
package metric
