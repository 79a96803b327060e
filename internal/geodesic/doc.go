// Package geodesic provides the core types shared by the batch runner and
// the replay viewer.
//
// A simulation is described by a [Job], integrated by an [Integrator] into
// a [Trajectory] of Boyer-Lindquist samples, and converted to a [Cartesian]
// point sequence for plotting and replay:
//
//   - [Job]: immutable descriptor built from one configuration document
//   - [Integrator]: black-box geodesic integrator
//   - [Trajectory]: ordered (t, r, θ, φ) samples, one per step
//   - [ToCartesian]: Boyer-Lindquist to Cartesian transform
//
// # Errors
//
// Failures are reported through four typed errors: [ConfigurationError],
// [DivisionError], [SimulationError] and [DimensionMismatchError]. Each wraps
// one of the package sentinels so callers can use errors.Is.
package geodesic
