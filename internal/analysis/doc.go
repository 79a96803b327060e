// Package analysis summarizes stored trajectories.
//
// [Summarize] reports periapsis, apoapsis and eccentricity of the radial
// coordinate, and the period of the dominant radial oscillation found by
// [DominantFrequency]:
//
//	s := analysis.Summarize(radius, meta.TimeStep)
//	if s.RadialPeriod > 0 {
//	    // bound, precessing orbit
//	}
package analysis
