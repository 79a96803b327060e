package geodesic

import "math"

// SpinRatio returns a = params[1]/params[0]. A background with a single
// parameter has no spin and yields 0.
func SpinRatio(bg Background) (float64, error) {
	if len(bg.Params) == 0 || bg.Params[0] == 0 {
		return 0, ErrDegenerateParams
	}
	if len(bg.Params) < 2 {
		return 0, nil
	}
	return bg.Params[1] / bg.Params[0], nil
}

// ToCartesian maps Boyer-Lindquist samples to Cartesian points using the
// spin ratio a. For a = 0 this is the ordinary spherical transform.
func ToCartesian(traj Trajectory, a float64) Cartesian {
	out := make(Cartesian, len(traj))
	a2 := a * a
	for i, s := range traj {
		rho := math.Sqrt(s.R*s.R + a2)
		sinT, cosT := math.Sincos(s.Theta)
		sinP, cosP := math.Sincos(s.Phi)
		out[i] = Point{
			X: rho * sinT * cosP,
			Y: rho * sinT * sinP,
			Z: s.R * cosT,
		}
	}
	return out
}
