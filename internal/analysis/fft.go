package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data with its mean removed, so bin 0 carries no offset.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-zero frequency of samples taken
// every dt. ok is false when the signal is flat or too short.
func DominantFrequency(data []float64, dt float64) (freq float64, ok bool) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, false
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if ps[best] < 1e-12 {
		return 0, false
	}
	return float64(best) / (float64(len(data)) * dt), true
}

// OrbitSummary describes the radial extent of a trajectory.
type OrbitSummary struct {
	Periapsis    float64
	Apoapsis     float64
	Eccentricity float64
	// RadialPeriod is the period of the dominant radial oscillation in
	// units of the integration parameter, or 0 if none was found.
	RadialPeriod float64
}

func Summarize(radius []float64, dt float64) OrbitSummary {
	if len(radius) == 0 {
		return OrbitSummary{}
	}

	s := OrbitSummary{Periapsis: math.Inf(1), Apoapsis: math.Inf(-1)}
	for _, r := range radius {
		s.Periapsis = math.Min(s.Periapsis, r)
		s.Apoapsis = math.Max(s.Apoapsis, r)
	}
	if sum := s.Apoapsis + s.Periapsis; sum > 0 {
		s.Eccentricity = (s.Apoapsis - s.Periapsis) / sum
	}
	if f, ok := DominantFrequency(radius, dt); ok {
		s.RadialPeriod = 1 / f
	}
	return s
}
