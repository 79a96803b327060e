package geodesic

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestSpinRatio(t *testing.T) {
	tests := []struct {
		name   string
		params []float64
		want   float64
		err    error
	}{
		{"kerr", []float64{1, 0.5}, 0.5, nil},
		{"scaled", []float64{2, 1}, 0.5, nil},
		{"schwarzschild", []float64{1}, 0, nil},
		{"kerr-newman", []float64{1, 0.3, 0.2}, 0.3, nil},
		{"zero mass", []float64{0, 0.5}, 0, ErrDegenerateParams},
		{"empty", nil, 0, ErrDegenerateParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SpinRatio(Background{Name: tt.name, Params: tt.params})
			if !errors.Is(err, tt.err) {
				t.Fatalf("SpinRatio() err = %v, want %v", err, tt.err)
			}
			if got != tt.want {
				t.Errorf("SpinRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToCartesian_Identity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		s := Sample{
			R:     rng.Float64() * 100,
			Theta: rng.Float64() * math.Pi,
			Phi:   rng.Float64() * 2 * math.Pi,
		}
		a := 0.0
		if i%2 == 1 {
			a = rng.NormFloat64()
		}

		p := ToCartesian(Trajectory{s}, a)[0]

		lhs := p.X*p.X + p.Y*p.Y
		rhs := (s.R*s.R + a*a) * math.Pow(math.Sin(s.Theta), 2)
		if math.Abs(lhs-rhs) > 1e-9*math.Max(1, rhs) {
			t.Fatalf("x²+y² = %v, want %v (r=%v θ=%v a=%v)", lhs, rhs, s.R, s.Theta, a)
		}
		if z := s.R * math.Cos(s.Theta); math.Abs(p.Z-z) > 1e-12*math.Max(1, math.Abs(z)) {
			t.Fatalf("z = %v, want %v", p.Z, z)
		}
	}
}

func TestToCartesian_Spherical(t *testing.T) {
	traj := Trajectory{
		{R: 1, Theta: math.Pi / 2, Phi: 0},
		{R: 2, Theta: math.Pi / 2, Phi: math.Pi / 2},
		{R: 3, Theta: 0, Phi: 1},
	}
	want := Cartesian{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}

	got := ToCartesian(traj, 0)
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-12 || math.Abs(got[i].Y-want[i].Y) > 1e-12 || math.Abs(got[i].Z-want[i].Z) > 1e-12 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTrajectory_Column(t *testing.T) {
	traj := Trajectory{{1, 2, 3, 4}, {5, 6, 7, 8}}
	for idx, want := range [][]float64{{1, 5}, {2, 6}, {3, 7}, {4, 8}} {
		col := traj.Column(idx)
		if col[0] != want[0] || col[1] != want[1] {
			t.Errorf("Column(%d) = %v, want %v", idx, col, want)
		}
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cfgErr := &ConfigurationError{Path: "a.yml", Field: "num_steps", Err: ErrMissingField}
	if !errors.Is(cfgErr, ErrMissingField) {
		t.Error("ConfigurationError does not unwrap to its cause")
	}

	var divErr error = &DivisionError{Path: "a.yml", Params: []float64{0, 1}}
	if !errors.Is(divErr, ErrDegenerateParams) {
		t.Error("DivisionError does not unwrap to ErrDegenerateParams")
	}

	simErr := &SimulationError{Index: 2, SourcePath: "b.yml", Err: ErrUnstable}
	if !errors.Is(simErr, ErrUnstable) {
		t.Error("SimulationError does not unwrap")
	}
	if simErr.Error() != "simulation 2 (b.yml): "+ErrUnstable.Error() {
		t.Errorf("SimulationError.Error() = %q", simErr.Error())
	}

	dimErr := &DimensionMismatchError{Path: "c.h5", Want: 3, Got: 4}
	if !errors.Is(dimErr, ErrDimensionMismatch) {
		t.Error("DimensionMismatchError does not unwrap")
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
