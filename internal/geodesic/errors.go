package geodesic

import (
	"errors"
	"fmt"
)

// Domain errors for the simulation pipeline.
var (
	// ErrMissingField indicates a required configuration key is absent.
	ErrMissingField = errors.New("geodesic: missing required field")

	// ErrInvalidField indicates a configuration value is out of range or mistyped.
	ErrInvalidField = errors.New("geodesic: invalid field value")

	// ErrUnknownBackground indicates background_choice names no known background.
	ErrUnknownBackground = errors.New("geodesic: unknown background")

	// ErrDegenerateParams indicates the first background parameter is zero.
	ErrDegenerateParams = errors.New("geodesic: first background parameter is zero")

	// ErrDimensionMismatch indicates trajectories of unequal step count.
	ErrDimensionMismatch = errors.New("geodesic: trajectories have mismatched step counts")

	// ErrUnstable indicates the integrated state diverged (NaN or Inf).
	ErrUnstable = errors.New("geodesic: integration unstable (state diverged)")

	// ErrStepCount indicates the integrator returned the wrong number of samples.
	ErrStepCount = errors.New("geodesic: integrator returned wrong number of steps")
)

// ConfigurationError reports a bad or missing configuration field.
type ConfigurationError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: field %q: %v", e.Path, e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DivisionError reports a background whose first parameter is zero, which
// makes the spin ratio undefined.
type DivisionError struct {
	Path   string
	Params []float64
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("config %s: cannot derive spin ratio from params %v: %v", e.Path, e.Params, ErrDegenerateParams)
}

func (e *DivisionError) Unwrap() error { return ErrDegenerateParams }

// SimulationError wraps an integrator failure with the job that caused it.
type SimulationError struct {
	Index      int
	SourcePath string
	Err        error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation %d (%s): %v", e.Index, e.SourcePath, e.Err)
}

func (e *SimulationError) Unwrap() error { return e.Err }

// DimensionMismatchError reports a trajectory whose step count differs from
// the first one loaded.
type DimensionMismatchError struct {
	Path string
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %d steps, expected %d: %v", e.Path, e.Got, e.Want, ErrDimensionMismatch)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }
