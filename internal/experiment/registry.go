package experiment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/integrators"
	"github.com/san-kum/horyzen/internal/metric"
)

type Registry struct {
	integrators map[string]func() geodesic.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() geodesic.Integrator),
	}

	r.integrators["fantasy"] = func() geodesic.Integrator { return integrators.NewFantasy() }
	r.integrators["rk4"] = func() geodesic.Integrator { return integrators.NewRK4() }

	return r
}

// Register adds or replaces a named integrator.
func (r *Registry) Register(name string, fn func() geodesic.Integrator) {
	r.integrators[strings.ToLower(name)] = fn
}

func (r *Registry) GetIntegrator(name string) (geodesic.Integrator, error) {
	fn, ok := r.integrators[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetBackground(name string) (metric.Spacetime, error) {
	return metric.Lookup(name)
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch returns an Integrator that routes each job to the integrator it
// names. A fresh integrator is created per call so workers share nothing.
func (r *Registry) Dispatch() geodesic.Integrator {
	return geodesic.IntegratorFunc(func(ctx context.Context, job geodesic.Job) (geodesic.Trajectory, error) {
		integ, err := r.GetIntegrator(job.Integrator)
		if err != nil {
			return nil, err
		}
		return integ.Integrate(ctx, job)
	})
}
