package experiment

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/horyzen/internal/config"
	"github.com/san-kum/horyzen/internal/geodesic"
)

// Build turns configuration documents into job descriptors, one per
// document and in the same order. It has no side effects.
func Build(docs []*config.Document, reg *Registry) ([]geodesic.Job, error) {
	jobs := make([]geodesic.Job, 0, len(docs))
	for _, doc := range docs {
		job, err := BuildJob(doc, reg)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func BuildJob(doc *config.Document, reg *Registry) (geodesic.Job, error) {
	missing := func(field string) error {
		return &geodesic.ConfigurationError{Path: doc.Path, Field: field, Err: geodesic.ErrMissingField}
	}
	invalid := func(field, format string, args ...any) error {
		return &geodesic.ConfigurationError{
			Path:  doc.Path,
			Field: field,
			Err:   fmt.Errorf("%w: %s", geodesic.ErrInvalidField, fmt.Sprintf(format, args...)),
		}
	}

	if doc.BackgroundChoice == nil {
		return geodesic.Job{}, missing("background_choice")
	}
	name := strings.ToLower(strings.TrimSpace(*doc.BackgroundChoice))
	bg, err := reg.GetBackground(name)
	if err != nil {
		return geodesic.Job{}, &geodesic.ConfigurationError{Path: doc.Path, Field: "background_choice", Err: err}
	}
	params, ok := doc.Backgrounds[name]
	if !ok || len(params) == 0 {
		return geodesic.Job{}, missing(name)
	}
	if len(params) != len(bg.ParamNames) {
		return geodesic.Job{}, invalid(name, "%s expects %d parameters (%s), got %d",
			bg.Name, len(bg.ParamNames), strings.Join(bg.ParamNames, ", "), len(params))
	}

	if doc.Particle == nil {
		return geodesic.Job{}, missing("test_particle")
	}
	if doc.Particle.Q0 == nil {
		return geodesic.Job{}, missing("test_particle.q0")
	}
	if doc.Particle.P0 == nil {
		return geodesic.Job{}, missing("test_particle.p0")
	}
	if len(doc.Particle.Q0) != 4 {
		return geodesic.Job{}, invalid("test_particle.q0", "expected 4 components, got %d", len(doc.Particle.Q0))
	}
	if len(doc.Particle.P0) != 4 {
		return geodesic.Job{}, invalid("test_particle.p0", "expected 4 components, got %d", len(doc.Particle.P0))
	}

	switch {
	case doc.NumSteps == nil:
		return geodesic.Job{}, missing("num_steps")
	case doc.TimeStep == nil:
		return geodesic.Job{}, missing("time_step")
	case doc.IntegrationOrder == nil:
		return geodesic.Job{}, missing("integration_order")
	case doc.Omega == nil:
		return geodesic.Job{}, missing("omega")
	case doc.OutputDir == nil:
		return geodesic.Job{}, missing("output_dir")
	}

	if *doc.NumSteps <= 0 {
		return geodesic.Job{}, invalid("num_steps", "must be positive, got %d", *doc.NumSteps)
	}
	if *doc.TimeStep <= 0 {
		return geodesic.Job{}, invalid("time_step", "must be positive, got %g", *doc.TimeStep)
	}
	if order := *doc.IntegrationOrder; order <= 0 || order%2 != 0 {
		return geodesic.Job{}, invalid("integration_order", "must be a positive even number, got %d", order)
	}
	outDir := strings.TrimSpace(*doc.OutputDir)
	if outDir == "" {
		return geodesic.Job{}, invalid("output_dir", "must not be empty")
	}
	if info, err := os.Stat(outDir); err == nil && !info.IsDir() {
		return geodesic.Job{}, invalid("output_dir", "%s is not a directory", outDir)
	}

	integName := config.DefaultIntegrator
	if doc.Integrator != nil {
		integName = strings.ToLower(strings.TrimSpace(*doc.Integrator))
	}
	if _, err := reg.GetIntegrator(integName); err != nil {
		return geodesic.Job{}, invalid("integrator", "%v", err)
	}

	layout := geodesic.LayoutHDF5
	if doc.UseHDF5 != nil && !*doc.UseHDF5 {
		layout = geodesic.LayoutText
	}

	job := geodesic.Job{
		NumSteps:   *doc.NumSteps,
		TimeStep:   *doc.TimeStep,
		Order:      *doc.IntegrationOrder,
		Omega:      *doc.Omega,
		Background: geodesic.Background{Name: bg.Name, Params: config.Values(params)},
		OutputDir:  outDir,
		SourcePath: doc.Path,
		Layout:     layout,
		Integrator: integName,
	}
	copy(job.Particle.Position[:], doc.Particle.Q0)
	copy(job.Particle.Momentum[:], doc.Particle.P0)

	return job, nil
}
