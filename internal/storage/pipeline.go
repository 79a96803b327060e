package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/horyzen/internal/geodesic"
)

// Plotter renders the summary plot files of one run into dir and returns
// their base names.
type Plotter interface {
	Render(dir, title string, traj geodesic.Trajectory, cart geodesic.Cartesian) ([]string, error)
}

// Archiver mirrors a finished artifact directory somewhere else.
type Archiver interface {
	Archive(ctx context.Context, dir string) error
}

// Artifact is one written run directory.
type Artifact struct {
	Dir      string
	Metadata RunMetadata
}

// Pipeline turns finished trajectories into artifact directories.
type Pipeline struct {
	logger   *slog.Logger
	out      io.Writer
	plotter  Plotter
	archiver Archiver
}

func NewPipeline(logger *slog.Logger, out io.Writer, plotter Plotter) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{logger: logger, out: out, plotter: plotter}
}

func (p *Pipeline) WithArchiver(a Archiver) *Pipeline {
	p.archiver = a
	return p
}

// Prepare computes the spin ratio of every job. It runs before any job is
// dispatched so a degenerate background fails the batch with nothing on disk.
func (p *Pipeline) Prepare(jobs []geodesic.Job) ([]float64, error) {
	spins := make([]float64, len(jobs))
	for i, job := range jobs {
		a, err := geodesic.SpinRatio(job.Background)
		if err != nil {
			return nil, &geodesic.DivisionError{Path: job.SourcePath, Params: job.Params()}
		}
		spins[i] = a
	}
	return spins, nil
}

// Write persists one trajectory under job.OutputDir.
func (p *Pipeline) Write(ctx context.Context, job geodesic.Job, spin float64, traj geodesic.Trajectory, stamp time.Time) (*Artifact, error) {
	cart := geodesic.ToCartesian(traj, spin)

	stem := Stem(job.SourcePath)
	dir, err := AllocateDir(job.OutputDir, stamp, stem)
	if err != nil {
		return nil, fmt.Errorf("allocate output for %s: %w", job.SourcePath, err)
	}
	log := p.logger.With("dir", dir)

	var files []string
	cfg, err := copyFile(job.SourcePath, dir)
	if err != nil {
		return nil, fmt.Errorf("copy config %s: %w", job.SourcePath, err)
	}
	files = append(files, cfg)

	if p.plotter != nil {
		title := fmt.Sprintf("%s %v", job.Background.Name, job.Background.Params)
		plots, err := p.plotter.Render(dir, title, traj, cart)
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", dir, err)
		}
		files = append(files, plots...)
	}

	cols := columns(traj, cart)
	switch job.Layout {
	case geodesic.LayoutText:
		written, err := writeText(dir, traj, cols)
		if err != nil {
			return nil, fmt.Errorf("write text results: %w", err)
		}
		files = append(files, written...)
	default:
		written, err := writeHDF5(dir, cols)
		if err != nil {
			return nil, err
		}
		files = append(files, written)
	}

	meta := RunMetadata{
		ID:         uuid.NewString(),
		Name:       filepath.Base(dir),
		Timestamp:  stamp,
		Config:     job.SourcePath,
		Background: job.Background.Name,
		Params:     job.Params(),
		Spin:       spin,
		Position:   job.Particle.Position,
		Momentum:   job.Particle.Momentum,
		Steps:      len(traj),
		TimeStep:   job.TimeStep,
		Order:      job.Order,
		Omega:      job.Omega,
		Integrator: job.Integrator,
		Layout:     job.Layout.String(),
		Files:      append(files, MetadataFile),
	}
	if err := writeMetadata(dir, &meta); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	if p.archiver != nil {
		if err := p.archiver.Archive(ctx, dir); err != nil {
			return nil, fmt.Errorf("archive %s: %w", dir, err)
		}
		log.Info("artifact archived")
	}

	log.Debug("artifact written", "files", len(meta.Files))
	fmt.Fprintf(p.out, "output saved in %s\n", dir)
	return &Artifact{Dir: dir, Metadata: meta}, nil
}

// columns lays out time, radius, theta, phi, x, y, z.
func columns(traj geodesic.Trajectory, cart geodesic.Cartesian) [][]float64 {
	xs, ys, zs := cart.Axes()
	return [][]float64{
		traj.Column(0),
		traj.Column(1),
		traj.Column(2),
		traj.Column(3),
		xs, ys, zs,
	}
}
