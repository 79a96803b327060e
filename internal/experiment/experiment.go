package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/san-kum/horyzen/internal/config"
	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/sim"
	"github.com/san-kum/horyzen/internal/storage"
)

// Batch runs a set of configuration files end to end.
type Batch struct {
	Registry *Registry
	Workers  int
	Logger   *slog.Logger
	Out      io.Writer
	Plotter  storage.Plotter
	Archiver storage.Archiver

	// Now stamps the batch. Defaults to time.Now.
	Now func() time.Time
}

func NewBatch(logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Batch{
		Registry: NewRegistry(),
		Logger:   logger,
		Out:      os.Stdout,
		Now:      time.Now,
	}
}

// Run loads every config, simulates all jobs in parallel and writes one
// artifact directory per job, in config order. Nothing is simulated if
// any config is invalid and nothing is written if any simulation fails.
func (b *Batch) Run(ctx context.Context, paths []string) ([]*storage.Artifact, error) {
	docs := make([]*config.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	jobs, err := Build(docs, b.Registry)
	if err != nil {
		return nil, err
	}
	return b.RunJobs(ctx, jobs)
}

func (b *Batch) RunJobs(ctx context.Context, jobs []geodesic.Job) ([]*storage.Artifact, error) {
	pipeline := storage.NewPipeline(b.Logger, b.Out, b.Plotter)
	if b.Archiver != nil {
		pipeline.WithArchiver(b.Archiver)
	}

	spins, err := pipeline.Prepare(jobs)
	if err != nil {
		return nil, err
	}

	now := b.Now
	if now == nil {
		now = time.Now
	}
	stamp := now()

	sched := sim.New(b.Registry.Dispatch(), b.Workers, b.Logger)
	b.Logger.Info("batch started", "jobs", len(jobs), "workers", min(sched.Workers(), len(jobs)))
	trajs, err := sched.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	artifacts := make([]*storage.Artifact, 0, len(jobs))
	for i, job := range jobs {
		art, err := pipeline.Write(ctx, job, spins[i], trajs[i], stamp)
		if err != nil {
			return artifacts, fmt.Errorf("job %d (%s): %w", i, job.SourcePath, err)
		}
		artifacts = append(artifacts, art)
	}

	b.Logger.Info("batch finished", "artifacts", len(artifacts))
	return artifacts, nil
}
