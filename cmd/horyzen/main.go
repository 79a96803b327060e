package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/horyzen/internal/analysis"
	"github.com/san-kum/horyzen/internal/config"
	"github.com/san-kum/horyzen/internal/experiment"
	"github.com/san-kum/horyzen/internal/export"
	"github.com/san-kum/horyzen/internal/gui"
	"github.com/san-kum/horyzen/internal/metric"
	"github.com/san-kum/horyzen/internal/objectstore"
	"github.com/san-kum/horyzen/internal/storage"
	"github.com/san-kum/horyzen/internal/viz"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	workers  int
	archive  bool

	preset string

	period       time.Duration
	step         int
	useTUI       bool
	photonSphere bool
	mass         float64

	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "horyzen",
		Short:         "geodesics around black holes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [config...]",
		Short: "simulate one geodesic per config file",
		RunE:  runBatch,
	}
	runCmd.Flags().IntVar(&workers, "workers", 0, "parallel simulations (0 = GOMAXPROCS)")
	runCmd.Flags().BoolVar(&archive, "archive", false, "mirror artifacts to object storage (HORYZEN_S3_*)")

	copyCmd := &cobra.Command{
		Use:   "copy-config [dest]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  copyConfig,
	}
	copyCmd.Flags().StringVar(&preset, "preset", "", "write a preset instead of the default")

	viewCmd := &cobra.Command{
		Use:   "view <results.h5>...",
		Short: "animate stored trajectories",
		Args:  cobra.MinimumNArgs(1),
		RunE:  viewRuns,
	}
	viewCmd.Flags().DurationVar(&period, "period", viz.DefaultPeriod, "time between animation steps")
	viewCmd.Flags().IntVar(&step, "step", viz.DefaultStep, "rows advanced per animation step")
	viewCmd.Flags().BoolVar(&useTUI, "tui", false, "render in the terminal instead of a window")
	viewCmd.Flags().BoolVar(&photonSphere, "photon-sphere", true, "draw the photon sphere")
	viewCmd.Flags().Float64Var(&mass, "mass", 1.0, "black hole mass for the photon sphere")

	inspectCmd := &cobra.Command{
		Use:   "inspect <artifact-dir>",
		Short: "summarize a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRun,
	}
	inspectCmd.Flags().StringVar(&svgOut, "svg", "", "also write the projected trajectory as SVG")

	listCmd := &cobra.Command{
		Use:   "list [output-dir]",
		Short: "list runs",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list config presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s %v\t%d steps\torder %d\n", name, p.Background, config.Values(p.Params), p.NumSteps, p.Order)
			}
			fmt.Fprintf(w, "\nbackgrounds:\t%s\n", strings.Join(metric.Names(), ", "))
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, copyCmd, viewCmd, inspectCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", logLevel)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths := args
	if len(paths) == 0 {
		dir, err := os.MkdirTemp("", "horyzen-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		path, err := config.WriteDefault(dir)
		if err != nil {
			return err
		}
		logger.Info("no config given, using the bundled default")
		paths = []string{path}
	}

	batch := experiment.NewBatch(logger)
	batch.Workers = workers
	batch.Plotter = export.NewPlotter()

	if archive {
		cfg, err := objectstore.ConfigFromEnv()
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		client, err := objectstore.NewMinIOClient(cfg)
		if err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		if err := objectstore.EnsureBucket(ctx, client, cfg); err != nil {
			return fmt.Errorf("object storage: %w", err)
		}
		batch.Archiver = objectstore.NewArchiver(client, cfg, logger)
	}

	start := time.Now()
	arts, err := batch.Run(ctx, paths)
	if err != nil {
		return err
	}
	logger.Debug("batch complete", "runs", len(arts), "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func copyConfig(cmd *cobra.Command, args []string) error {
	dest := ""
	if len(args) > 0 {
		dest = args[0]
	}
	path, err := config.CopyDefault(dest, preset)
	if err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)
	return nil
}

func viewRuns(cmd *cobra.Command, args []string) error {
	buf, err := viz.LoadBuffer(args...)
	if err != nil {
		return err
	}

	var scene viz.Scene
	if useTUI {
		scene = viz.NewTerminalScene(buf.Len(), viz.TerminalOptions{PhotonSphere: photonSphere, Mass: mass})
	} else {
		scene = gui.NewScene(gui.Options{PhotonSphere: photonSphere, Mass: mass})
	}

	vp := viz.NewViewport(buf, scene, viz.Options{Period: period, Step: step})
	return vp.Run()
}

func inspectRun(cmd *cobra.Command, args []string) error {
	dir := args[0]
	meta, err := storage.LoadMetadata(dir)
	if err != nil {
		return err
	}

	series, err := storage.LoadSeries(dir, *meta)
	if err != nil {
		return err
	}
	if len(series.Radius) == 0 {
		return fmt.Errorf("no data in %s", dir)
	}

	fmt.Printf("run: %s (%s)\n", meta.Name, meta.ID)
	fmt.Printf("background: %s %v  spin: %.4f\n", meta.Background, meta.Params, meta.Spin)
	fmt.Printf("steps: %d  time step: %g  order: %d  integrator: %s\n\n", meta.Steps, meta.TimeStep, meta.Order, meta.Integrator)

	fmt.Println(asciigraph.Plot(series.Radius,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("radius"),
	))
	fmt.Println()

	fmt.Println(asciigraph.Plot(series.Z,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("cartesian z"),
	))
	fmt.Println()

	s := analysis.Summarize(series.Radius, meta.TimeStep)
	fmt.Printf("periapsis: %.4f  apoapsis: %.4f  eccentricity: %.4f\n", s.Periapsis, s.Apoapsis, s.Eccentricity)
	if s.RadialPeriod > 0 {
		fmt.Printf("radial period: %.4f\n", s.RadialPeriod)
	} else {
		fmt.Println("radial period: none detected")
	}

	if svgOut != "" {
		snap, err := export.LoadSnapshot(filepath.Join(dir, export.SnapshotFile))
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgOut, []byte(export.SnapshotToSVG(snap, 800, 800, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgOut)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	dir := "output"
	if len(args) > 0 {
		dir = args[0]
	}

	runs, err := storage.New(dir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBACKGROUND\tPARAMS\tSTEPS\tDT\tORDER\tINTEG\tLAYOUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%g\t%d\t%s\t%s\n",
			run.Name,
			run.Background,
			run.Params,
			run.Steps,
			run.TimeStep,
			run.Order,
			run.Integrator,
			run.Layout,
		)
	}
	return w.Flush()
}
