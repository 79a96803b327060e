package export

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/viz"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	PlotFile     = "basic-plot.png"
	SnapshotFile = "basic-plot.json"
)

// Plotter writes the summary plot of a run: a PNG image and a JSON
// snapshot that can be reloaded and re-rendered later.
type Plotter struct {
	Camera        viz.Camera
	Width, Height vg.Length
}

func NewPlotter() *Plotter {
	return &Plotter{Camera: *viz.NewCamera(), Width: 6 * vg.Inch, Height: 6 * vg.Inch}
}

func (p *Plotter) Render(dir, title string, traj geodesic.Trajectory, cart geodesic.Cartesian) ([]string, error) {
	snap := NewSnapshot(title, p.Camera, traj, cart)
	if err := SavePlot(filepath.Join(dir, PlotFile), snap, p.Width, p.Height); err != nil {
		return nil, err
	}
	if err := SaveSnapshot(filepath.Join(dir, SnapshotFile), snap); err != nil {
		return nil, err
	}
	return []string{PlotFile, SnapshotFile}, nil
}

// SavePlot renders the projected trajectory coloured by coordinate time.
func SavePlot(path string, snap *Snapshot, w, h vg.Length) error {
	if len(snap.Points) == 0 {
		return fmt.Errorf("plot %s: empty trajectory", path)
	}

	p := plot.New()
	p.Title.Text = snap.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	xys := snap.Projected()
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}

	cmap := moreland.SmoothBlueRed()
	lo, hi := bounds(snap.Times)
	if hi <= lo {
		hi = lo + 1
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		style := draw.GlyphStyle{Radius: vg.Points(1.2), Shape: draw.CircleGlyph{}}
		c, err := cmap.At(snap.Times[i])
		if err == nil {
			style.Color = c
		}
		return style
	}
	p.Add(sc)

	origin, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return err
	}
	origin.GlyphStyle = draw.GlyphStyle{Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	p.Add(origin)

	return p.Save(w, h, path)
}

func bounds(v []float64) (float64, float64) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi := v[0], v[0]
	for _, x := range v {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}
