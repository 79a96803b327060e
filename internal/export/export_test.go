package export

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/horyzen/internal/geodesic"
)

func circle(n int) (geodesic.Trajectory, geodesic.Cartesian) {
	traj := make(geodesic.Trajectory, n)
	for i := range traj {
		traj[i] = geodesic.Sample{T: float64(i), R: 10, Theta: math.Pi / 2, Phi: 2 * math.Pi * float64(i) / float64(n)}
	}
	return traj, geodesic.ToCartesian(traj, 0)
}

func TestPlotter_Render(t *testing.T) {
	dir := t.TempDir()
	traj, cart := circle(64)

	files, err := NewPlotter().Render(dir, "schwarzschild [1]", traj, cart)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(files) != 2 || files[0] != PlotFile || files[1] != SnapshotFile {
		t.Errorf("unexpected files %v", files)
	}

	png, err := os.ReadFile(filepath.Join(dir, PlotFile))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("basic-plot.png is not a PNG")
	}

	snap, err := LoadSnapshot(filepath.Join(dir, SnapshotFile))
	if err != nil {
		t.Fatal(err)
	}
	if snap.Title != "schwarzschild [1]" {
		t.Errorf("title = %q", snap.Title)
	}
	if len(snap.Points) != 64 || len(snap.Times) != 64 || len(snap.Radius) != 64 {
		t.Errorf("snapshot lengths: points=%d times=%d radius=%d", len(snap.Points), len(snap.Times), len(snap.Radius))
	}
	if snap.Points[3] != cart[3] {
		t.Errorf("point 3 = %v, want %v", snap.Points[3], cart[3])
	}
}

func TestSavePlot_Empty(t *testing.T) {
	snap := NewSnapshot("empty", NewPlotter().Camera, nil, nil)
	if err := SavePlot(filepath.Join(t.TempDir(), PlotFile), snap, 100, 100); err == nil {
		t.Error("expected error for an empty trajectory")
	}
}

func TestSnapshotToSVG(t *testing.T) {
	traj, cart := circle(16)
	snap := NewSnapshot("svg", NewPlotter().Camera, traj, cart)

	svg := SnapshotToSVG(snap, 400, 300, "#00ff88")
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, `stroke="#00ff88"`) {
		t.Error("unexpected svg header")
	}
	if got := strings.Count(svg, " L"); got != 15 {
		t.Errorf("expected 15 line segments, got %d", got)
	}

	if TrajectoryToSVG(snap.Projected()[:1], 10, 10, "#fff") != "" {
		t.Error("a single point should produce no svg")
	}
}
