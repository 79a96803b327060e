package export

import (
	"encoding/json"
	"os"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/viz"
	"gonum.org/v1/plot/plotter"
)

// Snapshot is the re-loadable form of the summary plot.
type Snapshot struct {
	Title  string           `json:"title"`
	Camera viz.Camera       `json:"camera"`
	Times  []float64        `json:"times"`
	Radius []float64        `json:"radius"`
	Points []geodesic.Point `json:"points"`
}

func NewSnapshot(title string, cam viz.Camera, traj geodesic.Trajectory, cart geodesic.Cartesian) *Snapshot {
	return &Snapshot{
		Title:  title,
		Camera: cam,
		Times:  traj.Column(0),
		Radius: traj.Column(1),
		Points: append([]geodesic.Point(nil), cart...),
	}
}

// Projected returns the points as seen through the snapshot camera.
// Points behind the camera collapse to the origin.
func (s *Snapshot) Projected() plotter.XYs {
	cam := s.Camera
	xys := make(plotter.XYs, len(s.Points))
	for i, p := range s.Points {
		x, y, _, ok := cam.ProjectF(viz.FromPoint(p))
		if ok {
			xys[i].X, xys[i].Y = x, y
		}
	}
	return xys
}

func SaveSnapshot(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return f.Close()
}

func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
