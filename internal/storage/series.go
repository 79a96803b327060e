package storage

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/horyzen/internal/geodesic"
	"gonum.org/v1/gonum/mat"
)

// Series holds the columns of a stored run used for inspection.
type Series struct {
	Time   []float64
	Radius []float64
	Z      []float64
}

// LoadSeries reads time, radius and Cartesian z of the run in dir, in
// whichever layout meta says it was written with.
func LoadSeries(dir string, meta RunMetadata) (*Series, error) {
	if meta.Layout == geodesic.LayoutText.String() {
		return loadTextSeries(dir)
	}

	cols, err := ReadColumns(filepath.Join(dir, ResultsHDF5), "time", "radius", "z")
	if err != nil {
		return nil, err
	}
	return &Series{Time: cols[0], Radius: cols[1], Z: cols[2]}, nil
}

// loadTextSeries takes time and radius from results.npy and z from z.txt.
func loadTextSeries(dir string) (*Series, error) {
	m, err := ReadNPY(filepath.Join(dir, ResultsNPY))
	if err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	if cols != 4 {
		return nil, fmt.Errorf("%s: expected 4 columns, got %d", ResultsNPY, cols)
	}

	zPath := filepath.Join(dir, textColumns[6].file)
	z, err := ReadTextColumn(zPath)
	if err != nil {
		return nil, err
	}
	if len(z) != rows {
		return nil, &geodesic.DimensionMismatchError{Path: zPath, Want: rows, Got: len(z)}
	}

	return &Series{
		Time:   mat.Col(nil, 0, m),
		Radius: mat.Col(nil, 1, m),
		Z:      z,
	}, nil
}
