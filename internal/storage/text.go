package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

const ResultsNPY = "results.npy"

type textColumn struct {
	file   string
	header string
}

// Text layout files, in the same order as HDF5Columns.
var textColumns = []textColumn{
	{"t.txt", "Time values"},
	{"r.txt", "Radius values"},
	{"theta.txt", "Theta values"},
	{"phi.txt", "Phi values"},
	{"x.txt", "Cartesian X values"},
	{"y.txt", "Cartesian Y values"},
	{"z.txt", "Cartesian Z values"},
}

func writeText(dir string, traj geodesic.Trajectory, cols [][]float64) ([]string, error) {
	files := make([]string, 0, len(textColumns)+1)
	for i, tc := range textColumns {
		if err := writeColumn(filepath.Join(dir, tc.file), tc.header, cols[i]); err != nil {
			return nil, err
		}
		files = append(files, tc.file)
	}

	if err := writeNPY(filepath.Join(dir, ResultsNPY), traj); err != nil {
		return nil, err
	}
	return append(files, ResultsNPY), nil
}

func writeColumn(path, header string, values []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n", header)
	for _, v := range values {
		fmt.Fprintf(w, "%.18e\n", v)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// writeNPY dumps the untransformed samples as a (steps, 4) float64 array.
func writeNPY(path string, traj geodesic.Trajectory) error {
	data := make([]float64, 0, 4*len(traj))
	for _, s := range traj {
		data = append(data, s.T, s.R, s.Theta, s.Phi)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(traj) == 0 {
		if err := npyio.Write(f, data); err != nil {
			return err
		}
		return f.Close()
	}
	if err := npyio.Write(f, mat.NewDense(len(traj), 4, data)); err != nil {
		return err
	}
	return f.Close()
}

// ReadNPY loads a results.npy written by the text layout.
func ReadNPY(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var m mat.Dense
	if err := npyio.Read(f, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// ReadTextColumn reads one column file of the text layout, skipping
// comment lines.
func ReadTextColumn(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values []float64
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		values = append(values, v)
	}
	return values, sc.Err()
}
