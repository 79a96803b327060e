package storage

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlotter struct {
	calls int
}

func (f *fakePlotter) Render(dir, title string, traj geodesic.Trajectory, cart geodesic.Cartesian) ([]string, error) {
	f.calls++
	return []string{"basic-plot.png"}, os.WriteFile(filepath.Join(dir, "basic-plot.png"), []byte("png"), 0644)
}

type fakeArchiver struct {
	dirs []string
}

func (f *fakeArchiver) Archive(ctx context.Context, dir string) error {
	f.dirs = append(f.dirs, dir)
	return nil
}

var stamp = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func writeConfig(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("background_choice: kerr\n# keep me\n"), 0640))
	return path
}

func spiral(n int) geodesic.Trajectory {
	traj := make(geodesic.Trajectory, n)
	for i := range traj {
		traj[i] = geodesic.Sample{
			T:     float64(i) * 0.5,
			R:     20 - float64(i)*0.01,
			Theta: math.Pi / 2,
			Phi:   float64(i) * 0.05,
		}
	}
	return traj
}

func kerrJob(t *testing.T, layout geodesic.Layout) geodesic.Job {
	tmp := t.TempDir()
	return geodesic.Job{
		NumSteps:   100,
		TimeStep:   0.5,
		Order:      2,
		Omega:      1,
		Background: geodesic.Background{Name: "kerr", Params: []float64{1, 0.5}},
		OutputDir:  filepath.Join(tmp, "out"),
		SourcePath: writeConfig(t, tmp, "kerr.yml"),
		Layout:     layout,
		Integrator: "fantasy",
	}
}

func TestPrepare_DivisionError(t *testing.T) {
	job := kerrJob(t, geodesic.LayoutHDF5)
	bad := job
	bad.Background = geodesic.Background{Name: "kerr", Params: []float64{0, 0.5}}
	bad.SourcePath = "bad.yml"

	p := NewPipeline(nil, nil, nil)
	spins, err := p.Prepare([]geodesic.Job{job, bad})
	require.Error(t, err)
	assert.Nil(t, spins)

	var divErr *geodesic.DivisionError
	require.True(t, errors.As(err, &divErr))
	assert.Equal(t, "bad.yml", divErr.Path)
	assert.True(t, errors.Is(err, geodesic.ErrDegenerateParams))

	_, statErr := os.Stat(job.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrepare_Spins(t *testing.T) {
	kerr := kerrJob(t, geodesic.LayoutHDF5)
	schw := kerr
	schw.Background = geodesic.Background{Name: "schwarzschild", Params: []float64{2}}

	spins, err := NewPipeline(nil, nil, nil).Prepare([]geodesic.Job{kerr, schw})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0}, spins)
}

func TestWrite_HDF5(t *testing.T) {
	job := kerrJob(t, geodesic.LayoutHDF5)
	plotter := &fakePlotter{}
	archiver := &fakeArchiver{}
	var out bytes.Buffer

	p := NewPipeline(nil, &out, plotter).WithArchiver(archiver)
	art, err := p.Write(context.Background(), job, 0.5, spiral(100), stamp)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(job.OutputDir, "2024-03-09T140507_kerr"), art.Dir)
	assert.Equal(t, "output saved in "+art.Dir+"\n", out.String())
	assert.Equal(t, 1, plotter.calls)
	assert.Equal(t, []string{art.Dir}, archiver.dirs)

	want, err := os.ReadFile(job.SourcePath)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(art.Dir, "kerr.yml"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(art.Dir, "kerr.yml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	cols, err := ReadColumns(filepath.Join(art.Dir, ResultsHDF5), HDF5Columns...)
	require.NoError(t, err)
	require.Len(t, cols, 7)
	for i, col := range cols {
		assert.Len(t, col, 100, HDF5Columns[i])
	}

	x, y, z := cols[4], cols[5], cols[6]
	r, theta := cols[1], cols[2]
	for i := range x {
		rho2 := (r[i]*r[i] + 0.25) * math.Sin(theta[i]) * math.Sin(theta[i])
		assert.InDelta(t, rho2, x[i]*x[i]+y[i]*y[i], 1e-9)
		assert.InDelta(t, r[i]*math.Cos(theta[i]), z[i], 1e-12)
	}

	meta, err := LoadMetadata(art.Dir)
	require.NoError(t, err)
	assert.Equal(t, art.Metadata.ID, meta.ID)
	assert.Equal(t, 100, meta.Steps)
	assert.Equal(t, "hdf5", meta.Layout)
	assert.Equal(t, []float64{1, 0.5}, meta.Params)
	assert.Contains(t, meta.Files, ResultsHDF5)
	assert.Contains(t, meta.Files, "basic-plot.png")
}

func TestWrite_TextLayout(t *testing.T) {
	job := kerrJob(t, geodesic.LayoutText)
	traj := spiral(12)

	art, err := NewPipeline(nil, nil, nil).Write(context.Background(), job, 0.5, traj, stamp)
	require.NoError(t, err)

	for _, name := range []string{"t.txt", "r.txt", "theta.txt", "phi.txt", "x.txt", "y.txt", "z.txt", ResultsNPY} {
		assert.FileExists(t, filepath.Join(art.Dir, name))
	}
	assert.NoFileExists(t, filepath.Join(art.Dir, ResultsHDF5))

	raw, err := os.ReadFile(filepath.Join(art.Dir, "r.txt"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("# Radius values\n2.000000000000000000e+01\n")))

	r, err := ReadTextColumn(filepath.Join(art.Dir, "r.txt"))
	require.NoError(t, err)
	assert.Equal(t, traj.Column(1), r)

	m, err := ReadNPY(filepath.Join(art.Dir, ResultsNPY))
	require.NoError(t, err)
	rows, cols := m.Dims()
	assert.Equal(t, 12, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, traj[11].Phi, m.At(11, 3))
}

func TestWrite_CollisionGetsSuffix(t *testing.T) {
	job := kerrJob(t, geodesic.LayoutText)
	p := NewPipeline(nil, nil, nil)

	first, err := p.Write(context.Background(), job, 0.5, spiral(3), stamp)
	require.NoError(t, err)
	second, err := p.Write(context.Background(), job, 0.5, spiral(3), stamp)
	require.NoError(t, err)
	third, err := p.Write(context.Background(), job, 0.5, spiral(3), stamp)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09T140507_kerr", filepath.Base(first.Dir))
	assert.Equal(t, "2024-03-09T140507_kerr-1", filepath.Base(second.Dir))
	assert.Equal(t, "2024-03-09T140507_kerr-2", filepath.Base(third.Dir))
}

func TestStore_List(t *testing.T) {
	job := kerrJob(t, geodesic.LayoutText)
	p := NewPipeline(nil, nil, nil)

	later, err := p.Write(context.Background(), job, 0.5, spiral(3), stamp.Add(time.Hour))
	require.NoError(t, err)
	earlier, err := p.Write(context.Background(), job, 0.5, spiral(3), stamp)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(job.OutputDir, "stray"), 0755))

	st := New(job.OutputDir)
	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, earlier.Metadata.ID, runs[0].ID)
	assert.Equal(t, later.Metadata.ID, runs[1].ID)

	meta, err := st.Load(filepath.Base(later.Dir))
	require.NoError(t, err)
	assert.Equal(t, later.Metadata.Name, meta.Name)

	empty, err := New(filepath.Join(job.OutputDir, "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "kerr", Stem("/a/b/kerr.yml"))
	assert.Equal(t, "run.v2", Stem("run.v2.yaml"))
	assert.Equal(t, "plain", Stem("plain"))
}

func TestLoadSeries(t *testing.T) {
	for _, layout := range []geodesic.Layout{geodesic.LayoutHDF5, geodesic.LayoutText} {
		t.Run(layout.String(), func(t *testing.T) {
			job := kerrJob(t, layout)
			traj := spiral(10)

			art, err := NewPipeline(nil, nil, nil).Write(context.Background(), job, 0.5, traj, stamp)
			require.NoError(t, err)

			s, err := LoadSeries(art.Dir, art.Metadata)
			require.NoError(t, err)
			assert.Equal(t, traj.Column(0), s.Time)
			assert.Equal(t, traj.Column(1), s.Radius)
			require.Len(t, s.Z, 10)
			for _, z := range s.Z {
				assert.InDelta(t, 0, z, 1e-9)
			}
		})
	}
}

func TestLoadSeries_TruncatedText(t *testing.T) {
	job := kerrJob(t, geodesic.LayoutText)
	art, err := NewPipeline(nil, nil, nil).Write(context.Background(), job, 0.5, spiral(5), stamp)
	require.NoError(t, err)

	require.NoError(t, writeColumn(filepath.Join(art.Dir, "z.txt"), "Cartesian Z values", []float64{0, 0}))

	_, err = LoadSeries(art.Dir, art.Metadata)
	var dm *geodesic.DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 5, dm.Want)
	assert.Equal(t, 2, dm.Got)
}
