package storage

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/hdf5"
)

const ResultsHDF5 = "results.h5"

// Dataset names inside results.h5, in write order.
var HDF5Columns = []string{"time", "radius", "theta", "phi", "x", "y", "z"}

func writeHDF5(dir string, cols [][]float64) (string, error) {
	path := filepath.Join(dir, ResultsHDF5)
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for i, name := range HDF5Columns {
		if err := writeDataset(f, name, cols[i]); err != nil {
			return "", fmt.Errorf("%s: dataset %s: %w", path, name, err)
		}
	}
	return ResultsHDF5, f.Close()
}

func writeDataset(f *hdf5.File, name string, data []float64) error {
	space, err := hdf5.CreateSimpleDataspace([]uint{uint(len(data))}, nil)
	if err != nil {
		return err
	}
	defer space.Close()

	dset, err := f.CreateDataset(name, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return err
	}
	defer dset.Close()

	return dset.Write(&data)
}

// ReadColumns reads the named one-dimensional datasets from an HDF5 file.
func ReadColumns(path string, names ...string) ([][]float64, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := readDataset(f, name)
		if err != nil {
			return nil, fmt.Errorf("%s: dataset %s: %w", path, name, err)
		}
		cols[i] = col
	}
	return cols, nil
}

func readDataset(f *hdf5.File, name string) ([]float64, error) {
	dset, err := f.OpenDataset(name)
	if err != nil {
		return nil, err
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1 dimension, got %d", len(dims))
	}

	data := make([]float64, dims[0])
	if err := dset.Read(&data); err != nil {
		return nil, err
	}
	return data, nil
}
