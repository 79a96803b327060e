package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const MetadataFile = "metadata.json"

// RunMetadata is the provenance record written next to every artifact.
type RunMetadata struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Timestamp  time.Time  `json:"timestamp"`
	Config     string     `json:"config"`
	Background string     `json:"background"`
	Params     []float64  `json:"params"`
	Spin       float64    `json:"spin"`
	Position   [4]float64 `json:"q0"`
	Momentum   [4]float64 `json:"p0"`
	Steps      int        `json:"steps"`
	TimeStep   float64    `json:"time_step"`
	Order      int        `json:"order"`
	Omega      float64    `json:"omega"`
	Integrator string     `json:"integrator"`
	Layout     string     `json:"layout"`
	Files      []string   `json:"files"`
}

// Store is a read-only catalog over an output directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Dir() string {
	return s.baseDir
}

// List returns every run under the base directory, oldest first.
// Directories without a readable metadata.json are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := LoadMetadata(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Name < runs[j].Name
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(name string) (*RunMetadata, error) {
	return LoadMetadata(filepath.Join(s.baseDir, name))
}

// LoadMetadata reads the provenance record of an artifact directory.
func LoadMetadata(dir string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func writeMetadata(dir string, meta *RunMetadata) error {
	f, err := os.Create(filepath.Join(dir, MetadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	return f.Close()
}
