package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/horyzen/internal/geodesic"
	"github.com/san-kum/horyzen/internal/metric"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator = "fantasy"
	DefaultFileName   = "config.yml"
)

//go:embed default.yml
var defaultConfig []byte

// Param is one named background parameter.
type Param struct {
	Name  string
	Value float64
}

// Document is one parsed configuration file. Pointer fields are nil when
// the key was absent so the job builder can tell "missing" from "zero".
type Document struct {
	Path string

	BackgroundChoice *string
	Backgrounds      map[string][]Param
	Particle         *Particle

	NumSteps         *int
	TimeStep         *float64
	IntegrationOrder *int
	Omega            *float64
	OutputDir        *string
	UseHDF5          *bool
	Integrator       *string
}

type Particle struct {
	Q0 []float64 `yaml:"q0"`
	P0 []float64 `yaml:"p0"`
}

type fields struct {
	BackgroundChoice *string   `yaml:"background_choice"`
	Particle         *Particle `yaml:"test_particle"`
	NumSteps         *int      `yaml:"num_steps"`
	TimeStep         *float64  `yaml:"time_step"`
	IntegrationOrder *int      `yaml:"integration_order"`
	Omega            *float64  `yaml:"omega"`
	OutputDir        *string   `yaml:"output_dir"`
	UseHDF5          *bool     `yaml:"use_hdf5"`
	Integrator       *string   `yaml:"integrator"`
}

// Default returns the bundled default configuration.
func Default() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse decodes a YAML document. Background parameter blocks are read
// through yaml.Node so their order is preserved.
func Parse(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("parse %s: empty document", path)
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: top level must be a mapping", path)
	}

	var f fields
	if err := top.Decode(&f); err != nil {
		return nil, &geodesic.ConfigurationError{Path: path, Field: "document", Err: fmt.Errorf("%w: %v", geodesic.ErrInvalidField, err)}
	}

	doc := &Document{
		Path:             path,
		BackgroundChoice: f.BackgroundChoice,
		Backgrounds:      make(map[string][]Param),
		Particle:         f.Particle,
		NumSteps:         f.NumSteps,
		TimeStep:         f.TimeStep,
		IntegrationOrder: f.IntegrationOrder,
		Omega:            f.Omega,
		OutputDir:        f.OutputDir,
		UseHDF5:          f.UseHDF5,
		Integrator:       f.Integrator,
	}

	blocks := backgroundKeys(f.BackgroundChoice)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i].Value, top.Content[i+1]
		if !blocks[strings.ToLower(key)] {
			continue
		}
		switch val.Kind {
		case yaml.MappingNode:
			params, err := mappingParams(val)
			if err != nil {
				return nil, &geodesic.ConfigurationError{Path: path, Field: key, Err: fmt.Errorf("%w: %v", geodesic.ErrInvalidField, err)}
			}
			doc.Backgrounds[strings.ToLower(key)] = params
		case yaml.SequenceNode:
			params, err := sequenceParams(val)
			if err != nil {
				// Not every top-level sequence is a parameter list.
				continue
			}
			doc.Backgrounds[strings.ToLower(key)] = params
		}
	}

	return doc, nil
}

// backgroundKeys is the set of top-level keys read as parameter blocks:
// every known background plus the chosen one.
func backgroundKeys(choice *string) map[string]bool {
	keys := make(map[string]bool)
	for _, name := range metric.Names() {
		keys[name] = true
	}
	if choice != nil {
		keys[strings.ToLower(strings.TrimSpace(*choice))] = true
	}
	return keys
}

func mappingParams(n *yaml.Node) ([]Param, error) {
	params := make([]Param, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		var v float64
		if err := n.Content[i+1].Decode(&v); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", n.Content[i].Value, err)
		}
		params = append(params, Param{Name: n.Content[i].Value, Value: v})
	}
	return params, nil
}

func sequenceParams(n *yaml.Node) ([]Param, error) {
	params := make([]Param, 0, len(n.Content))
	for i, c := range n.Content {
		var v float64
		if err := c.Decode(&v); err != nil {
			return nil, err
		}
		params = append(params, Param{Name: strconv.Itoa(i), Value: v})
	}
	return params, nil
}

// Values returns the parameter values in document order.
func Values(params []Param) []float64 {
	out := make([]float64, len(params))
	for i, p := range params {
		out[i] = p.Value
	}
	return out
}

// WriteDefault writes the bundled configuration into dir and returns its
// path.
func WriteDefault(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, DefaultFileName)
	return path, os.WriteFile(path, defaultConfig, 0644)
}

// CopyDefault copies the bundled configuration (or a preset when preset is
// non-empty) to dest. An empty dest means the working directory; a
// directory dest receives config.yml.
func CopyDefault(dest, preset string) (string, error) {
	data := defaultConfig
	if preset != "" {
		p, ok := GetPreset(preset)
		if !ok {
			return "", fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(ListPresets(), ", "))
		}
		rendered, err := p.Render()
		if err != nil {
			return "", err
		}
		data = rendered
	}

	if dest == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dest = wd
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, DefaultFileName)
	}

	return dest, os.WriteFile(dest, data, 0644)
}
