package metric

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/horyzen/internal/geodesic"
)

// Spacetime is one member of the fixed background enumeration.
type Spacetime struct {
	Name       string
	ParamNames []string
}

var backgrounds = map[string]Spacetime{
	"schwarzschild": {Name: "schwarzschild", ParamNames: []string{"M"}},
	"kerr":          {Name: "kerr", ParamNames: []string{"M", "J"}},
	"kerr-newman":   {Name: "kerr-newman", ParamNames: []string{"M", "J", "Q"}},
}

// Lookup resolves a background name case-insensitively.
func Lookup(name string) (Spacetime, error) {
	s, ok := backgrounds[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Spacetime{}, fmt.Errorf("%w: %q (known: %s)", geodesic.ErrUnknownBackground, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists the known backgrounds in sorted order.
func Names() []string {
	names := make([]string, 0, len(backgrounds))
	for name := range backgrounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Geometry validates params against the background and returns the
// corresponding Kerr-Newman geometry.
func (s Spacetime) Geometry(params []float64) (Geometry, error) {
	if len(params) != len(s.ParamNames) {
		return Geometry{}, fmt.Errorf("%s expects %d parameters (%s), got %d",
			s.Name, len(s.ParamNames), strings.Join(s.ParamNames, ", "), len(params))
	}
	if params[0] == 0 {
		return Geometry{}, geodesic.ErrDegenerateParams
	}

	g := Geometry{M: params[0]}
	if len(params) > 1 {
		g.A = params[1] / params[0]
	}
	if len(params) > 2 {
		g.Q = params[2]
	}
	return g, nil
}
