package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fluxomics/ratlp/lp"
)

// modelFile is the on-disk YAML schema. Coefficients are keyed by row
// name rather than index; numeric values may be YAML numbers or exact
// strings such as "1/3".
type modelFile struct {
	Maximize bool      `yaml:"maximize"`
	Rows     []rowSpec `yaml:"rows"`
	Cols     []colSpec `yaml:"cols"`
}

type rowSpec struct {
	Name  string `yaml:"name"`
	Sense string `yaml:"sense"`
	Bound any    `yaml:"bound"`
}

type colSpec struct {
	Name      string         `yaml:"name"`
	Objective any            `yaml:"objective"`
	Lower     any            `yaml:"lower"`
	Upper     any            `yaml:"upper"`
	Coeffs    map[string]any `yaml:"coeffs"`
}

// loadModel reads a YAML model file and translates row-name coefficient
// keys into the row indices the bridge expects.
func loadModel(path string) (*lp.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model file %s", path)
	}
	var mf modelFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrapf(err, "parsing model file %s", path)
	}

	rowIndex := make(map[string]int, len(mf.Rows))
	m := &lp.Model{Maximize: mf.Maximize}
	for i, r := range mf.Rows {
		if r.Name == "" {
			return nil, errors.Errorf("row %d has no name", i)
		}
		if _, dup := rowIndex[r.Name]; dup {
			return nil, errors.Errorf("duplicate row name %q", r.Name)
		}
		rowIndex[r.Name] = i
		m.Rows = append(m.Rows, lp.Row{
			Name:  r.Name,
			Sense: lp.Sense(r.Sense),
			Bound: r.Bound,
		})
	}
	for _, c := range mf.Cols {
		coeffs := make(map[int]any, len(c.Coeffs))
		for rowName, v := range c.Coeffs {
			i, ok := rowIndex[rowName]
			if !ok {
				return nil, errors.Errorf("column %q references unknown row %q", c.Name, rowName)
			}
			coeffs[i] = v
		}
		m.Cols = append(m.Cols, lp.Col{
			Name:      c.Name,
			Objective: c.Objective,
			Lower:     c.Lower,
			Upper:     c.Upper,
			Coeffs:    coeffs,
		})
	}
	return m, nil
}
