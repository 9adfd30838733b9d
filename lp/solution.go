package lp

import (
	"math/big"

	"github.com/fluxomics/ratlp/engine"
	"github.com/fluxomics/ratlp/rat"
)

// Solution is the extracted result of a terminal solve. For non-optimal
// statuses only Status is populated; vectors and objective are absent.
type Solution struct {
	Status string

	// Positional vectors, sized to column / row count.
	ColValues []float64
	ColDuals  []float64
	RowValues []float64
	RowDuals  []float64

	Objective float64
	// ObjectiveExact is c·x recomputed in rational arithmetic from the
	// exact objective coefficients; nil when the solve was not optimal.
	ObjectiveExact *big.Rat

	// The same vectors keyed by entity name, for callers that track
	// variables and constraints by identifier.
	VarValues       map[string]float64
	ConstraintDuals map[string]float64
}

// IsOptimal reports whether the solution carries vectors.
func (s *Solution) IsOptimal() bool {
	return s.Status == "optimal"
}

// Extract reads the primal/dual vectors and objective value out of the
// engine. If the last solve was not optimal the result carries only the
// status.
func (p *Problem) Extract() (*Solution, error) {
	if p.status != engine.StatusOptimal {
		return &Solution{Status: p.Status()}, nil
	}
	raw, err := p.eng.Solution()
	if err != nil {
		return nil, err
	}
	sol := &Solution{
		Status:          p.Status(),
		ColValues:       raw.ColValues,
		ColDuals:        raw.ColDuals,
		RowValues:       raw.RowValues,
		RowDuals:        raw.RowDuals,
		Objective:       raw.Objective,
		VarValues:       make(map[string]float64, len(p.colNames)),
		ConstraintDuals: make(map[string]float64, len(p.rowNames)),
	}
	for j, name := range p.colNames {
		if name != "" && j < len(raw.ColValues) {
			sol.VarValues[name] = raw.ColValues[j]
		}
	}
	for i, name := range p.rowNames {
		if name != "" && i < len(raw.RowDuals) {
			sol.ConstraintDuals[name] = raw.RowDuals[i]
		}
	}
	if exact, err := p.exactObjective(raw.ColValues); err == nil {
		sol.ObjectiveExact = exact
	}
	return sol, nil
}

// ObjectiveValue returns the objective of the last optimal solve as a
// float. It is an error to ask before an optimal termination.
func (p *Problem) ObjectiveValue() (float64, error) {
	if p.status != engine.StatusOptimal {
		return 0, errorf("ObjectiveValue", "no optimal solution, status is %q", p.Status())
	}
	raw, err := p.eng.Solution()
	if err != nil {
		return 0, err
	}
	return raw.Objective, nil
}

// ObjectiveValueExact returns the objective recomputed in rational
// arithmetic: exact in the objective coefficients, with the primal values
// coerced through the 15-digit float conversion.
func (p *Problem) ObjectiveValueExact() (*big.Rat, error) {
	if p.status != engine.StatusOptimal {
		return nil, errorf("ObjectiveValueExact", "no optimal solution, status is %q", p.Status())
	}
	raw, err := p.eng.Solution()
	if err != nil {
		return nil, err
	}
	return p.exactObjective(raw.ColValues)
}

func (p *Problem) exactObjective(primal []float64) (*big.Rat, error) {
	total := rat.Zero()
	for j, c := range p.objective {
		if j >= len(primal) {
			break
		}
		x, err := rat.FromFloat64(primal[j])
		if err != nil {
			return nil, err
		}
		total = total.Add(c.Mul(x))
	}
	return total.Rat(), nil
}
