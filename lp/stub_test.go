package lp

import (
	"github.com/fluxomics/ratlp/engine"
	"github.com/fluxomics/ratlp/rat"
)

// stubEngine is a scripted engine: it records every mutation and plays
// back a programmed sequence of solve statuses, so the orchestration
// logic can be tested without a real solver.
type stubEngine struct {
	rows []stubRow
	cols []stubCol

	maximize bool
	ops      []string // call sequence, e.g. "AddRow", "AddCol"

	intOpts   map[string]int
	floatOpts map[string]float64
	boolOpts  map[string]bool

	// statuses is consumed one per Solve call; when exhausted, Solve
	// reports optimal.
	statuses []engine.Status
	solves   int
	// limitsSeen records the iteration limit in force at each Solve call.
	limitsSeen []int

	setBasisCalls   int
	clearBasisCalls int
	lastSetCol      []engine.BasisStatus
	lastSetRow      []engine.BasisStatus

	// retBasisCol/Row, when set, are what Basis() reports.
	retBasisCol []engine.BasisStatus
	retBasisRow []engine.BasisStatus

	solution engine.Solution
	stats    engine.Stats

	closed bool
}

type stubRow struct {
	lower, upper rat.Value
	index        []int
	value        []rat.Value
}

type stubCol struct {
	cost, lower, upper rat.Value
	index              []int
	value              []rat.Value
}

func newStubEngine(statuses ...engine.Status) *stubEngine {
	return &stubEngine{
		intOpts:   make(map[string]int),
		floatOpts: make(map[string]float64),
		boolOpts:  make(map[string]bool),
		statuses:  statuses,
	}
}

var _ engine.Engine = (*stubEngine)(nil)

func (s *stubEngine) AddRow(lower, upper rat.Value, index []int, value []rat.Value) error {
	s.ops = append(s.ops, "AddRow")
	s.rows = append(s.rows, stubRow{lower: lower, upper: upper, index: index, value: value})
	return nil
}

func (s *stubEngine) AddCol(cost, lower, upper rat.Value, index []int, value []rat.Value) error {
	s.ops = append(s.ops, "AddCol")
	s.cols = append(s.cols, stubCol{cost: cost, lower: lower, upper: upper, index: index, value: value})
	return nil
}

func (s *stubEngine) ChangeRowBounds(row int, lower, upper rat.Value) error {
	s.ops = append(s.ops, "ChangeRowBounds")
	s.rows[row].lower = lower
	s.rows[row].upper = upper
	return nil
}

func (s *stubEngine) ChangeColBounds(col int, lower, upper rat.Value) error {
	s.cols[col].lower = lower
	s.cols[col].upper = upper
	return nil
}

func (s *stubEngine) ChangeColCost(col int, cost rat.Value) error {
	s.cols[col].cost = cost
	return nil
}

func (s *stubEngine) ChangeCoeff(row, col int, value rat.Value) error {
	s.ops = append(s.ops, "ChangeCoeff")
	return nil
}

func (s *stubEngine) SetMaximize(maximize bool) error {
	s.maximize = maximize
	return nil
}

func (s *stubEngine) NumRow() int { return len(s.rows) }
func (s *stubEngine) NumCol() int { return len(s.cols) }

func (s *stubEngine) SetIntOption(name string, value int) error {
	s.intOpts[name] = value
	return nil
}

func (s *stubEngine) SetFloatOption(name string, value float64) error {
	s.floatOpts[name] = value
	return nil
}

func (s *stubEngine) SetBoolOption(name string, value bool) error {
	s.boolOpts[name] = value
	return nil
}

func (s *stubEngine) GetIntOption(name string) (int, error) {
	return s.intOpts[name], nil
}

func (s *stubEngine) Solve() (engine.Status, error) {
	s.limitsSeen = append(s.limitsSeen, s.intOpts[engine.OptIterationLimit])
	status := engine.StatusOptimal
	if s.solves < len(s.statuses) {
		status = s.statuses[s.solves]
	}
	s.solves++
	return status, nil
}

func (s *stubEngine) Basis() ([]engine.BasisStatus, []engine.BasisStatus, error) {
	col := s.retBasisCol
	row := s.retBasisRow
	if col == nil {
		col = make([]engine.BasisStatus, s.NumCol())
	}
	if row == nil {
		row = make([]engine.BasisStatus, s.NumRow())
	}
	return col, row, nil
}

func (s *stubEngine) SetBasis(col, row []engine.BasisStatus) error {
	s.setBasisCalls++
	s.lastSetCol = append([]engine.BasisStatus(nil), col...)
	s.lastSetRow = append([]engine.BasisStatus(nil), row...)
	return nil
}

func (s *stubEngine) ClearBasis() error {
	s.clearBasisCalls++
	return nil
}

func (s *stubEngine) Solution() (engine.Solution, error) {
	sol := s.solution
	if sol.ColValues == nil {
		sol.ColValues = make([]float64, s.NumCol())
		sol.ColDuals = make([]float64, s.NumCol())
		sol.RowValues = make([]float64, s.NumRow())
		sol.RowDuals = make([]float64, s.NumRow())
	}
	return sol, nil
}

func (s *stubEngine) Stats() (engine.Stats, error) {
	return s.stats, nil
}

func (s *stubEngine) Write(path string, state, exact bool) error {
	s.ops = append(s.ops, "Write")
	return nil
}

func (s *stubEngine) Close() {
	s.closed = true
}
