// Package engine defines the contract between the LP bridge and the
// underlying simplex engine. The engine owns the sparse matrix, the basis
// and the solve algorithm; the bridge only drives it through this interface.
package engine

import (
	"fmt"

	"github.com/fluxomics/ratlp/rat"
)

// Engine is the narrow surface the bridge consumes. Implementations wrap a
// concrete solver (see engine/highs). Values cross the boundary as exact
// rationals; how the engine stores them internally is its own business.
//
// Row and column indices are zero-based and must be valid for the current
// problem dimensions.
type Engine interface {
	// AddRow appends a constraint row with the given bounds and a sparse
	// coefficient vector over existing columns. An empty vector adds a
	// placeholder row whose bounds can be corrected afterwards.
	AddRow(lower, upper rat.Value, index []int, value []rat.Value) error

	// AddCol appends a variable with its objective coefficient, bounds and
	// a sparse coefficient vector over existing rows.
	AddCol(cost, lower, upper rat.Value, index []int, value []rat.Value) error

	ChangeRowBounds(row int, lower, upper rat.Value) error
	ChangeColBounds(col int, lower, upper rat.Value) error
	ChangeColCost(col int, cost rat.Value) error
	ChangeCoeff(row, col int, value rat.Value) error

	// SetMaximize flips the objective sense.
	SetMaximize(maximize bool) error

	NumRow() int
	NumCol() int

	// Typed option setters, keyed by engine-native option names.
	SetIntOption(name string, value int) error
	SetFloatOption(name string, value float64) error
	SetBoolOption(name string, value bool) error
	GetIntOption(name string) (int, error)

	// Solve runs the engine once and reports its termination status.
	// A non-decisive status is not an error; err is reserved for the
	// engine being unusable at all.
	Solve() (Status, error)

	// Basis reports the current basis, one status per column and row.
	Basis() (col, row []BasisStatus, err error)
	// SetBasis installs a warm-start basis.
	SetBasis(col, row []BasisStatus) error
	// ClearBasis discards any basis so the next solve starts cold.
	ClearBasis() error

	// Solution reads the current primal/dual vectors and objective value.
	// Only meaningful after a solve that produced a solution.
	Solution() (Solution, error)

	// Stats reports counters from the most recent solve.
	Stats() (Stats, error)

	// Write persists the model, or the full solver state when state is
	// set. The exact flag requests an exact-arithmetic rendition where the
	// engine supports one. File formats belong to the engine.
	Write(path string, state, exact bool) error

	Close()
}

// Well-known option names every implementation honors, translating them to
// its native option surface. Unrecognized names are passed through verbatim.
const (
	// OptIterationLimit caps simplex iterations per solve (int).
	OptIterationLimit = "iteration_limit"
	// OptTimeLimit caps solve wall time in seconds (float).
	OptTimeLimit = "time_limit"
	// OptFeasibilityTol is the primal feasibility tolerance (float).
	OptFeasibilityTol = "feasibility_tolerance"
	// OptOptimalityTol is the dual feasibility tolerance (float).
	OptOptimalityTol = "optimality_tolerance"
	// OptVerbose toggles engine log output (bool).
	OptVerbose = "verbose"
)

// Solution carries the raw vectors read back from the engine.
type Solution struct {
	ColValues []float64 // primal value per column
	ColDuals  []float64 // reduced cost per column
	RowValues []float64 // row activity
	RowDuals  []float64 // dual value per row
	Objective float64
}

// Stats carries informational counters from a solve attempt.
type Stats struct {
	SimplexIterations int
	// SolveTime is the wall time of the attempt in seconds.
	SolveTime float64
}

// Status is the engine's termination status.
type Status int

const (
	StatusNotSet Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
	StatusUnboundedOrInfeasible
	StatusIterationLimit
	StatusTimeLimit
	StatusNumericalFailure
	StatusSingularBasis
	StatusUnknown
)

var statusNames = []string{
	"not_set", "optimal", "infeasible", "unbounded",
	"unbounded_or_infeasible", "iteration_limit", "time_limit",
	"numerical_failure", "singular_basis", "unknown",
}

// String returns the lowercase status name, or "unknown" for
// unrecognized codes.
func (s Status) String() string {
	if int(s) >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Decisive reports whether s conclusively answers the optimization
// question. Infeasible and unbounded are results, not failures, so they
// need no fallback solve.
func (s Status) Decisive() bool {
	switch s {
	case StatusOptimal, StatusInfeasible, StatusUnbounded:
		return true
	}
	return false
}

// BasisStatus tags a row or column within a simplex basis.
type BasisStatus int

const (
	// BasisLower marks a nonbasic variable at its lower bound.
	BasisLower BasisStatus = iota
	// BasisBasic marks a basic variable.
	BasisBasic
	// BasisUpper marks a nonbasic variable at its upper bound.
	BasisUpper
	// BasisZero marks a free nonbasic variable held at zero.
	BasisZero
	// BasisFixed marks a variable fixed between equal bounds.
	BasisFixed
)

// String returns a human-readable basis tag.
func (s BasisStatus) String() string {
	switch s {
	case BasisLower:
		return "Lower"
	case BasisBasic:
		return "Basic"
	case BasisUpper:
		return "Upper"
	case BasisZero:
		return "Zero"
	case BasisFixed:
		return "Fixed"
	default:
		return "Unknown"
	}
}

// Error reports a failed engine operation.
type Error struct {
	Op  string // operation that failed, e.g. "AddRow"
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine: %s failed: %s", e.Op, e.Msg)
}

// NewError builds an Error for the given operation.
func NewError(op, msg string) error {
	return &Error{Op: op, Msg: msg}
}
