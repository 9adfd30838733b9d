package lp

import "fmt"

// Sense is a constraint-sense token. It decides which of a row's two
// bounds is finite and which is pinned to infinity.
type Sense string

const (
	// SenseEqual fixes both row bounds to the same value.
	SenseEqual Sense = "E"
	// SenseLessEqual leaves the lower bound unbounded.
	SenseLessEqual Sense = "L"
	// SenseGreaterEqual leaves the upper bound unbounded.
	SenseGreaterEqual Sense = "G"
)

// Valid reports whether s is a recognized sense token.
func (s Sense) Valid() bool {
	switch s {
	case SenseEqual, SenseLessEqual, SenseGreaterEqual:
		return true
	}
	return false
}

// Row describes one constraint of the host model: a sense token and a
// scalar bound. Bound accepts any numeric-like input understood by
// rat.Coerce (int, float, *big.Rat, "p/q" string, ...).
type Row struct {
	Name  string
	Sense Sense
	Bound any
}

// Col describes one variable of the host model. Objective, Lower and
// Upper accept the same heterogeneous numeric inputs as Row.Bound.
// Coeffs maps row index to the variable's coefficient in that row;
// absent rows are implicitly zero.
type Col struct {
	Name      string
	Objective any
	Lower     any
	Upper     any
	Coeffs    map[int]any
}

// Model is the sparse bipartite host model consumed at construction:
// rows are constraints, columns are variables referencing rows by index.
type Model struct {
	Maximize bool
	Rows     []Row
	Cols     []Col
}

// validate checks structural consistency before translation.
func (m *Model) validate() error {
	for j, col := range m.Cols {
		for rowIdx := range col.Coeffs {
			if rowIdx < 0 || rowIdx >= len(m.Rows) {
				return errorf("New", "column %d (%s) references row %d, model has %d rows",
					j, col.Name, rowIdx, len(m.Rows))
			}
		}
	}
	return nil
}

// Error reports invalid input or misconfiguration. Engine outcomes are
// never wrapped in it; those surface as statuses.
type Error struct {
	Op  string // operation that failed, e.g. "SetParameter"
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lp: %s: %s", e.Op, e.Msg)
}

func errorf(op, format string, args ...any) error {
	return &Error{Op: op, Msg: fmt.Sprintf(format, args...)}
}
