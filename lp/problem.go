// Package lp is the solving core of the ratlp bridge: it translates a
// sparse host model into solver rows and columns with exact rational
// coefficients, maintains a warm-start basis across repeated solves, and
// runs a two-tier solve strategy (a bounded warm attempt with a cold
// fallback) on top of a black-box engine.
package lp

import (
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fluxomics/ratlp/engine"
	"github.com/fluxomics/ratlp/logger"
	"github.com/fluxomics/ratlp/rat"
)

// Problem owns one engine-side LP instance for its lifetime: the sparse
// matrix and bounds live in the engine, the exact objective coefficients,
// parameters and warm-start basis live here. Not safe for concurrent use;
// one caller solves one Problem at a time.
type Problem struct {
	eng engine.Engine
	log zerolog.Logger

	rowNames []string
	colNames []string

	// objective keeps the exact rational objective coefficients so the
	// objective value can be recomputed exactly on request.
	objective []rat.Value

	cfg   config
	basis *basisCache

	status engine.Status
}

// New translates the host model into an engine-side LP and seeds the
// warm-start basis. Rows are fully created and bounded before any column
// is added, because column coefficient vectors reference rows by index.
func New(eng engine.Engine, m *Model) (*Problem, error) {
	p := &Problem{
		eng: eng,
		log: logger.Logger("lp"),
		cfg: defaultConfig(),
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	if err := p.translate(m); err != nil {
		return nil, err
	}
	p.basis = newBasisCache(eng)
	return p, nil
}

func (p *Problem) translate(m *Model) error {
	// Rows first: placeholder rows with zero bounds, corrected per sense
	// immediately after. The placeholder keeps row creation independent of
	// whether the sense pins a bound to infinity.
	for i, row := range m.Rows {
		if err := p.eng.AddRow(rat.Zero(), rat.Zero(), nil, nil); err != nil {
			return err
		}
		bound, err := p.coerceOrZero("New", rowDesc(i, row.Name), row.Bound)
		if err != nil {
			return err
		}
		lower, upper, err := boundsForSense(i, row.Sense, bound)
		if err != nil {
			return err
		}
		if err := p.eng.ChangeRowBounds(i, lower, upper); err != nil {
			return err
		}
		p.rowNames = append(p.rowNames, row.Name)
	}

	for j, col := range m.Cols {
		obj, err := p.coerceOrZero("New", colDesc(j, col.Name)+" objective", col.Objective)
		if err != nil {
			return err
		}
		lower, err := p.coerceOrZero("New", colDesc(j, col.Name)+" lower bound", col.Lower)
		if err != nil {
			return err
		}
		upper, err := p.coerceOrZero("New", colDesc(j, col.Name)+" upper bound", col.Upper)
		if err != nil {
			return err
		}
		index, value, err := p.sparseColumn(j, col)
		if err != nil {
			return err
		}
		if err := p.eng.AddCol(obj, lower, upper, index, value); err != nil {
			return err
		}
		p.colNames = append(p.colNames, col.Name)
		p.objective = append(p.objective, obj)
	}

	return p.eng.SetMaximize(m.Maximize)
}

// sparseColumn builds the coefficient vector of one column. Non-numeric
// coefficients are skipped, leaving the entry implicitly zero; this is a
// deliberate approximation for unsupported model content, not an error.
func (p *Problem) sparseColumn(j int, col Col) ([]int, []rat.Value, error) {
	index := make([]int, 0, len(col.Coeffs))
	value := make([]rat.Value, 0, len(col.Coeffs))
	for rowIdx, raw := range col.Coeffs {
		v, err := rat.Coerce(raw)
		if errors.Is(err, rat.ErrNonNumeric) {
			p.log.Warn().
				Int("row", rowIdx).
				Int("col", j).
				Msg("non-numeric coefficient skipped, treating as zero")
			continue
		}
		if err != nil {
			return nil, nil, errorf("New", "%s coefficient for row %d: %v",
				colDesc(j, col.Name), rowIdx, err)
		}
		index = append(index, rowIdx)
		value = append(value, v)
	}
	return index, value, nil
}

// boundsForSense maps a sense token and a rationalized bound to the row's
// bound pair. An unrecognized token is a hard configuration error.
func boundsForSense(row int, sense Sense, bound rat.Value) (rat.Value, rat.Value, error) {
	switch sense {
	case SenseEqual:
		return bound, bound, nil
	case SenseLessEqual:
		return rat.NegativeInf(), bound, nil
	case SenseGreaterEqual:
		return bound, rat.Inf(), nil
	default:
		return rat.Value{}, rat.Value{}, errorf("New",
			"row %d has invalid constraint sense %q", row, string(sense))
	}
}

// coerceOrZero rationalizes a heterogeneous numeric input. Non-numeric
// inputs fall back to exact zero with a warning; malformed strings are a
// hard error identifying what failed.
func (p *Problem) coerceOrZero(op, what string, raw any) (rat.Value, error) {
	v, err := rat.Coerce(raw)
	if errors.Is(err, rat.ErrNonNumeric) {
		p.log.Warn().Str("value", what).Msg("non-numeric value coerced to zero")
		return rat.Zero(), nil
	}
	if err != nil {
		return rat.Value{}, errorf(op, "%s: %v", what, err)
	}
	return v, nil
}

func rowDesc(i int, name string) string {
	if name == "" {
		return "row " + strconv.Itoa(i)
	}
	return "row " + strconv.Itoa(i) + " (" + name + ")"
}

func colDesc(j int, name string) string {
	if name == "" {
		return "column " + strconv.Itoa(j)
	}
	return "column " + strconv.Itoa(j) + " (" + name + ")"
}

// NumRows returns the constraint count.
func (p *Problem) NumRows() int {
	return p.eng.NumRow()
}

// NumCols returns the variable count.
func (p *Problem) NumCols() int {
	return p.eng.NumCol()
}

// SetMaximize changes the objective sense.
func (p *Problem) SetMaximize(maximize bool) error {
	return p.eng.SetMaximize(maximize)
}

// SetVariableBounds replaces both bounds of one variable. Bounds accept
// the same heterogeneous numeric inputs as construction.
func (p *Problem) SetVariableBounds(col int, lower, upper any) error {
	if err := p.checkCol("SetVariableBounds", col); err != nil {
		return err
	}
	lo, err := p.coerceOrZero("SetVariableBounds", colDesc(col, p.colName(col))+" lower bound", lower)
	if err != nil {
		return err
	}
	hi, err := p.coerceOrZero("SetVariableBounds", colDesc(col, p.colName(col))+" upper bound", upper)
	if err != nil {
		return err
	}
	return p.eng.ChangeColBounds(col, lo, hi)
}

// SetVariableObjective replaces one objective coefficient and keeps the
// exact coefficient store in sync.
func (p *Problem) SetVariableObjective(col int, value any) error {
	if err := p.checkCol("SetVariableObjective", col); err != nil {
		return err
	}
	v, err := p.coerceOrZero("SetVariableObjective", colDesc(col, p.colName(col))+" objective", value)
	if err != nil {
		return err
	}
	if err := p.eng.ChangeColCost(col, v); err != nil {
		return err
	}
	p.objective[col] = v
	return nil
}

// SetCoefficient replaces one constraint matrix entry.
func (p *Problem) SetCoefficient(row, col int, value any) error {
	if err := p.checkRow("SetCoefficient", row); err != nil {
		return err
	}
	if err := p.checkCol("SetCoefficient", col); err != nil {
		return err
	}
	v, err := p.coerceOrZero("SetCoefficient", "coefficient at row "+strconv.Itoa(row)+", column "+strconv.Itoa(col), value)
	if err != nil {
		return err
	}
	return p.eng.ChangeCoeff(row, col, v)
}

// SetConstraint replaces a row's sense and bound, re-deriving the bound
// pair the same way construction does.
func (p *Problem) SetConstraint(row int, sense Sense, bound any) error {
	if err := p.checkRow("SetConstraint", row); err != nil {
		return err
	}
	b, err := p.coerceOrZero("SetConstraint", rowDesc(row, p.rowName(row))+" bound", bound)
	if err != nil {
		return err
	}
	lower, upper, err := boundsForSense(row, sense, b)
	if err != nil {
		return err
	}
	return p.eng.ChangeRowBounds(row, lower, upper)
}

// Write persists either the full solver state or just the model file.
// Format ownership belongs to the engine; path and flags are forwarded.
func (p *Problem) Write(path string, state, exact bool) error {
	return p.eng.Write(path, state, exact)
}

// Close releases the basis buffers and the engine instance.
func (p *Problem) Close() {
	if p.basis != nil {
		p.basis.release()
		p.basis = nil
	}
	p.eng.Close()
}

func (p *Problem) checkRow(op string, row int) error {
	if row < 0 || row >= p.eng.NumRow() {
		return errorf(op, "row index %d out of range [0,%d)", row, p.eng.NumRow())
	}
	return nil
}

func (p *Problem) checkCol(op string, col int) error {
	if col < 0 || col >= p.eng.NumCol() {
		return errorf(op, "column index %d out of range [0,%d)", col, p.eng.NumCol())
	}
	return nil
}

func (p *Problem) rowName(i int) string {
	if i < len(p.rowNames) {
		return p.rowNames[i]
	}
	return ""
}

func (p *Problem) colName(j int) string {
	if j < len(p.colNames) {
		return p.colNames[j]
	}
	return ""
}
