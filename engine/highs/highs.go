//go:build (linux || darwin) && (amd64 || arm64)

// Package highs implements engine.Engine on top of the HiGHS solver
// through its C API. Exact rational values are converted to float64 at the
// C boundary; the engine's internal numeric format is its own.
//
// Linking requires a system installation of libhighs.
package highs

/*
#cgo LDFLAGS: -lhighs -lm
#cgo darwin CFLAGS: -I/usr/local/include/highs -I/opt/homebrew/include/highs
#cgo linux CFLAGS: -I/usr/include/highs

#include <stdlib.h>
#include <stdint.h>
#include "highs_c_api.h"
*/
import "C"

import (
	"math"
	"runtime"
	"unsafe"

	"github.com/fluxomics/ratlp/engine"
	"github.com/fluxomics/ratlp/rat"
)

// callStatus is the tri-state return code of every HiGHS C call.
type callStatus int

const (
	callError   callStatus = -1
	callOK      callStatus = 0
	callWarning callStatus = 1
)

func (s callStatus) err(op string) error {
	if s == callOK || s == callWarning {
		return nil
	}
	return engine.NewError(op, "HiGHS returned an error status")
}

// Solver wraps one HiGHS instance. It is not safe for concurrent use;
// the bridge drives it from a single goroutine.
type Solver struct {
	ptr unsafe.Pointer
}

var _ engine.Engine = (*Solver)(nil)

// New creates a HiGHS instance with log output disabled.
// Close must be called to release the native resources.
func New() (*Solver, error) {
	ptr := C.Highs_create()
	if ptr == nil {
		return nil, engine.NewError("New", "failed to create HiGHS instance")
	}
	s := &Solver{ptr: ptr}
	runtime.SetFinalizer(s, (*Solver).Close)
	// Quiet by default; the bridge re-enables output via OptVerbose.
	_ = s.SetBoolOption(engine.OptVerbose, false)
	return s, nil
}

// Close releases the native instance. Safe to call more than once.
func (s *Solver) Close() {
	if s.ptr != nil {
		C.Highs_destroy(s.ptr)
		s.ptr = nil
	}
}

// Infinity returns the value HiGHS treats as unbounded.
func (s *Solver) Infinity() float64 {
	return float64(C.Highs_getInfinity(s.ptr))
}

func (s *Solver) toC(v rat.Value) C.double {
	f := v.Float64()
	switch {
	case math.IsInf(f, 1):
		return C.Highs_getInfinity(s.ptr)
	case math.IsInf(f, -1):
		return -C.Highs_getInfinity(s.ptr)
	}
	return C.double(f)
}

func sparseToC(index []int, value []rat.Value) ([]C.HighsInt, []C.double) {
	if len(index) == 0 {
		return nil, nil
	}
	cIndex := make([]C.HighsInt, len(index))
	cValue := make([]C.double, len(value))
	for i, idx := range index {
		cIndex[i] = C.HighsInt(idx)
		cValue[i] = C.double(value[i].Float64())
	}
	return cIndex, cValue
}

// AddRow appends a constraint row. An empty coefficient vector adds a
// placeholder row.
func (s *Solver) AddRow(lower, upper rat.Value, index []int, value []rat.Value) error {
	if len(index) != len(value) {
		return engine.NewError("AddRow", "index and value must have same length")
	}
	cIndex, cValue := sparseToC(index, value)
	var pIndex *C.HighsInt
	var pValue *C.double
	if len(cIndex) > 0 {
		pIndex = &cIndex[0]
		pValue = &cValue[0]
	}
	st := callStatus(C.Highs_addRow(s.ptr,
		s.toC(lower), s.toC(upper),
		C.HighsInt(len(index)), pIndex, pValue))
	return st.err("AddRow")
}

// AddCol appends a variable with a sparse coefficient vector over rows.
func (s *Solver) AddCol(cost, lower, upper rat.Value, index []int, value []rat.Value) error {
	if len(index) != len(value) {
		return engine.NewError("AddCol", "index and value must have same length")
	}
	cIndex, cValue := sparseToC(index, value)
	var pIndex *C.HighsInt
	var pValue *C.double
	if len(cIndex) > 0 {
		pIndex = &cIndex[0]
		pValue = &cValue[0]
	}
	st := callStatus(C.Highs_addCol(s.ptr,
		s.toC(cost), s.toC(lower), s.toC(upper),
		C.HighsInt(len(index)), pIndex, pValue))
	return st.err("AddCol")
}

// ChangeRowBounds replaces both bounds of one row.
func (s *Solver) ChangeRowBounds(row int, lower, upper rat.Value) error {
	cLower := []C.double{s.toC(lower)}
	cUpper := []C.double{s.toC(upper)}
	st := callStatus(C.Highs_changeRowsBoundsByRange(s.ptr,
		C.HighsInt(row), C.HighsInt(row), &cLower[0], &cUpper[0]))
	return st.err("ChangeRowBounds")
}

// ChangeColBounds replaces both bounds of one column.
func (s *Solver) ChangeColBounds(col int, lower, upper rat.Value) error {
	st := callStatus(C.Highs_changeColBounds(s.ptr,
		C.HighsInt(col), s.toC(lower), s.toC(upper)))
	return st.err("ChangeColBounds")
}

// ChangeColCost replaces one objective coefficient.
func (s *Solver) ChangeColCost(col int, cost rat.Value) error {
	st := callStatus(C.Highs_changeColCost(s.ptr,
		C.HighsInt(col), s.toC(cost)))
	return st.err("ChangeColCost")
}

// ChangeCoeff replaces one constraint matrix entry.
func (s *Solver) ChangeCoeff(row, col int, value rat.Value) error {
	st := callStatus(C.Highs_changeCoeff(s.ptr,
		C.HighsInt(row), C.HighsInt(col), s.toC(value)))
	return st.err("ChangeCoeff")
}

// SetMaximize flips the objective sense.
func (s *Solver) SetMaximize(maximize bool) error {
	sense := C.kHighsObjSenseMinimize
	if maximize {
		sense = C.kHighsObjSenseMaximize
	}
	st := callStatus(C.Highs_changeObjectiveSense(s.ptr, C.HighsInt(sense)))
	return st.err("SetMaximize")
}

// NumRow returns the number of constraint rows.
func (s *Solver) NumRow() int {
	return int(C.Highs_getNumRow(s.ptr))
}

// NumCol returns the number of variable columns.
func (s *Solver) NumCol() int {
	return int(C.Highs_getNumCol(s.ptr))
}

// optionName translates the engine's well-known option names to HiGHS
// native ones; anything else passes through untouched.
func optionName(name string) string {
	switch name {
	case engine.OptIterationLimit:
		return "simplex_iteration_limit"
	case engine.OptTimeLimit:
		return "time_limit"
	case engine.OptFeasibilityTol:
		return "primal_feasibility_tolerance"
	case engine.OptOptimalityTol:
		return "dual_feasibility_tolerance"
	case engine.OptVerbose:
		return "output_flag"
	}
	return name
}

// SetIntOption sets an integer option.
func (s *Solver) SetIntOption(name string, value int) error {
	cName := C.CString(optionName(name))
	defer C.free(unsafe.Pointer(cName))
	st := callStatus(C.Highs_setIntOptionValue(s.ptr, cName, C.HighsInt(value)))
	return st.err("SetIntOption")
}

// SetFloatOption sets a floating-point option.
func (s *Solver) SetFloatOption(name string, value float64) error {
	cName := C.CString(optionName(name))
	defer C.free(unsafe.Pointer(cName))
	st := callStatus(C.Highs_setDoubleOptionValue(s.ptr, cName, C.double(value)))
	return st.err("SetFloatOption")
}

// SetBoolOption sets a boolean option.
func (s *Solver) SetBoolOption(name string, value bool) error {
	cName := C.CString(optionName(name))
	defer C.free(unsafe.Pointer(cName))
	var cVal C.HighsInt
	if value {
		cVal = 1
	}
	st := callStatus(C.Highs_setBoolOptionValue(s.ptr, cName, cVal))
	return st.err("SetBoolOption")
}

// GetIntOption reads an integer option back.
func (s *Solver) GetIntOption(name string) (int, error) {
	cName := C.CString(optionName(name))
	defer C.free(unsafe.Pointer(cName))
	var val C.HighsInt
	st := callStatus(C.Highs_getIntOptionValue(s.ptr, cName, &val))
	if err := st.err("GetIntOption"); err != nil {
		return 0, err
	}
	return int(val), nil
}

// Solve runs HiGHS once. A failing run maps to the numerical-failure
// status so the caller's fallback logic can take over; err is reserved
// for an unusable instance.
func (s *Solver) Solve() (engine.Status, error) {
	if s.ptr == nil {
		return engine.StatusNotSet, engine.NewError("Solve", "solver is closed")
	}
	if callStatus(C.Highs_run(s.ptr)) == callError {
		return engine.StatusNumericalFailure, nil
	}
	return statusFromC(C.Highs_getModelStatus(s.ptr)), nil
}

func statusFromC(status C.HighsInt) engine.Status {
	switch status {
	case C.kHighsModelStatusOptimal:
		return engine.StatusOptimal
	case C.kHighsModelStatusInfeasible:
		return engine.StatusInfeasible
	case C.kHighsModelStatusUnbounded:
		return engine.StatusUnbounded
	case C.kHighsModelStatusUnboundedOrInfeasible:
		return engine.StatusUnboundedOrInfeasible
	case C.kHighsModelStatusIterationLimit:
		return engine.StatusIterationLimit
	case C.kHighsModelStatusTimeLimit:
		return engine.StatusTimeLimit
	case C.kHighsModelStatusSolveError,
		C.kHighsModelStatusPresolveError,
		C.kHighsModelStatusPostsolveError:
		return engine.StatusNumericalFailure
	default:
		return engine.StatusUnknown
	}
}

func basisToC(b engine.BasisStatus) C.HighsInt {
	switch b {
	case engine.BasisLower:
		return C.kHighsBasisStatusLower
	case engine.BasisBasic:
		return C.kHighsBasisStatusBasic
	case engine.BasisUpper:
		return C.kHighsBasisStatusUpper
	case engine.BasisZero:
		return C.kHighsBasisStatusZero
	case engine.BasisFixed:
		return C.kHighsBasisStatusNonbasic
	default:
		return C.kHighsBasisStatusLower
	}
}

func basisFromC(b C.HighsInt) engine.BasisStatus {
	switch b {
	case C.kHighsBasisStatusLower:
		return engine.BasisLower
	case C.kHighsBasisStatusBasic:
		return engine.BasisBasic
	case C.kHighsBasisStatusUpper:
		return engine.BasisUpper
	case C.kHighsBasisStatusZero:
		return engine.BasisZero
	case C.kHighsBasisStatusNonbasic:
		return engine.BasisFixed
	default:
		return engine.BasisLower
	}
}

// Basis reads the current basis, one status per column and row.
func (s *Solver) Basis() ([]engine.BasisStatus, []engine.BasisStatus, error) {
	numCol, numRow := s.NumCol(), s.NumRow()
	if numCol == 0 && numRow == 0 {
		return nil, nil, nil
	}
	cCol := make([]C.HighsInt, max(numCol, 1))
	cRow := make([]C.HighsInt, max(numRow, 1))
	st := callStatus(C.Highs_getBasis(s.ptr, &cCol[0], &cRow[0]))
	if err := st.err("Basis"); err != nil {
		return nil, nil, err
	}
	col := make([]engine.BasisStatus, numCol)
	row := make([]engine.BasisStatus, numRow)
	for i := range col {
		col[i] = basisFromC(cCol[i])
	}
	for i := range row {
		row[i] = basisFromC(cRow[i])
	}
	return col, row, nil
}

// SetBasis installs a warm-start basis.
func (s *Solver) SetBasis(col, row []engine.BasisStatus) error {
	if len(col) != s.NumCol() || len(row) != s.NumRow() {
		return engine.NewError("SetBasis", "basis length does not match problem dimensions")
	}
	if len(col) == 0 && len(row) == 0 {
		return nil
	}
	cCol := make([]C.HighsInt, max(len(col), 1))
	cRow := make([]C.HighsInt, max(len(row), 1))
	for i, b := range col {
		cCol[i] = basisToC(b)
	}
	for i, b := range row {
		cRow[i] = basisToC(b)
	}
	st := callStatus(C.Highs_setBasis(s.ptr, &cCol[0], &cRow[0]))
	return st.err("SetBasis")
}

// ClearBasis drops all solver state so the next run starts from a
// trivial basis.
func (s *Solver) ClearBasis() error {
	st := callStatus(C.Highs_clearSolver(s.ptr))
	return st.err("ClearBasis")
}

// Solution reads the primal/dual vectors and objective value of the most
// recent solve.
func (s *Solver) Solution() (engine.Solution, error) {
	numCol, numRow := s.NumCol(), s.NumRow()
	sol := engine.Solution{
		ColValues: make([]float64, numCol),
		ColDuals:  make([]float64, numCol),
		RowValues: make([]float64, numRow),
		RowDuals:  make([]float64, numRow),
	}
	var pColValue, pColDual, pRowValue, pRowDual *C.double
	colValue := make([]C.double, max(numCol, 1))
	colDual := make([]C.double, max(numCol, 1))
	rowValue := make([]C.double, max(numRow, 1))
	rowDual := make([]C.double, max(numRow, 1))
	if numCol > 0 {
		pColValue, pColDual = &colValue[0], &colDual[0]
	}
	if numRow > 0 {
		pRowValue, pRowDual = &rowValue[0], &rowDual[0]
	}
	st := callStatus(C.Highs_getSolution(s.ptr, pColValue, pColDual, pRowValue, pRowDual))
	if err := st.err("Solution"); err != nil {
		return engine.Solution{}, err
	}
	for i := 0; i < numCol; i++ {
		sol.ColValues[i] = float64(colValue[i])
		sol.ColDuals[i] = float64(colDual[i])
	}
	for i := 0; i < numRow; i++ {
		sol.RowValues[i] = float64(rowValue[i])
		sol.RowDuals[i] = float64(rowDual[i])
	}
	sol.Objective = float64(C.Highs_getObjectiveValue(s.ptr))
	return sol, nil
}

// Stats reports counters from the most recent solve.
func (s *Solver) Stats() (engine.Stats, error) {
	cName := C.CString("simplex_iteration_count")
	defer C.free(unsafe.Pointer(cName))
	var iters C.HighsInt
	st := callStatus(C.Highs_getIntInfoValue(s.ptr, cName, &iters))
	if err := st.err("Stats"); err != nil {
		return engine.Stats{}, err
	}
	return engine.Stats{
		SimplexIterations: int(iters),
		SolveTime:         float64(C.Highs_getRunTime(s.ptr)),
	}, nil
}

// Write persists the model file; with state set, the basis is written to
// path+".bas" alongside it. HiGHS has no exact-arithmetic writer, so the
// exact flag is accepted and ignored.
func (s *Solver) Write(path string, state, exact bool) error {
	_ = exact
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))
	if err := callStatus(C.Highs_writeModel(s.ptr, cPath)).err("Write"); err != nil {
		return err
	}
	if !state {
		return nil
	}
	cBasis := C.CString(path + ".bas")
	defer C.free(unsafe.Pointer(cBasis))
	return callStatus(C.Highs_writeBasis(s.ptr, cBasis)).err("Write")
}
