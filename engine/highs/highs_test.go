//go:build (linux || darwin) && (amd64 || arm64)

package highs

import (
	"context"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluxomics/ratlp/lp"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// identityModel is the reference problem:
//
//	Maximize v1 + v2
//	s.t.     v1 = 1, v2 = 1
//	         0 <= v1,v2 <= 10
//
// Optimal: v1 = v2 = 1, objective 2.
func identityModel() *lp.Model {
	return &lp.Model{
		Maximize: true,
		Rows: []lp.Row{
			{Name: "m1", Sense: lp.SenseEqual, Bound: 1},
			{Name: "m2", Sense: lp.SenseEqual, Bound: 1},
		},
		Cols: []lp.Col{
			{Name: "v1", Objective: 1, Lower: 0, Upper: 10, Coeffs: map[int]any{0: 1}},
			{Name: "v2", Objective: 1, Lower: 0, Upper: 10, Coeffs: map[int]any{1: 1}},
		},
	}
}

func TestIdentitySolve(t *testing.T) {
	eng, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p, err := lp.New(eng, identityModel())
	if err != nil {
		t.Fatalf("lp.New failed: %v", err)
	}
	defer p.Close()

	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if status != "optimal" {
		t.Fatalf("expected optimal, got %s", status)
	}

	sol, err := p.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !almostEqual(sol.ColValues[0], 1.0, 1e-6) || !almostEqual(sol.ColValues[1], 1.0, 1e-6) {
		t.Errorf("primal = %v, expected [1 1]", sol.ColValues)
	}
	if !almostEqual(sol.Objective, 2.0, 1e-6) {
		t.Errorf("objective = %f, expected 2", sol.Objective)
	}
	if sol.ObjectiveExact == nil || sol.ObjectiveExact.Cmp(big.NewRat(2, 1)) != 0 {
		t.Errorf("exact objective = %v, expected 2", sol.ObjectiveExact)
	}
	if !almostEqual(sol.VarValues["v1"], 1.0, 1e-6) {
		t.Errorf("v1 = %f, expected 1", sol.VarValues["v1"])
	}
}

// TestInfeasible pins a G-row at 5 that no column can reach under an
// upper bound of 0.
func TestInfeasible(t *testing.T) {
	eng, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m := &lp.Model{
		Rows: []lp.Row{{Name: "demand", Sense: lp.SenseGreaterEqual, Bound: 5}},
		Cols: []lp.Col{{Name: "v", Objective: 1, Lower: 0, Upper: 0, Coeffs: map[int]any{0: 1}}},
	}
	p, err := lp.New(eng, m)
	if err != nil {
		t.Fatalf("lp.New failed: %v", err)
	}
	defer p.Close()

	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if status != "infeasible" {
		t.Fatalf("expected infeasible, got %s", status)
	}

	sol, err := p.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if sol.Status != "infeasible" || sol.ColValues != nil {
		t.Errorf("expected a status-only result, got %+v", sol)
	}
}

// TestWarmResolve solves, mutates a bound, and solves again; the second
// solve starts from the cached basis and must stay optimal.
func TestWarmResolve(t *testing.T) {
	eng, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p, err := lp.New(eng, identityModel())
	if err != nil {
		t.Fatalf("lp.New failed: %v", err)
	}
	defer p.Close()

	if status, err := p.Solve(context.Background()); err != nil || status != "optimal" {
		t.Fatalf("first solve: status %s, err %v", status, err)
	}
	if err := p.SetConstraint(0, lp.SenseEqual, "3/2"); err != nil {
		t.Fatalf("SetConstraint failed: %v", err)
	}
	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("second solve failed: %v", err)
	}
	if status != "optimal" {
		t.Fatalf("expected optimal after re-solve, got %s", status)
	}
	obj, err := p.ObjectiveValue()
	if err != nil {
		t.Fatalf("ObjectiveValue failed: %v", err)
	}
	if !almostEqual(obj, 2.5, 1e-6) {
		t.Errorf("objective = %f, expected 2.5", obj)
	}
}

func TestUnbounded(t *testing.T) {
	eng, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m := &lp.Model{
		Maximize: true,
		Rows:     []lp.Row{{Name: "floor", Sense: lp.SenseGreaterEqual, Bound: 0}},
		Cols: []lp.Col{{
			Name: "v", Objective: 1, Lower: 0, Upper: math.Inf(1),
			Coeffs: map[int]any{0: 1},
		}},
	}
	p, err := lp.New(eng, m)
	if err != nil {
		t.Fatalf("lp.New failed: %v", err)
	}
	defer p.Close()

	status, err := p.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if status != "unbounded" && status != "unbounded_or_infeasible" {
		t.Fatalf("expected an unbounded status, got %s", status)
	}
}

func TestWriteModel(t *testing.T) {
	eng, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	p, err := lp.New(eng, identityModel())
	if err != nil {
		t.Fatalf("lp.New failed: %v", err)
	}
	defer p.Close()

	path := filepath.Join(t.TempDir(), "model.lp")
	if err := p.Write(path, false, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("model file not written: %v", err)
	}
}
