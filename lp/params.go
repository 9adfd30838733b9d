package lp

import (
	"math"
	"sort"
	"strings"

	"github.com/fluxomics/ratlp/engine"
)

// defaultResetCutoff caps the iteration limit of a warm-start attempt, so
// a stuck warm basis cannot run away before the cold fallback gets its
// turn. Tunable through the reset_iteration_cutoff parameter.
const defaultResetCutoff = 10000

// config holds the caller-visible parameters. iterationLimit zero means
// "engine default" (effectively unlimited).
type config struct {
	iterationLimit int
	timeLimit      float64
	feasibilityTol float64
	optimalityTol  float64
	verbosity      int
	resetCutoff    int
}

func defaultConfig() config {
	return config{
		timeLimit:   math.Inf(1),
		resetCutoff: defaultResetCutoff,
	}
}

// ParamIterationLimit and friends are the recognized parameter names for
// SetParameter and the solve-time overrides.
const (
	ParamIterationLimit       = "iteration_limit"
	ParamTimeLimit            = "time_limit"
	ParamFeasibilityTol       = "feasibility_tolerance"
	ParamOptimalityTol        = "optimality_tolerance"
	ParamVerbosity            = "verbosity"
	ParamResetIterationCutoff = "reset_iteration_cutoff"
)

// paramKind is the value type a parameter accepts, validated at call time.
type paramKind int

const (
	kindInt paramKind = iota
	kindFloat
)

// paramSpec binds a parameter name to its kind and setter. The table is
// fixed; unknown names fail with a naming error instead of falling
// through silently.
type paramSpec struct {
	kind paramKind
	set  func(p *Problem, i int, f float64) error
}

var paramTable = map[string]paramSpec{
	ParamIterationLimit: {kindInt, func(p *Problem, i int, _ float64) error {
		if err := p.eng.SetIntOption(engine.OptIterationLimit, i); err != nil {
			return err
		}
		p.cfg.iterationLimit = i
		return nil
	}},
	ParamTimeLimit: {kindFloat, func(p *Problem, _ int, f float64) error {
		if err := p.eng.SetFloatOption(engine.OptTimeLimit, f); err != nil {
			return err
		}
		p.cfg.timeLimit = f
		return nil
	}},
	ParamFeasibilityTol: {kindFloat, func(p *Problem, _ int, f float64) error {
		if err := p.eng.SetFloatOption(engine.OptFeasibilityTol, f); err != nil {
			return err
		}
		p.cfg.feasibilityTol = f
		return nil
	}},
	ParamOptimalityTol: {kindFloat, func(p *Problem, _ int, f float64) error {
		if err := p.eng.SetFloatOption(engine.OptOptimalityTol, f); err != nil {
			return err
		}
		p.cfg.optimalityTol = f
		return nil
	}},
	ParamVerbosity: {kindInt, func(p *Problem, i int, _ float64) error {
		if err := p.eng.SetBoolOption(engine.OptVerbose, i > 0); err != nil {
			return err
		}
		p.cfg.verbosity = i
		return nil
	}},
	// Internal to the orchestrator; never forwarded to the engine.
	ParamResetIterationCutoff: {kindInt, func(p *Problem, i int, _ float64) error {
		p.cfg.resetCutoff = i
		return nil
	}},
}

// SetParameter sets a recognized parameter by name. Unrecognized names
// and mismatched value kinds fail with an error naming the parameter.
func (p *Problem) SetParameter(name string, value any) error {
	spec, ok := paramTable[name]
	if !ok {
		return errorf("SetParameter", "unknown parameter %q (recognized: %s)",
			name, strings.Join(paramNames(), ", "))
	}
	switch spec.kind {
	case kindInt:
		i, ok := intValue(value)
		if !ok {
			return errorf("SetParameter", "parameter %q wants an integer, got %T", name, value)
		}
		return spec.set(p, i, 0)
	default:
		f, ok := floatValue(value)
		if !ok {
			return errorf("SetParameter", "parameter %q wants a number, got %T", name, value)
		}
		return spec.set(p, 0, f)
	}
}

func paramNames() []string {
	names := make([]string, 0, len(paramTable))
	for name := range paramTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// SolveOption overrides parameters for a solve call. Overrides persist,
// matching SetParameter semantics.
type SolveOption func(*Problem) error

// WithIterationLimit caps simplex iterations.
func WithIterationLimit(n int) SolveOption {
	return func(p *Problem) error {
		return p.SetParameter(ParamIterationLimit, n)
	}
}

// WithTimeLimit caps solve wall time in seconds.
func WithTimeLimit(seconds float64) SolveOption {
	return func(p *Problem) error {
		return p.SetParameter(ParamTimeLimit, seconds)
	}
}

// WithVerbosity sets the diagnostic level; above zero, engine statistics
// are logged after each solve attempt.
func WithVerbosity(level int) SolveOption {
	return func(p *Problem) error {
		return p.SetParameter(ParamVerbosity, level)
	}
}

// WithParam sets any recognized parameter by name.
func WithParam(name string, value any) SolveOption {
	return func(p *Problem) error {
		return p.SetParameter(name, value)
	}
}
