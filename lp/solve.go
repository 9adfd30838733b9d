package lp

import (
	"context"

	"github.com/fluxomics/ratlp/engine"
)

// Solve runs the two-phase solve protocol and returns the status string.
//
// The warm attempt applies the cached basis and caps the iteration limit
// at min(configured limit, reset cutoff) so a stuck warm start cannot run
// away; the configured limit is restored afterwards no matter how the
// attempt ends. A decisive outcome (optimal, infeasible, unbounded) is
// final. Anything else discards the basis and re-solves cold, exactly
// once; the cold outcome is final regardless.
//
// ctx is checked once, between the two attempts, so cancellation latency
// is bounded by one solve attempt. On cancellation the warm status is
// retained and ctx.Err() is returned alongside it.
func (p *Problem) Solve(ctx context.Context, opts ...SolveOption) (string, error) {
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return "", err
		}
	}

	status, err := p.warmAttempt()
	if err != nil {
		return "", err
	}
	p.status = status

	if !status.Decisive() {
		if err := ctx.Err(); err != nil {
			return p.Status(), err
		}
		status, err = p.coldAttempt()
		if err != nil {
			return "", err
		}
		p.status = status
	}

	if status == engine.StatusOptimal {
		if err := p.basis.refresh(p.eng); err != nil {
			p.log.Warn().Err(err).Msg("could not refresh basis after optimal solve")
		}
	}
	return p.Status(), nil
}

// warmAttempt solves with the cached basis under a capped iteration limit.
func (p *Problem) warmAttempt() (engine.Status, error) {
	if err := p.basis.apply(p.eng); err != nil {
		// A rejected warm basis is not fatal; the engine falls back to
		// whatever basis it holds.
		p.log.Warn().Err(err).Msg("warm-start basis rejected by engine")
	}

	original, err := p.eng.GetIntOption(engine.OptIterationLimit)
	if err != nil {
		return engine.StatusNotSet, err
	}
	capped := p.cfg.resetCutoff
	if original > 0 && original < capped {
		capped = original
	}
	if err := p.eng.SetIntOption(engine.OptIterationLimit, capped); err != nil {
		return engine.StatusNotSet, err
	}
	defer func() {
		// The temporary cap must never leak into later solves.
		if err := p.eng.SetIntOption(engine.OptIterationLimit, original); err != nil {
			p.log.Warn().Err(err).Msg("could not restore iteration limit")
		}
	}()

	status, err := p.eng.Solve()
	if err != nil {
		return status, err
	}
	p.logStats("warm", status)
	return status, nil
}

// coldAttempt discards all basis state and solves uncapped.
func (p *Problem) coldAttempt() (engine.Status, error) {
	if err := p.basis.reset(p.eng); err != nil {
		return engine.StatusNotSet, err
	}
	status, err := p.eng.Solve()
	if err != nil {
		return status, err
	}
	p.logStats("cold", status)
	return status, nil
}

func (p *Problem) logStats(attempt string, status engine.Status) {
	if p.cfg.verbosity <= 0 {
		return
	}
	stats, err := p.eng.Stats()
	if err != nil {
		p.log.Warn().Err(err).Str("attempt", attempt).Msg("engine statistics unavailable")
		return
	}
	p.log.Info().
		Str("attempt", attempt).
		Stringer("status", status).
		Int("iterations", stats.SimplexIterations).
		Float64("seconds", stats.SolveTime).
		Msg("solve attempt finished")
}

// Status classifies the most recent solve for the caller: "optimal",
// "infeasible", the engine's status name for other recognized outcomes,
// or "failed" for unrecognized ones.
func (p *Problem) Status() string {
	name := p.status.String()
	if name == "unknown" {
		return "failed"
	}
	return name
}
