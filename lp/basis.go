package lp

import "github.com/fluxomics/ratlp/engine"

// defaultBasisStatus seeds fresh basis buffers. Nonbasic-at-upper is the
// safe default for rows whose finite bound is the right-hand side.
const defaultBasisStatus = engine.BasisUpper

// basisCache owns the warm-start state between solves: one status per
// column and per row, overwritten wholesale after every optimal solve.
// The buffers are exclusively owned; callers never see them directly.
type basisCache struct {
	cols []engine.BasisStatus
	rows []engine.BasisStatus

	// dropped records that the most recent solve had to discard the
	// cached basis and start cold.
	dropped bool
}

// newBasisCache allocates buffers at the engine's current dimensions and
// takes a best-effort snapshot of whatever basis the engine holds. Before
// the first solve that snapshot carries no information, so every entry is
// first defaulted.
func newBasisCache(eng engine.Engine) *basisCache {
	b := &basisCache{}
	b.resize(eng.NumCol(), eng.NumRow())
	if col, row, err := eng.Basis(); err == nil &&
		len(col) == len(b.cols) && len(row) == len(b.rows) {
		copy(b.cols, col)
		copy(b.rows, row)
	}
	return b
}

// resize reallocates both buffers at the given dimensions and fills them
// with the default status. Reallocation, not truncation: the problem may
// have grown and stale tails must not survive.
func (b *basisCache) resize(numCol, numRow int) {
	b.cols = make([]engine.BasisStatus, numCol)
	b.rows = make([]engine.BasisStatus, numRow)
	for i := range b.cols {
		b.cols[i] = defaultBasisStatus
	}
	for i := range b.rows {
		b.rows[i] = defaultBasisStatus
	}
}

// ensure keeps the buffer lengths in step with the engine's dimensions.
func (b *basisCache) ensure(eng engine.Engine) {
	if len(b.cols) != eng.NumCol() || len(b.rows) != eng.NumRow() {
		b.resize(eng.NumCol(), eng.NumRow())
	}
}

// apply installs the cached basis as the engine's warm start.
func (b *basisCache) apply(eng engine.Engine) error {
	b.ensure(eng)
	return eng.SetBasis(b.cols, b.rows)
}

// refresh overwrites the cache with the engine's current basis. Callers
// must only invoke it after an optimal termination; caching a non-optimal
// basis would poison the next warm start.
func (b *basisCache) refresh(eng engine.Engine) error {
	col, row, err := eng.Basis()
	if err != nil {
		return err
	}
	if len(col) != len(b.cols) || len(row) != len(b.rows) {
		b.resize(len(col), len(row))
	}
	copy(b.cols, col)
	copy(b.rows, row)
	b.dropped = false
	return nil
}

// reset invalidates the cached basis and tells the engine to start from a
// trivial one. Used as the fallback before a cold solve.
func (b *basisCache) reset(eng engine.Engine) error {
	b.resize(eng.NumCol(), eng.NumRow())
	b.dropped = true
	return eng.ClearBasis()
}

// release drops the owned buffers.
func (b *basisCache) release() {
	b.cols = nil
	b.rows = nil
}
