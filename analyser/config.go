// Package analyser implements the L5 Reachability Analyser and Safety
// Verifier (spec.md 4.10): a lock-to-grid chain-reach fixed point built
// on top of an Evolver, grounded on
// original_source/include/evaluation/model_checker.code.h's orbit/
// chain-reachability loop (ModelChecker::orbit, iterated to a
// grid-set fixed point) and original_source/include/solver.h's
// three-valued safe/unsafe/indeterminate result shape.
package analyser

import "ariadne/numeric"

const (
	DefaultLockToGridTime   = 1.0
	DefaultMaximumGridDepth = 8
)

// Config collects the tuning knobs spec.md 4.10 enumerates.
type Config struct {
	LockToGridTime   float64
	MaximumGridDepth int
	PrimaryCellHeight int
	Prec             uint
}

// ApplyDefaults fills unset (zero-valued) fields with reference
// defaults.
func (c *Config) ApplyDefaults() {
	if c.LockToGridTime <= 0 {
		c.LockToGridTime = DefaultLockToGridTime
	}
	if c.MaximumGridDepth <= 0 {
		c.MaximumGridDepth = DefaultMaximumGridDepth
	}
	if c.Prec == 0 {
		c.Prec = numeric.DefaultPrec
	}
}

func (c *Config) lockToGridTimeFloat() numeric.Float {
	return numeric.FromFloat64(c.LockToGridTime, c.Prec)
}
