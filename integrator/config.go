// Package integrator implements the L3 Integrator (spec.md 4.6): given
// a vector field, a domain box, a step size, and a coarse bound from
// the bounder, produce a vector of Taylor models enclosing the exact
// flow over the extended domain D x [-h,h].
package integrator

import "ariadne/numeric"

// Default tuning values, the integrator analogue of ntru/sampler_opts.go's
// Antrag* reference constants.
const (
	DefaultMaximumError        = 1e-6
	DefaultLipschitzTolerance  = 0.5
	DefaultStepMaximumError    = 1e-8
	DefaultStepSweepThreshold  = 1e-14
	DefaultMaximumTemporalOrder = 8
	DefaultMaximumSpacialOrder  = 6
	DefaultMinimumTemporalOrder = 2
	DefaultMinimumSpacialOrder  = 2
	DefaultMaxPicardIterations  = 64
	DefaultReductionSteps       = 8
)

// Config collects the tuning knobs spec.md 4.6 enumerates.
type Config struct {
	MaximumError        float64
	LipschitzTolerance  float64
	StepMaximumError    float64
	StepSweepThreshold  float64
	MaximumTemporalOrder int
	MaximumSpacialOrder  int
	MinimumTemporalOrder int
	MinimumSpacialOrder  int
	MaxPicardIterations  int
	ReductionSteps       int
	Prec                 uint
}

// ApplyDefaults fills unset (zero-valued) fields with the reference
// defaults above, the same sentinel-then-fill shape as
// SamplerOpts.ApplyDefaults.
func (c *Config) ApplyDefaults() {
	if c.MaximumError <= 0 {
		c.MaximumError = DefaultMaximumError
	}
	if c.LipschitzTolerance <= 0 {
		c.LipschitzTolerance = DefaultLipschitzTolerance
	}
	if c.StepMaximumError <= 0 {
		c.StepMaximumError = DefaultStepMaximumError
	}
	if c.StepSweepThreshold <= 0 {
		c.StepSweepThreshold = DefaultStepSweepThreshold
	}
	if c.MaximumTemporalOrder <= 0 {
		c.MaximumTemporalOrder = DefaultMaximumTemporalOrder
	}
	if c.MaximumSpacialOrder <= 0 {
		c.MaximumSpacialOrder = DefaultMaximumSpacialOrder
	}
	if c.MinimumTemporalOrder <= 0 {
		c.MinimumTemporalOrder = DefaultMinimumTemporalOrder
	}
	if c.MinimumSpacialOrder <= 0 {
		c.MinimumSpacialOrder = DefaultMinimumSpacialOrder
	}
	if c.MaxPicardIterations <= 0 {
		c.MaxPicardIterations = DefaultMaxPicardIterations
	}
	if c.ReductionSteps <= 0 {
		c.ReductionSteps = DefaultReductionSteps
	}
	if c.Prec == 0 {
		c.Prec = numeric.DefaultPrec
	}
}

// stepMaximumErrorFloat returns the configured per-step error budget as
// a numeric.Float at the configured precision.
func (c *Config) stepMaximumErrorFloat() numeric.Float {
	return numeric.FromFloat64(c.StepMaximumError, c.Prec)
}

func (c *Config) stepSweepThresholdFloat() numeric.Float {
	return numeric.FromFloat64(c.StepSweepThreshold, c.Prec)
}
