// Package evolver implements the L5 Evolver (spec.md 4.9): given a
// vector field, an initial enclosure, and a time bound, drive the
// integrator step by step to build up the reach, intermediate, and
// final sets of an orbit. Structured the way
// original_source/source/dynamics/vector_field_evolver.hpp splits
// configuration from the evolution loop itself, with a VectorFieldEvolver
// analogue holding the integrator and a plain Config holding tuning
// knobs.
package evolver

import "ariadne/numeric"

const (
	DefaultMaximumStepSize      = 0.25
	DefaultMaximumEnclosureRadius = 4.0
	DefaultMaximumSpacialError  = 1e-6
	DefaultSweepThreshold       = 1e-12
)

// Config collects the tuning knobs spec.md 4.9 enumerates.
type Config struct {
	MaximumStepSize         float64
	MaximumEnclosureRadius  float64
	MaximumSpacialError     float64
	EnableReconditioning    bool
	EnableSubdivisions      bool
	SweepThreshold          float64
	Prec                    uint
}

// ApplyDefaults fills unset (zero-valued) fields with reference
// defaults, the sentinel-then-fill shape used throughout the module
// (c.f. integrator.Config.ApplyDefaults).
func (c *Config) ApplyDefaults() {
	if c.MaximumStepSize <= 0 {
		c.MaximumStepSize = DefaultMaximumStepSize
	}
	if c.MaximumEnclosureRadius <= 0 {
		c.MaximumEnclosureRadius = DefaultMaximumEnclosureRadius
	}
	if c.MaximumSpacialError <= 0 {
		c.MaximumSpacialError = DefaultMaximumSpacialError
	}
	if c.SweepThreshold <= 0 {
		c.SweepThreshold = DefaultSweepThreshold
	}
	if c.Prec == 0 {
		c.Prec = numeric.DefaultPrec
	}
	// EnableReconditioning and EnableSubdivisions default false; an
	// evolver with both off degenerates to the plain fixed-step loop.
}

func (c *Config) maximumStepSizeFloat() numeric.Float {
	return numeric.FromFloat64(c.MaximumStepSize, c.Prec)
}

func (c *Config) maximumEnclosureRadiusFloat() numeric.Float {
	return numeric.FromFloat64(c.MaximumEnclosureRadius, c.Prec)
}

func (c *Config) sweepThresholdFloat() numeric.Float {
	return numeric.FromFloat64(c.SweepThreshold, c.Prec)
}
