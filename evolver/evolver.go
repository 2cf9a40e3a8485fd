package evolver

import (
	"context"
	"fmt"

	"ariadne/enclosure"
	"ariadne/function"
	"ariadne/integrator"
	"ariadne/numeric"
)

// VectorFieldEvolver computes the evolution of a vector field by
// repeatedly calling an Integrator, following
// original_source/source/dynamics/vector_field_evolver.hpp's split
// between the evolver (owns configuration and drives the loop) and the
// integrator (owns the actual flow-step computation).
type VectorFieldEvolver struct {
	Integrator integrator.Integrator
	Config     Config
}

// New returns an evolver driving integ with the given configuration.
func New(integ integrator.Integrator, cfg Config) *VectorFieldEvolver {
	cfg.ApplyDefaults()
	return &VectorFieldEvolver{Integrator: integ, Config: cfg}
}

type timedEnclosure struct {
	t numeric.Float
	x *enclosure.Enclosure
}

// Orbit runs spec.md 4.9's working-set loop: repeatedly pop a timed
// enclosure, terminate it into Final once it reaches the time bound,
// split it if its radius has grown too large, otherwise advance it one
// integrator step and push the stepped continuation back onto the
// working set. The loop is cooperative: ctx is checked between steps,
// and on cancellation the evolver returns what it has reached so far
// rather than an error (spec.md 5's cancellation policy).
func (ev *VectorFieldEvolver) Orbit(ctx context.Context, f *function.Function, x0 *enclosure.Enclosure, t numeric.Float) (*Orbit, error) {
	cfg := ev.Config
	orbit := &Orbit{Initial: x0}
	working := []timedEnclosure{{t: numeric.FromFloat64(0, cfg.Prec), x: x0}}

	for len(working) > 0 {
		select {
		case <-ctx.Done():
			return orbit, nil
		default:
		}

		cur := working[len(working)-1]
		working = working[:len(working)-1]
		orbit.Intermediate = append(orbit.Intermediate, TimedEnclosure{Time: cur.t.Float64(), Enclosure: cur.x})

		if cur.t.Cmp(t) >= 0 {
			orbit.Final = append(orbit.Final, cur.x)
			continue
		}

		if cfg.EnableSubdivisions && cur.x.Radius().Cmp(cfg.maximumEnclosureRadiusFloat()) > 0 {
			lower, upper, err := cur.x.Split(0)
			if err != nil {
				return orbit, fmt.Errorf("evolver: orbit: splitting oversized enclosure: %w", err)
			}
			working = append(working, timedEnclosure{t: cur.t, x: lower}, timedEnclosure{t: cur.t, x: upper})
			continue
		}

		remaining := numeric.Sub(t, cur.t, cfg.Prec, numeric.Up)
		hMax := numeric.Min(cfg.maximumStepSizeFloat(), remaining)

		psi, h, err := integrator.FlowStep(ev.Integrator, f, cur.x.BoundingBox(), hMax, integratorConfigFor(cfg))
		if err != nil {
			return orbit, fmt.Errorf("evolver: orbit: flow step at t=%s: %w", cur.t.String(), err)
		}

		reached, err := cur.x.ApplyFlow(psi, h)
		if err != nil {
			return orbit, fmt.Errorf("evolver: orbit: apply_flow: %w", err)
		}
		orbit.Reach = append(orbit.Reach, reached)

		stepped, err := cur.x.ApplyFlowStep(psi, h)
		if err != nil {
			return orbit, fmt.Errorf("evolver: orbit: apply_flow_step: %w", err)
		}
		if cfg.EnableReconditioning {
			stepped = stepped.Recondition(cfg.sweepThresholdFloat())
		}

		nextT := numeric.Add(cur.t, h, cfg.Prec, numeric.Up)
		working = append(working, timedEnclosure{t: nextT, x: stepped})
	}

	return orbit, nil
}

// integratorConfigFor derives the integrator.Config the evolver's flow
// steps run with. The evolver's own Config carries evolution-level
// knobs (step cap, enclosure radius, reconditioning); the integrator's
// Config carries the per-step numerical tuning the Integrator
// implementation itself already defaults from ApplyDefaults, so only
// precision and the evolver's spacial-error budget are threaded
// through here.
func integratorConfigFor(cfg Config) integrator.Config {
	var ic integrator.Config
	ic.Prec = cfg.Prec
	ic.StepMaximumError = cfg.MaximumSpacialError
	ic.ApplyDefaults()
	return ic
}
