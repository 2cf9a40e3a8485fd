// Package bounder implements the L3 Bounder (spec.md 4.5): a Picard
// self-map search that finds a box B such that the exact flow of a
// vector field starting anywhere in D stays inside B for t in [0,h].
package bounder

import (
	"fmt"

	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
)

// The named constants of spec.md 4.5, kept as exported values. The
// integrator package's step-size retry loop does not use ReductionSteps
// from here; it has its own Config.ReductionSteps (default 8).
const (
	InitialMultiplier = 2.0
	Multiplier        = 1.125
	WideningFactor    = 0.25
	ExpansionSteps    = 8
	ReductionSteps    = 8
	RefinementSteps   = 4
)

// FlowBoundingException is returned when no step size down to h/2^ReductionSteps
// admits a self-mapping box; callers interpret it as "reduce the step
// further and ask again".
type FlowBoundingException struct {
	Detail string
}

func (e *FlowBoundingException) Error() string {
	return fmt.Sprintf("bounder: flow bounding failed: %s", e.Detail)
}

// Result is the bounding box actually found together with the step
// size it was found for (which may be h shrunk by some number of
// halvings).
type Result struct {
	Box  interval.Box
	Step numeric.Float
}

// Bound searches for a self-mapping box for vector field f starting
// from D with nominal step h, halving h up to ReductionSteps times on
// failure.
func Bound(f *function.Function, d interval.Box, h numeric.Float, prec uint) (Result, error) {
	hCur := h
	for r := 0; r <= ReductionSteps; r++ {
		b, ok, err := trySelfMap(f, d, hCur, prec)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return Result{Box: b, Step: hCur}, nil
		}
		hCur = numeric.Div2(hCur, prec)
	}
	return Result{}, &FlowBoundingException{Detail: "no step size admits a self-mapping box within the reduction budget"}
}

// trySelfMap runs the Picard self-map search at one fixed step size h.
func trySelfMap(f *function.Function, d interval.Box, h numeric.Float, prec uint) (interval.Box, bool, error) {
	hInterval := interval.MustNew(numeric.FromFloat64(0, prec), h)

	fD, err := f.EvaluateInterval(d, prec)
	if err != nil {
		return nil, false, err
	}
	initialStep := scaleBox(hInterval, fD, prec)
	initialStep = scaleBox(interval.Point(numeric.FromFloat64(InitialMultiplier, prec)), initialStep, prec)
	b := minkowskiSum(d, initialStep, prec)
	b = widenBoxByFraction(b, WideningFactor, prec)

	growth := numeric.FromFloat64(1, prec)
	converged := false
	for k := 0; k < ExpansionSteps; k++ {
		fB, err := f.EvaluateInterval(b, prec)
		if err != nil {
			return nil, false, err
		}
		step := scaleBox(hInterval, fB, prec)
		candidate := minkowskiSum(d, step, prec)
		if boxSubset(candidate, b) {
			b = candidate
			converged = true
			break
		}
		growth = numeric.Mul(growth, numeric.FromFloat64(Multiplier, prec), prec, numeric.Near)
		b = growAroundCentre(b, growth, prec)
	}
	if !converged {
		return nil, false, nil
	}

	for k := 0; k < RefinementSteps; k++ {
		fB, err := f.EvaluateInterval(b, prec)
		if err != nil {
			return nil, false, err
		}
		step := scaleBox(hInterval, fB, prec)
		b = minkowskiSum(d, step, prec)
	}
	return b, true, nil
}
