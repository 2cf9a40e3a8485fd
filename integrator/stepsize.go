package integrator

import (
	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

// SelectStepSize proposes h = min(h_max, lipschitz_tolerance / L), with
// L the infinity-norm Lipschitz estimate taken from f's Jacobian over
// d (spec.md 4.6's step-size-selection rule).
func SelectStepSize(f *function.Function, d interval.Box, hMax numeric.Float, cfg Config) (numeric.Float, error) {
	jac, err := f.Jacobian(d, cfg.Prec)
	if err != nil {
		return hMax, nil
	}
	l := lipschitzNorm(jac, cfg.Prec)
	if l.IsZero() {
		return hMax, nil
	}
	tolerance := numeric.FromFloat64(cfg.LipschitzTolerance, cfg.Prec)
	byLipschitz, err := numeric.Div(tolerance, l, cfg.Prec, numeric.Down)
	if err != nil {
		return hMax, nil
	}
	return numeric.Min(hMax, byLipschitz), nil
}

// FlowStep proposes a step size via SelectStepSize, then drives integ
// with that step, halving on FlowTimeStepException down to
// h_max/2^ReductionSteps before giving up (spec.md 4.6). It returns the
// step size that actually succeeded alongside the resulting models.
func FlowStep(integ Integrator, f *function.Function, d interval.Box, hMax numeric.Float, cfg Config) ([]*taylormodel.Model, numeric.Float, error) {
	h, err := SelectStepSize(f, d, hMax, cfg)
	if err != nil {
		return nil, numeric.Float{}, err
	}

	two := numeric.FromFloat64(2, cfg.Prec)
	hMin, err := divRepeated(hMax, two, cfg.ReductionSteps, cfg.Prec)
	if err != nil {
		return nil, numeric.Float{}, err
	}

	for {
		models, err := integ.Step(f, d, h)
		if err == nil {
			return models, h, nil
		}
		if _, ok := err.(*FlowTimeStepException); !ok {
			return nil, numeric.Float{}, err
		}
		if h.Cmp(hMin) <= 0 {
			return nil, numeric.Float{}, err
		}
		h = numeric.Div2(h, cfg.Prec)
	}
}

func divRepeated(x, divisor numeric.Float, times int, prec uint) (numeric.Float, error) {
	out := x
	var err error
	for i := 0; i < times; i++ {
		out, err = numeric.Div(out, divisor, prec, numeric.Down)
		if err != nil {
			return numeric.Float{}, err
		}
	}
	return out, nil
}
