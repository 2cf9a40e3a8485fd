package integrator

import (
	"fmt"

	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

// FlowTimeStepException is returned when a step construction cannot
// reach the configured error budget within the iteration/order budget;
// callers interpret it as "shrink the step and retry" (spec.md 4.6).
type FlowTimeStepException struct {
	Detail string
}

func (e *FlowTimeStepException) Error() string {
	return fmt.Sprintf("integrator: flow time-step failed: %s", e.Detail)
}

// Integrator is the one place spec.md 9 keeps real interface-based
// dispatch (alongside canvas.Drawer): users may supply their own.
type Integrator interface {
	// Step returns the n Taylor models phi_1..phi_n over the extended
	// box D x [-h,h] (the last of the n+1 model variables is time),
	// enclosing the exact flow of f from D over [0,h].
	Step(f *function.Function, d interval.Box, h numeric.Float) ([]*taylormodel.Model, error)
}

func capDegree(m *taylormodel.Model, maxDeg int) *taylormodel.Model {
	if m.MaxDegree <= maxDeg {
		return m
	}
	out := taylormodel.Zero(m.Vars, maxDeg, m.Prec)
	dropped := numeric.FromFloat64(0, m.Prec)
	for _, t := range m.Poly.Terms() {
		if t.Index.Degree() > maxDeg {
			dropped = numeric.Add(dropped, t.Coeff.Abs(), m.Prec, numeric.Up)
			continue
		}
		out.Poly.Append(t.Index, t.Coeff)
	}
	out.Err = numeric.Add(m.Err, dropped, m.Prec, numeric.Up)
	return out
}

func combinedDegreeCap(cfg *Config) int {
	if cfg.MaximumSpacialOrder > cfg.MaximumTemporalOrder {
		return cfg.MaximumSpacialOrder
	}
	return cfg.MaximumTemporalOrder
}

func maxModelError(models []*taylormodel.Model) numeric.Float {
	max := models[0].Err
	for _, m := range models[1:] {
		max = numeric.Max(max, m.Err)
	}
	return max
}

// extendedBoxDomain builds the interval domain of the extended n+1
// variable model space (n state variables plus one time variable) for
// reporting ranges (nothing in this package calls it); model arithmetic
// itself always works over
// the implicit [-1,1]^(n+1) per taylormodel's own convention.
func extendedBoxDomain(n int, prec uint) interval.Box {
	return taylormodel.UnitBox(n+1, prec)
}
