package integrator

import (
	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
)

// PresetLinear2D returns the field, initial box, and Config for
// spec.md 8's linear rotation example: dx/dt = -y, dy/dt = x, initial
// [0.99,1.01]x[-0.01,0.01]. The exact flow is a rotation, so the reach
// set should stay inside the annulus 0.95 <= sqrt(x^2+y^2) <= 1.05.
func PresetLinear2D(prec uint) (*function.Function, interval.Box, Config) {
	x, y := function.Var(0), function.Var(1)
	f := function.NewSymbolic(2, []*function.Expr{function.NegExpr(y), x})

	x0 := interval.FromFloat64(0.99, 1.01, prec)
	y0 := interval.FromFloat64(-0.01, 0.01, prec)

	cfg := Config{
		MaximumError:       1e-6,
		LipschitzTolerance: 0.5,
		StepMaximumError:   1e-8,
		StepSweepThreshold: 1e-14,
		Prec:               prec,
	}
	cfg.ApplyDefaults()
	return f, interval.Box{x0, y0}, cfg
}

// PresetVanDerPol returns the field, initial box, and Config for
// spec.md 8's Van der Pol example: dx/dt = y, dy/dt = -x + y(1-x^2),
// initial (1.21 +/- 2^-10) x (2.01 +/- 2^-10). Tuned for a bounding-box
// width of at most 0.6 per axis after evolving for time 6.0 in steps
// of 0.125.
func PresetVanDerPol(prec uint) (*function.Function, interval.Box, Config) {
	x, y := function.Var(0), function.Var(1)
	one := function.Const(numeric.FromFloat64(1, prec))
	dx := y
	dy := function.Sub(function.Mul(function.Sub(one, function.Mul(x, x)), y), x)
	f := function.NewSymbolic(2, []*function.Expr{dx, dy})

	radius := numeric.FromFloat64(1.0/1024, prec)
	cx := numeric.FromFloat64(1.21, prec)
	cy := numeric.FromFloat64(2.01, prec)
	x0 := interval.Interval{
		Lo:   numeric.Sub(cx, radius, prec, numeric.Down),
		Hi:   numeric.Add(cx, radius, prec, numeric.Up),
		Prec: prec,
	}
	y0 := interval.Interval{
		Lo:   numeric.Sub(cy, radius, prec, numeric.Down),
		Hi:   numeric.Add(cy, radius, prec, numeric.Up),
		Prec: prec,
	}

	cfg := Config{
		MaximumError:       1e-4,
		LipschitzTolerance: 0.5,
		StepMaximumError:   1e-8,
		StepSweepThreshold: 1e-14,
		Prec:               prec,
	}
	cfg.ApplyDefaults()
	return f, interval.Box{x0, y0}, cfg
}

// PresetAttractor returns the field, initial box, and Config for
// spec.md 8's safety-verification example: dx/dt = 2x - xy,
// dy/dt = 2x^2 - y, initial box 0.9<=x<=1, -2.2<=y<=-2 (the caller
// intersects this with the disc (x)^2+(y+2)^2<=1 before seeding the
// evolver, since Function has no constraint-set primitive of its own).
func PresetAttractor(prec uint) (*function.Function, interval.Box, Config) {
	x, y := function.Var(0), function.Var(1)
	two := function.Const(numeric.FromFloat64(2, prec))
	dx := function.Sub(function.Mul(two, x), function.Mul(x, y))
	dy := function.Sub(function.Mul(two, function.Mul(x, x)), y)
	f := function.NewSymbolic(2, []*function.Expr{dx, dy})

	x0 := interval.FromFloat64(0.9, 1.0, prec)
	y0 := interval.FromFloat64(-2.2, -2.0, prec)

	cfg := Config{
		MaximumError:       1e-5,
		LipschitzTolerance: 0.5,
		StepMaximumError:   1e-8,
		StepSweepThreshold: 1e-14,
		Prec:               prec,
	}
	cfg.ApplyDefaults()
	return f, interval.Box{x0, y0}, cfg
}
