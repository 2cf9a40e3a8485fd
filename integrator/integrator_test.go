package integrator

import (
	"testing"

	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
)

const prec = 53

func linearField(prec uint) *function.Function {
	x := function.Var(0)
	lambda := function.Const(numeric.FromFloat64(-1, prec))
	return function.NewSymbolic(1, []*function.Expr{function.Mul(lambda, x)})
}

func TestPicardIntegratorStepConverges(t *testing.T) {
	f := linearField(prec)
	d := interval.Box{interval.FromFloat64(0.9, 1.1, prec)}
	h := numeric.FromFloat64(0.01, prec)

	integ := NewPicardIntegrator(Config{Prec: prec})
	models, err := integ.Step(f, d, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	rng := models[0].Range(nil)
	if !rng.Contains(numeric.FromFloat64(1.0, prec)) {
		t.Fatalf("flow of stable linear field from near 1 should still enclose values near 1, got %v", rng)
	}
}

func TestSeriesIntegratorStepConverges(t *testing.T) {
	f := linearField(prec)
	d := interval.Box{interval.FromFloat64(0.9, 1.1, prec)}
	h := numeric.FromFloat64(0.01, prec)

	integ := NewSeriesIntegrator(Config{Prec: prec})
	models, err := integ.Step(f, d, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	rng := models[0].Range(nil)
	if !rng.Contains(numeric.FromFloat64(1.0, prec)) {
		t.Fatalf("series flow from near 1 should still enclose values near 1, got %v", rng)
	}
}

func TestSelectStepSizeRespectsLipschitzTolerance(t *testing.T) {
	f := linearField(prec)
	d := interval.Box{interval.FromFloat64(0.9, 1.1, prec)}
	hMax := numeric.FromFloat64(1.0, prec)

	cfg := Config{Prec: prec, LipschitzTolerance: 0.1}
	cfg.ApplyDefaults()

	h, err := SelectStepSize(f, d, hMax, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Cmp(hMax) >= 0 {
		t.Fatalf("a unit Lipschitz constant with tolerance 0.1 should shrink h below h_max, got %v", h)
	}
}

func TestFlowStepReturnsModelsAndStepUsed(t *testing.T) {
	f := linearField(prec)
	d := interval.Box{interval.FromFloat64(0.9, 1.1, prec)}
	hMax := numeric.FromFloat64(0.05, prec)

	cfg := Config{Prec: prec}
	cfg.ApplyDefaults()

	integ := NewPicardIntegrator(cfg)
	models, hUsed, err := FlowStep(integ, f, d, hMax, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected one model, got %d", len(models))
	}
	if hUsed.Cmp(numeric.FromFloat64(0, prec)) <= 0 {
		t.Fatalf("expected a positive step size, got %v", hUsed)
	}
}

func TestPresetLinear2DShape(t *testing.T) {
	f, x0, cfg := PresetLinear2D(prec)
	if f.ArgumentSize() != 2 || f.ResultSize() != 2 {
		t.Fatalf("linear preset should be a 2D field, got arg=%d res=%d", f.ArgumentSize(), f.ResultSize())
	}
	if len(x0) != 2 {
		t.Fatalf("expected a 2D initial box, got %d", len(x0))
	}
	if cfg.Prec != prec {
		t.Fatalf("expected configured precision to round-trip, got %d", cfg.Prec)
	}
}

func TestPresetVanDerPolShape(t *testing.T) {
	f, x0, _ := PresetVanDerPol(prec)
	if f.ArgumentSize() != 2 || f.ResultSize() != 2 {
		t.Fatalf("Van der Pol preset should be a 2D field, got arg=%d res=%d", f.ArgumentSize(), f.ResultSize())
	}
	if !x0[0].Contains(numeric.FromFloat64(1.21, prec)) {
		t.Fatalf("x0 should contain the nominal centre 1.21, got %v", x0[0])
	}
}

func TestPresetAttractorShape(t *testing.T) {
	f, x0, _ := PresetAttractor(prec)
	if f.ArgumentSize() != 2 || f.ResultSize() != 2 {
		t.Fatalf("attractor preset should be a 2D field, got arg=%d res=%d", f.ArgumentSize(), f.ResultSize())
	}
	if !x0[1].Contains(numeric.FromFloat64(-2.1, prec)) {
		t.Fatalf("y0 should contain -2.1, got %v", x0[1])
	}
}
