package function

import (
	"math"
	"testing"

	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

const prec = 53

func TestAffineEvaluateInterval(t *testing.T) {
	a := [][]numeric.Float{
		{numeric.FromFloat64(0, prec), numeric.FromFloat64(-1, prec)},
		{numeric.FromFloat64(1, prec), numeric.FromFloat64(0, prec)},
	}
	b := []numeric.Float{numeric.FromFloat64(0, prec), numeric.FromFloat64(0, prec)}
	f := NewAffine(a, b, prec)

	box := interval.Box{interval.FromFloat64(1, 1, prec), interval.FromFloat64(0, 0, prec)}
	out, err := f.EvaluateInterval(box, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out[0].Contains(numeric.FromFloat64(0, prec)) || !out[1].Contains(numeric.FromFloat64(1, prec)) {
		t.Fatalf("rotation field at (1,0) should enclose (0,1), got %v %v", out[0], out[1])
	}
}

func TestSymbolicEvaluateIntervalVanDerPol(t *testing.T) {
	x, y := Var(0), Var(1)
	mu := Const(numeric.FromFloat64(1, prec))
	dx := y
	dy := Sub(Mul(Mul(mu, Sub(Const(numeric.FromFloat64(1, prec)), Mul(x, x))), y), x)
	f := NewSymbolic(2, []*Expr{dx, dy})

	box := interval.Box{interval.FromFloat64(0.5, 0.5, prec), interval.FromFloat64(-0.5, -0.5, prec)}
	out, err := f.EvaluateInterval(box, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantDx := -0.5
	wantDy := 1*(1-0.25)*(-0.5) - 0.5
	if !out[0].Contains(numeric.FromFloat64(wantDx, prec)) {
		t.Fatalf("dx/dt range %v should contain %v", out[0], wantDx)
	}
	if !out[1].Contains(numeric.FromFloat64(wantDy, prec)) {
		t.Fatalf("dy/dt range %v should contain %v", out[1], wantDy)
	}
}

func TestJacobianOfProductMatchesAnalytic(t *testing.T) {
	x, y := Var(0), Var(1)
	f := NewSymbolic(2, []*Expr{Mul(x, y)})

	box := interval.Box{interval.FromFloat64(2, 2, prec), interval.FromFloat64(3, 3, prec)}
	jac, err := f.Jacobian(box, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !jac[0][0].Contains(numeric.FromFloat64(3, prec)) {
		t.Fatalf("d(xy)/dx at (2,3) should be 3, got %v", jac[0][0])
	}
	if !jac[0][1].Contains(numeric.FromFloat64(2, prec)) {
		t.Fatalf("d(xy)/dy at (2,3) should be 2, got %v", jac[0][1])
	}
}

func TestJacobianOfSinMatchesCos(t *testing.T) {
	x := Var(0)
	f := NewSymbolic(1, []*Expr{Sin(x)})
	box := interval.Box{interval.FromFloat64(0.3, 0.3, prec)}
	jac, err := f.Jacobian(box, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := numeric.FromFloat64(math.Cos(0.3), prec)
	if !jac[0][0].Contains(want) {
		t.Fatalf("d(sin x)/dx at 0.3 should contain cos(0.3)=%v, got %v", math.Cos(0.3), jac[0][0])
	}
}

func TestComposeArityMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on arity mismatch")
		}
	}()
	outer := NewProjection(3, 0)
	inner := NewProjection(2, 0)
	Compose(outer, inner)
}

func TestEvaluateModelOfPolynomialField(t *testing.T) {
	x, y := Var(0), Var(1)
	f := NewSymbolic(2, []*Expr{y, Mul(x, x)})

	mx := taylormodel.Identity(2, 4, 0, prec)
	my := taylormodel.Identity(2, 4, 1, prec)
	out, err := f.EvaluateModel([]*taylormodel.Model{mx, my})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := out[1].Range(nil)
	if !rng.Contains(numeric.FromFloat64(0.25, prec)) {
		t.Fatalf("x^2 model range %v should contain 0.25 (x=0.5)", rng)
	}
}

func TestSupportsDifferential(t *testing.T) {
	sym := NewSymbolic(1, []*Expr{Var(0)})
	if !sym.SupportsDifferential() {
		t.Fatalf("symbolic function should support differentiation")
	}

	patch := NewPatch([]*taylormodel.Model{taylormodel.FromConstant(1, 0, numeric.FromFloat64(1, prec), prec)})
	if patch.SupportsDifferential() {
		t.Fatalf("a bare patch variant has no expression tree and should report SupportsDifferential()==false")
	}
}
