package bounder

import (
	"testing"

	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
)

const prec = 53

func TestBoundFindsSelfMapForStableLinearField(t *testing.T) {
	f := function.NewSymbolic(1, []*function.Expr{function.NegExpr(function.Var(0))})
	d := interval.Box{interval.FromFloat64(0.9, 1.1, prec)}
	h := numeric.FromFloat64(0.05, prec)

	res, err := Bound(f, d, h, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !interval.Subset(d[0], res.Box[0]) {
		t.Fatalf("bounding box %v should contain the starting box %v", res.Box[0], d[0])
	}
}

func TestBoundResultIsActualSelfMap(t *testing.T) {
	f := function.NewSymbolic(1, []*function.Expr{function.NegExpr(function.Var(0))})
	d := interval.Box{interval.FromFloat64(-1, 1, prec)}
	h := numeric.FromFloat64(0.1, prec)

	res, err := Bound(f, d, h, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fB, err := f.EvaluateInterval(res.Box, prec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hInterval := interval.MustNew(numeric.FromFloat64(0, prec), res.Step)
	step := interval.Mul(hInterval, fB[0], prec)
	candidate := interval.Add(d[0], step, prec)
	if !interval.Subset(candidate, res.Box[0]) {
		t.Fatalf("D + [0,h]*f(B) = %v should be a subset of the returned box %v", candidate, res.Box[0])
	}
}
