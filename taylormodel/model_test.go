package taylormodel

import (
	"math/rand"
	"testing"

	"ariadne/numeric"
	"ariadne/polynomial"
)

func TestErrorBoundNeverNegative(t *testing.T) {
	m := Zero(2, 4, 53)
	if m.Err.Sign() < 0 {
		t.Fatalf("zero model has negative error")
	}
	if _, err := m.WithError(numeric.FromFloat64(-1, 53)); err == nil {
		t.Fatalf("expected InvariantError for negative error bound")
	}
}

func TestAddEnclosesSampledSum(t *testing.T) {
	a := Identity(1, 4, 0, 60)
	b := FromConstant(1, 4, numeric.FromFloat64(3, 60), 60)
	sum := Add(a, b)

	rng := rand.New(rand.NewSource(7))
	r := sum.Range(nil)
	for i := 0; i < 100; i++ {
		x := -1 + 2*rng.Float64()
		want := numeric.FromFloat64(x+3, 60)
		if !r.Contains(want) {
			t.Fatalf("sum range %v does not contain f(%v)=%v", r, x, x+3)
		}
	}
}

func TestMulEnclosesSquare(t *testing.T) {
	x := Identity(1, 4, 0, 60)
	sq := Mul(x, x)
	r := sq.Range(nil)
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 100; i++ {
		v := -1 + 2*rng.Float64()
		want := numeric.FromFloat64(v*v, 60)
		if !r.Contains(want) {
			t.Fatalf("x^2 range %v does not contain %v at x=%v", r, v*v, v)
		}
	}
}

func TestSweepAccounting(t *testing.T) {
	m := FromConstant(1, 2, numeric.FromFloat64(1, 60), 60)
	eps := numeric.FromFloat64(1e-16, 60)
	m.Poly.Append(polynomial.New(1), eps)
	m.canonicalize()

	tau := numeric.FromFloat64(1e-10, 60)
	swept := Sweep(m, tau)

	if swept.Err.Cmp(eps.Abs()) < 0 {
		t.Fatalf("swept error %v should be >= dropped coefficient %v", swept.Err, eps)
	}
	for _, term := range swept.Poly.Terms() {
		if term.Index.Degree() == 1 {
			t.Fatalf("degree-1 term should have been swept into error")
		}
	}
}

func TestComposeIdentityIsNoOp(t *testing.T) {
	x := Identity(1, 4, 0, 60)
	composed := Compose(x, []*Model{x})
	// Every Mul/Add inside Compose adds a round-off margin to the error
	// bound, so the polynomial is unchanged exactly and the error grows
	// only by round-off.
	xt, ct := x.Poly.Terms(), composed.Poly.Terms()
	if len(ct) != len(xt) || !ct[0].Index.Equal(xt[0].Index) || ct[0].Coeff.Cmp(xt[0].Coeff) != 0 {
		t.Fatalf("composing identity with itself changed the polynomial: %v vs %v", xt, ct)
	}
	if composed.Err.Cmp(numeric.FromFloat64(1e-15, 60)) > 0 {
		t.Fatalf("composing identity with itself grew the error beyond round-off: %v", composed.Err)
	}
}

func TestComposeCarriesOuterModelError(t *testing.T) {
	const prec = 60
	outerErr := numeric.FromFloat64(1e-6, prec)
	outer, err := Identity(1, 4, 0, prec).WithError(outerErr)
	if err != nil {
		t.Fatalf("WithError: %v", err)
	}
	inner := Identity(1, 4, 0, prec)
	composed := Compose(outer, []*Model{inner})
	if composed.Err.Cmp(outerErr) < 0 {
		t.Fatalf("composed error %v should be at least the substituted-into model's own error %v", composed.Err, outerErr)
	}
}

func TestAntiderivativeRaisesDegree(t *testing.T) {
	one := FromConstant(1, 2, numeric.FromFloat64(1, 60), 60)
	integ := AntiderivativeVar(one, 0)
	if integ.MaxDegree != 3 {
		t.Fatalf("expected max degree to grow by one, got %d", integ.MaxDegree)
	}
}
