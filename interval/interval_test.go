package interval

import (
	"math/rand"
	"testing"

	"ariadne/numeric"
)

func TestAddContainment(t *testing.T) {
	a := FromFloat64(0.1, 0.3, 53)
	b := FromFloat64(-0.2, 0.5, 53)
	sum := Add(a, b, 53)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		x := 0.1 + rng.Float64()*0.2
		y := -0.2 + rng.Float64()*0.7
		want := numeric.FromFloat64(x+y, 53)
		if !sum.Contains(want) {
			t.Fatalf("sum %v does not contain %v+%v=%v", sum, x, y, x+y)
		}
	}
}

func TestMulSignCases(t *testing.T) {
	cases := []struct {
		name               string
		alo, ahi, blo, bhi float64
	}{
		{"pp", 1, 3, 2, 4},
		{"pn", 1, 3, -4, -2},
		{"np", -3, -1, 2, 4},
		{"nn", -3, -1, -4, -2},
		{"straddle", -2, 3, -1, 4},
	}
	rng := rand.New(rand.NewSource(2))
	for _, tc := range cases {
		a := FromFloat64(tc.alo, tc.ahi, 53)
		b := FromFloat64(tc.blo, tc.bhi, 53)
		prod := Mul(a, b, 53)
		for i := 0; i < 500; i++ {
			x := tc.alo + rng.Float64()*(tc.ahi-tc.alo)
			y := tc.blo + rng.Float64()*(tc.bhi-tc.blo)
			want := numeric.FromFloat64(x*y, 53)
			if !prod.Contains(want) {
				t.Fatalf("%s: product %v does not contain %v*%v=%v", tc.name, prod, x, y, x*y)
			}
		}
	}
}

func TestDivStraddlingZeroErrors(t *testing.T) {
	a := FromFloat64(1, 2, 53)
	b := FromFloat64(-1, 1, 53)
	if _, err := Div(a, b, 53); err == nil {
		t.Fatalf("expected DomainError dividing by a zero-straddling interval")
	}
}

func TestSqrtClampsNegativeLower(t *testing.T) {
	x := FromFloat64(-1, 4, 53)
	r, err := Sqrt(x, 53)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Lo.Sign() < 0 {
		t.Fatalf("sqrt lower bound should clamp to 0, got %v", r.Lo)
	}
	if r.Hi.Float64() < 2 {
		t.Fatalf("sqrt upper bound too small: %v", r.Hi)
	}
}

func TestSqrtEntirelyNegativeErrors(t *testing.T) {
	x := FromFloat64(-4, -1, 53)
	if _, err := Sqrt(x, 53); err == nil {
		t.Fatalf("expected DomainError for sqrt of entirely-negative interval")
	}
}

func TestEmptyPropagates(t *testing.T) {
	e := Empty(53)
	a := FromFloat64(0, 1, 53)
	if !Add(a, e, 53).IsEmpty() {
		t.Fatalf("add with empty operand should be empty")
	}
	if !Mul(a, e, 53).IsEmpty() {
		t.Fatalf("mul with empty operand should be empty")
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := FromFloat64(0, 1, 53)
	b := FromFloat64(2, 3, 53)
	if !Intersect(a, b).IsEmpty() {
		t.Fatalf("disjoint intervals should intersect to empty")
	}
}

func TestMidradiusRoundTrip(t *testing.T) {
	a := FromFloat64(-1, 3, 53)
	mr := a.ToMidradius()
	back := mr.ToInterval()
	if !Subset(a, back) {
		t.Fatalf("round-tripped interval %v does not contain original %v", back, a)
	}
}
