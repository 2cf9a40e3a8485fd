package polynomial

import "testing"

func TestCanonicalizeCombinesAndSorts(t *testing.T) {
	e := NewExpansion[float64](4)
	e.Append(New(1, 0), 2.0)
	e.Append(New(0, 0), 1.0)
	e.Append(New(1, 0), 3.0)
	e.Append(New(0, 1), 0.0)

	e.Canonicalize(func(a, b float64) float64 { return a + b }, func(x float64) bool { return x == 0 })

	if e.Len() != 2 {
		t.Fatalf("expected 2 terms after canonicalize, got %d", e.Len())
	}
	terms := e.Terms()
	if terms[0].Index.Degree() != 0 || terms[0].Coeff != 1.0 {
		t.Fatalf("unexpected first term: %+v", terms[0])
	}
	if terms[1].Index.Degree() != 1 || terms[1].Coeff != 5.0 {
		t.Fatalf("unexpected second term: %+v", terms[1])
	}
}

func TestMultiIndexOrdering(t *testing.T) {
	a := New(2, 0)
	b := New(0, 2)
	c := New(1, 1)
	if CompareGraded(a, b) <= 0 {
		t.Fatalf("degree-2 indices tie on degree, so graded order falls back to lex and puts (0,2) before (2,0)")
	}
	if CompareLex(a, c) <= 0 {
		t.Fatalf("(1,1) should sort before (2,0) lexicographically")
	}
}

func TestIncrementDecrementRoundTrip(t *testing.T) {
	m := New(1, 2)
	up := m.Increment(1)
	if up.At(1) != 3 || up.Degree() != 4 {
		t.Fatalf("increment failed: %v", up)
	}
	down, ok := up.Decrement(1)
	if !ok || !down.Equal(m) {
		t.Fatalf("decrement did not invert increment: %v", down)
	}
	zero := New(0, 0)
	if _, ok := zero.Decrement(0); ok {
		t.Fatalf("decrementing a zero exponent should fail")
	}
}
