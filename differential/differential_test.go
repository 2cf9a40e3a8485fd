package differential

import (
	"testing"

	"ariadne/numeric"
)

func alg() FloatAlgebra { return FloatAlgebra{Prec: 80} }

func f64(x float64) numeric.Float { return numeric.FromFloat64(x, 80) }

func TestMulTruncatesAboveDegree(t *testing.T) {
	a := alg()
	x0 := Variable[numeric.Float](1, 2, 0, a)
	x2 := Mul(x0, x0)
	x3 := Mul(x2, x0) // degree cap on x2 is already 2, so x3 stays empty above deg 2

	for _, term := range x3.Terms() {
		if term.Index.Degree() > 2 {
			t.Fatalf("term of degree %d survived truncation at 2", term.Index.Degree())
		}
	}
}

func TestAddSubInverse(t *testing.T) {
	a := alg()
	x0 := Variable[numeric.Float](2, 3, 0, a)
	x1 := Variable[numeric.Float](2, 3, 1, a)
	sum := Add(x0, x1)
	back := Sub(sum, x1)
	if back.ConstantTerm().Sign() != 0 {
		t.Fatalf("expected zero constant term")
	}
	c, ok := back.exp.Find(x0.Terms()[0].Index)
	if !ok || c.Float64() != 1.0 {
		t.Fatalf("Add then Sub did not recover x0, got %v ok=%v", c, ok)
	}
}

func TestAntiderivativeVarIncrementsDegree(t *testing.T) {
	a := alg()
	one := Constant[numeric.Float](1, 2, f64(1), a)
	integ := one.AntiderivativeVar(0) // d/dx0 integral of 1 = x0
	c, ok := integ.exp.Find(integ.Terms()[0].Index)
	if !ok || c.Float64() != 1.0 {
		t.Fatalf("antiderivative of constant 1 should have coefficient 1 on x0, got %v", c)
	}
	if integ.Degree() != 3 {
		t.Fatalf("antiderivative should raise truncation degree by one, got %d", integ.Degree())
	}
}

func TestComposeLinear(t *testing.T) {
	a := alg()
	// g(u) = 1 + 2u, f = x0 (centred: f(0)=0).
	f := Variable[numeric.Float](1, 3, 0, a)
	g := Compose([]numeric.Float{f64(1), f64(2)}, f)
	// g(f) = 1 + 2*x0
	constTerm := g.ConstantTerm()
	if constTerm.Float64() != 1.0 {
		t.Fatalf("expected constant term 1, got %v", constTerm)
	}
	lin, ok := g.exp.Find(f.Terms()[0].Index)
	if !ok || lin.Float64() != 2.0 {
		t.Fatalf("expected linear coefficient 2, got %v ok=%v", lin, ok)
	}
}
