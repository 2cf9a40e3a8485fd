package differential

import (
	"math"
	"math/rand"
	"testing"

	"ariadne/numeric"
)

const testPrec = 60

func sample(d *Differential[numeric.Float], delta float64, prec uint) float64 {
	c := d.ConstantTerm().Float64()
	total := 0.0
	power := 1.0
	for k := 0; k <= d.Degree(); k++ {
		idx := k
		coeff := 0.0
		for _, t := range d.Terms() {
			if t.Index.At(0) == idx {
				coeff = t.Coeff.Float64()
			}
		}
		total += coeff * power
		power *= delta
	}
	_ = c
	return total
}

func TestSinOfMatchesMathNearZero(t *testing.T) {
	alg := FloatAlgebra{Prec: testPrec}
	base := Variable[numeric.Float](1, 6, 0, alg).AddScalar(numeric.FromFloat64(0.3, testPrec))
	s := SinOf(base, testPrec)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		delta := (rng.Float64() - 0.5) * 0.2
		got := sample(s, delta, testPrec)
		want := math.Sin(0.3 + delta)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("sin series mismatch at delta=%v: got %v want %v", delta, got, want)
		}
	}
}

func TestExpOfMatchesMathNearZero(t *testing.T) {
	alg := FloatAlgebra{Prec: testPrec}
	base := Variable[numeric.Float](1, 6, 0, alg).AddScalar(numeric.FromFloat64(0.5, testPrec))
	e := ExpOf(base, testPrec)

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		delta := (rng.Float64() - 0.5) * 0.2
		got := sample(e, delta, testPrec)
		want := math.Exp(0.5 + delta)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("exp series mismatch at delta=%v: got %v want %v", delta, got, want)
		}
	}
}

func TestAtanOfMatchesMathNearZero(t *testing.T) {
	alg := FloatAlgebra{Prec: testPrec}
	base := Variable[numeric.Float](1, 6, 0, alg).AddScalar(numeric.FromFloat64(1.2, testPrec))
	a := AtanOf(base, testPrec)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		delta := (rng.Float64() - 0.5) * 0.2
		got := sample(a, delta, testPrec)
		want := math.Atan(1.2 + delta)
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("atan series mismatch at delta=%v: got %v want %v", delta, got, want)
		}
	}
}
