package interval

import (
	"math"
	"math/rand"
	"testing"

	"ariadne/numeric"
)

func TestSinContainsSamples(t *testing.T) {
	x := FromFloat64(0.2, 2.0, 53)
	r := Sin(x, 53)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		v := 0.2 + rng.Float64()*1.8
		want := numeric.FromFloat64(math.Sin(v), 53)
		if !r.Contains(want) {
			t.Fatalf("sin range %v does not contain sin(%v)=%v", r, v, math.Sin(v))
		}
	}
}

func TestSinWideIntervalHitsExtremum(t *testing.T) {
	x := FromFloat64(0, 4, 53)
	r := Sin(x, 53)
	one := numeric.FromFloat64(1, 53)
	if !r.Contains(one) {
		t.Fatalf("sin range %v over [0,4] should contain the extremum at pi/2", r)
	}
}

func TestCosContainsSamples(t *testing.T) {
	x := FromFloat64(-0.5, 1.0, 53)
	r := Cos(x, 53)
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		v := -0.5 + rng.Float64()*1.5
		want := numeric.FromFloat64(math.Cos(v), 53)
		if !r.Contains(want) {
			t.Fatalf("cos range %v does not contain cos(%v)=%v", r, v, math.Cos(v))
		}
	}
}

func TestSinFullPeriodIsTrivial(t *testing.T) {
	x := FromFloat64(-10, 10, 53)
	r := Sin(x, 53)
	if r.Lo.Float64() > -1 || r.Hi.Float64() < 1 {
		t.Fatalf("sin over a wide interval should trivially enclose [-1,1], got %v", r)
	}
}
