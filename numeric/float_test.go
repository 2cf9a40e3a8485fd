package numeric

import (
	"math"
	"testing"
)

func TestAddRoundingBrackets(t *testing.T) {
	x := FromFloat64(0.1, 53)
	y := FromFloat64(0.2, 53)
	down := Add(x, y, 53, Down)
	up := Add(x, y, 53, Up)
	if down.Cmp(up) > 0 {
		t.Fatalf("down bound %v exceeds up bound %v", down, up)
	}
	want := 0.3
	if down.Float64() > want || up.Float64() < want {
		t.Fatalf("true sum %v not enclosed by [%v, %v]", want, down, up)
	}
}

func TestDivByZero(t *testing.T) {
	x := FromFloat64(1, 53)
	zero := FromFloat64(0, 53)
	if _, err := Div(x, zero, 53, Near); err == nil {
		t.Fatalf("expected DomainError dividing by zero")
	}
}

func TestSqrtNegative(t *testing.T) {
	if _, err := Sqrt(FromFloat64(-1, 53), 53, Near); err == nil {
		t.Fatalf("expected DomainError for sqrt of negative")
	}
}

func TestLogNonPositive(t *testing.T) {
	if _, err := Log(FromFloat64(0, 53), 53, Near); err == nil {
		t.Fatalf("expected DomainError for log(0)")
	}
	if _, err := Log(FromFloat64(-3, 53), 53, Near); err == nil {
		t.Fatalf("expected DomainError for log(negative)")
	}
}

func TestExpEnclosesReference(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 2.5, -3.7} {
		down := Exp(FromFloat64(x, 53), 53, Down)
		up := Exp(FromFloat64(x, 53), 53, Up)
		want := math.Exp(x)
		if down.Float64() > want*1.0000001 || up.Float64() < want*0.9999999 {
			t.Fatalf("exp(%v): [%v,%v] does not bracket %v", x, down, up, want)
		}
		if down.Cmp(up) > 0 {
			t.Fatalf("exp(%v): down bound exceeds up bound", x)
		}
	}
}

func TestSinCosPythagorean(t *testing.T) {
	x := FromFloat64(1.234, 80)
	s := Sin(x, 80, Near)
	c := Cos(x, 80, Near)
	sum := Add(Mul(s, s, 80, Near), Mul(c, c, 80, Near), 80, Near)
	diff := math.Abs(sum.Float64() - 1.0)
	if diff > 1e-10 {
		t.Fatalf("sin^2+cos^2 = %v, want ~1", sum.Float64())
	}
}

func TestAtanMonotone(t *testing.T) {
	prev := Atan(FromFloat64(-10, 60), 60, Near)
	for _, x := range []float64{-5, -1, 0, 1, 5, 10} {
		cur := Atan(FromFloat64(x, 60), 60, Near)
		if cur.Cmp(prev) < 0 {
			t.Fatalf("atan not monotone at x=%v", x)
		}
		prev = cur
	}
}

func TestPiMatchesMath(t *testing.T) {
	p := Pi(64, Near)
	if math.Abs(p.Float64()-math.Pi) > 1e-12 {
		t.Fatalf("Pi() = %v, want ~%v", p.Float64(), math.Pi)
	}
}

func TestDirectionOpposite(t *testing.T) {
	if Down.Opposite() != Up || Up.Opposite() != Down || Near.Opposite() != Near {
		t.Fatalf("Opposite() mapping broken")
	}
}
