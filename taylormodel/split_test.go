package taylormodel

import (
	"testing"

	"ariadne/interval"
	"ariadne/numeric"
)

func TestSplitHalvesCoverOriginalRange(t *testing.T) {
	const prec = 53
	m := Identity(1, 2, 0, prec)
	lower, upper := Split(m, 0)

	rl := lower.Range(nil)
	ru := upper.Range(nil)
	hull := interval.Hull(rl, ru)
	original := m.Range(nil)

	if !hull.Contains(original.Lo) || !hull.Contains(original.Hi) {
		t.Fatalf("union of split halves %v should cover original range %v", hull, original)
	}
	if !rl.Contains(numeric.FromFloat64(-0.5, prec)) {
		t.Fatalf("lower half should contain its own midpoint -0.5, got %v", rl)
	}
	if !ru.Contains(numeric.FromFloat64(0.5, prec)) {
		t.Fatalf("upper half should contain its own midpoint 0.5, got %v", ru)
	}
}

func TestSplitHalvesCarryOriginalError(t *testing.T) {
	const prec = 53
	originalErr := numeric.FromFloat64(1e-6, prec)
	m, err := Identity(1, 2, 0, prec).WithError(originalErr)
	if err != nil {
		t.Fatalf("WithError: %v", err)
	}
	lower, upper := Split(m, 0)
	if lower.Err.Cmp(originalErr) < 0 {
		t.Fatalf("lower half error %v should be at least the original error %v", lower.Err, originalErr)
	}
	if upper.Err.Cmp(originalErr) < 0 {
		t.Fatalf("upper half error %v should be at least the original error %v", upper.Err, originalErr)
	}
}
