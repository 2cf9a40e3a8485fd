package grid

import (
	"testing"

	"ariadne/interval"
	"ariadne/numeric"
)

const prec = 53

func box2(xlo, xhi, ylo, yhi float64) interval.Box {
	return interval.Box{interval.FromFloat64(xlo, xhi, prec), interval.FromFloat64(ylo, yhi, prec)}
}

func TestRootBoxScalesByPrimaryHeight(t *testing.T) {
	p := NewPaving(2, 2, prec)
	root := p.RootBox()
	if root[0].Lo.Float64() != -4 || root[0].Hi.Float64() != 4 {
		t.Fatalf("expected root box [-4,4]^2 for primary height 2, got %v", root)
	}
}

func TestCellBoxBisectsRoundRobin(t *testing.T) {
	p := NewPaving(2, 0, prec)
	// depth 0 bisects axis 0 (upper half), depth 1 bisects axis 1 (lower half).
	c := p.CellBox([]bool{true, false})
	if c[0].Lo.Float64() != 0 || c[0].Hi.Float64() != 1 {
		t.Fatalf("expected axis 0 upper half [0,1], got %v", c[0])
	}
	if c[1].Lo.Float64() != -1 || c[1].Hi.Float64() != 0 {
		t.Fatalf("expected axis 1 lower half [-1,0], got %v", c[1])
	}
}

func TestAdjoinCellThenSuperset(t *testing.T) {
	p := NewPaving(2, 0, prec)
	path := []bool{true, false}
	p.AdjoinCell(path)
	if !p.Superset(path) {
		t.Fatalf("expected adjoined cell to be a superset of itself")
	}
	if p.Superset([]bool{false, true}) {
		t.Fatalf("unrelated cell should not be covered")
	}
}

func TestAdjoinOuterApproximationCoversTargetAtLeaves(t *testing.T) {
	p := NewPaving(2, 1, prec)
	target := box2(-0.4, 0.4, -0.4, 0.4)
	p.AdjoinOuterApproximation(target, 6, numeric.FromFloat64(0.01, prec))
	if p.root == nil {
		t.Fatalf("expected a non-empty tree after adjoining an outer approximation")
	}
	if p.root.isLeaf() && !p.root.enabled {
		t.Fatalf("expected outer approximation to enable some cell")
	}
}

func TestRecombineMergesEnabledSiblings(t *testing.T) {
	p := NewPaving(1, 0, prec)
	p.AdjoinCell([]bool{false})
	p.AdjoinCell([]bool{true})
	p.Recombine()
	if !p.root.isLeaf() || !p.root.enabled {
		t.Fatalf("expected recombine to merge both enabled children into a single enabled leaf")
	}
}

func TestUnionIntersectionDifference(t *testing.T) {
	a := NewPaving(1, 0, prec)
	a.AdjoinCell([]bool{false})
	b := NewPaving(1, 0, prec)
	b.AdjoinCell([]bool{true})

	u := Union(a, b)
	if !u.Superset([]bool{false}) || !u.Superset([]bool{true}) {
		t.Fatalf("union should cover both cells")
	}

	i := Intersection(a, b)
	if i.Superset([]bool{false}) || i.Superset([]bool{true}) {
		t.Fatalf("intersection of disjoint pavings should cover neither cell")
	}

	d := Difference(u, b)
	if !d.Superset([]bool{false}) || d.Superset([]bool{true}) {
		t.Fatalf("difference should retain only a's cell")
	}
}

func TestCellFingerprintDeterministic(t *testing.T) {
	c1 := Cell{PrimaryHeight: 2, Path: []bool{true, false, true}}
	c2 := Cell{PrimaryHeight: 2, Path: []bool{true, false, true}}
	c3 := Cell{PrimaryHeight: 2, Path: []bool{true, false, false}}
	if c1.Fingerprint() != c2.Fingerprint() {
		t.Fatalf("identical cells should fingerprint identically")
	}
	if c1.Fingerprint() == c3.Fingerprint() {
		t.Fatalf("distinct cells should fingerprint differently")
	}
}
