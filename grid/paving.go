// Package grid implements spec.md 4.8's Paving: a binary-subdivision
// tree over a root box scaled by a primary-cell height, with set
// operations (union, intersection, difference, superset) and a
// configurable outer-approximation strategy.
package grid

import (
	"ariadne/interval"
	"ariadne/numeric"
)

// node is one position in the binary subdivision tree. A node with no
// children is a leaf; its Enabled flag is the only thing that matters.
// A node with children ignores its own Enabled flag (coverage is
// determined entirely by the leaves beneath it).
type node struct {
	enabled  bool
	children [2]*node
}

func (n *node) isLeaf() bool { return n == nil || (n.children[0] == nil && n.children[1] == nil) }

// Paving is the tree plus the geometric parameters needed to map a
// subdivision path to a concrete box: dimension, primary-cell height
// (root box is [-2^h,2^h]^dim, per original_source's grid_operations.cc
// scaling law), and round-robin axis selection (axis at depth d is
// d mod dim).
type Paving struct {
	Dim           int
	PrimaryHeight int
	Prec          uint
	root          *node
}

// NewPaving returns an empty paving (no cells adjoined).
func NewPaving(dim, primaryHeight int, prec uint) *Paving {
	return &Paving{Dim: dim, PrimaryHeight: primaryHeight, Prec: prec}
}

// RootBox returns [-2^h,2^h]^dim at the paving's configured precision.
func (p *Paving) RootBox() interval.Box {
	bound := numeric.FromFloat64(pow2(p.PrimaryHeight), p.Prec)
	box := make(interval.Box, p.Dim)
	for i := range box {
		box[i] = interval.Interval{Lo: bound.Neg(), Hi: bound, Prec: p.Prec}
	}
	return box
}

func pow2(h int) float64 {
	if h >= 0 {
		v := 1.0
		for i := 0; i < h; i++ {
			v *= 2
		}
		return v
	}
	v := 1.0
	for i := 0; i < -h; i++ {
		v /= 2
	}
	return v
}

// CellBox returns the box a subdivision path identifies, bisecting the
// round-robin-selected axis at each depth.
func (p *Paving) CellBox(path []bool) interval.Box {
	box := p.RootBox()
	for depth, bit := range path {
		axis := depth % p.Dim
		lo, hi := box[axis].Lo, box[axis].Hi
		mid := numeric.Div2(numeric.Add(lo, hi, p.Prec, numeric.Near), p.Prec)
		if bit {
			box[axis] = interval.Interval{Lo: mid, Hi: hi, Prec: p.Prec}
		} else {
			box[axis] = interval.Interval{Lo: lo, Hi: mid, Prec: p.Prec}
		}
	}
	return box
}

// AdjoinCell ensures the tree contains path, creating intermediate
// nodes as needed, and enables the leaf.
func (p *Paving) AdjoinCell(path []bool) {
	if p.root == nil {
		p.root = &node{}
	}
	cur := p.root
	for _, bit := range path {
		idx := 0
		if bit {
			idx = 1
		}
		if cur.children[idx] == nil {
			cur.children[idx] = &node{}
		}
		cur = cur.children[idx]
	}
	cur.enabled = true
	cur.children = [2]*node{}
}

// AdjoinOuterApproximation recursively subdivides the primary cell
// enclosing box until cells are either disjoint from box, fully inside
// an eps-widening of box, or have reached depth maxDepth, enabling the
// intersecting ones (spec.md 4.8).
func (p *Paving) AdjoinOuterApproximation(box interval.Box, maxDepth int, eps numeric.Float) {
	if p.root == nil {
		p.root = &node{}
	}
	widened := widen(box, eps, p.Prec)
	p.subdivide(p.root, p.RootBox(), nil, box, widened, maxDepth)
}

func (p *Paving) subdivide(n *node, cellBox interval.Box, path []bool, target, widenedTarget interval.Box, maxDepth int) {
	if disjointBoxes(cellBox, target) {
		return
	}
	if len(path) >= maxDepth || subsetBox(cellBox, widenedTarget) {
		n.enabled = true
		n.children = [2]*node{}
		return
	}
	axis := len(path) % p.Dim
	lo, hi := cellBox[axis].Lo, cellBox[axis].Hi
	mid := numeric.Div2(numeric.Add(lo, hi, p.Prec, numeric.Near), p.Prec)

	lowerBox := append(interval.Box(nil), cellBox...)
	lowerBox[axis] = interval.Interval{Lo: lo, Hi: mid, Prec: p.Prec}
	upperBox := append(interval.Box(nil), cellBox...)
	upperBox[axis] = interval.Interval{Lo: mid, Hi: hi, Prec: p.Prec}

	if n.children[0] == nil {
		n.children[0] = &node{}
	}
	if n.children[1] == nil {
		n.children[1] = &node{}
	}
	n.enabled = false
	p.subdivide(n.children[0], lowerBox, append(append([]bool(nil), path...), false), target, widenedTarget, maxDepth)
	p.subdivide(n.children[1], upperBox, append(append([]bool(nil), path...), true), target, widenedTarget, maxDepth)
}

// AdjoinCellID adjoins the cell identified by id.Path (spec.md 4.8's
// "Adjoin cell" operation, addressed by Cell rather than a raw path).
func (p *Paving) AdjoinCellID(id Cell) { p.AdjoinCell(id.Path) }

// SupersetOf reports whether the paving covers the cell id identifies
// (spec.md 4.8's Superset(cell)).
func (p *Paving) SupersetOf(id Cell) bool { return p.Superset(id.Path) }

// Recombine walks the tree post-order, replacing any pair of enabled
// sibling leaves with a single enabled parent (spec.md 4.8).
func (p *Paving) Recombine() {
	p.root = recombineNode(p.root)
}

func recombineNode(n *node) *node {
	if n == nil || n.isLeaf() {
		return n
	}
	n.children[0] = recombineNode(n.children[0])
	n.children[1] = recombineNode(n.children[1])
	if n.children[0].isLeaf() && n.children[1].isLeaf() && n.children[0].enabled && n.children[1].enabled {
		return &node{enabled: true}
	}
	return n
}

// Superset reports whether every reachable leaf along path is enabled
// — i.e. whether the paving entirely covers the cell path identifies.
func (p *Paving) Superset(path []bool) bool {
	cur := p.root
	for _, bit := range path {
		if cur == nil {
			return false
		}
		if cur.isLeaf() {
			return cur.enabled
		}
		idx := 0
		if bit {
			idx = 1
		}
		cur = cur.children[idx]
	}
	return allEnabled(cur)
}

func allEnabled(n *node) bool {
	if n == nil {
		return false
	}
	if n.isLeaf() {
		return n.enabled
	}
	return allEnabled(n.children[0]) && allEnabled(n.children[1])
}

// Union returns a paving enabling every cell enabled in a or b (tree
// merge, spec.md 4.8).
func Union(a, b *Paving) *Paving {
	out := &Paving{Dim: a.Dim, PrimaryHeight: a.PrimaryHeight, Prec: a.Prec}
	out.root = mergeNodes(a.root, b.root, func(x, y bool) bool { return x || y })
	return out
}

// Intersection returns a paving enabling only cells enabled in both a
// and b.
func Intersection(a, b *Paving) *Paving {
	out := &Paving{Dim: a.Dim, PrimaryHeight: a.PrimaryHeight, Prec: a.Prec}
	out.root = mergeNodes(a.root, b.root, func(x, y bool) bool { return x && y })
	return out
}

// Difference returns a paving enabling cells enabled in a but not b.
func Difference(a, b *Paving) *Paving {
	out := &Paving{Dim: a.Dim, PrimaryHeight: a.PrimaryHeight, Prec: a.Prec}
	out.root = mergeNodes(a.root, b.root, func(x, y bool) bool { return x && !y })
	return out
}

// mergeNodes combines two (possibly nil, possibly leaf, possibly
// internal) nodes via op applied to their boolean coverage. A nil node
// is treated as a uniformly-disabled leaf.
func mergeNodes(a, b *node, op func(x, y bool) bool) *node {
	if a.isLeaf() && b.isLeaf() {
		return &node{enabled: op(enabledOf(a), enabledOf(b))}
	}
	aLo, aHi := childOrUniform(a, 0), childOrUniform(a, 1)
	bLo, bHi := childOrUniform(b, 0), childOrUniform(b, 1)
	out := &node{
		children: [2]*node{
			mergeNodes(aLo, bLo, op),
			mergeNodes(aHi, bHi, op),
		},
	}
	return recombineNode(out)
}

func enabledOf(n *node) bool {
	if n == nil {
		return false
	}
	return n.enabled
}

// childOrUniform returns n's child idx, or a uniform leaf matching n's
// own enabled state if n is itself a leaf (covers the "one tree is
// shallower than the other" merge case).
func childOrUniform(n *node, idx int) *node {
	if n == nil {
		return nil
	}
	if n.isLeaf() {
		return &node{enabled: n.enabled}
	}
	return n.children[idx]
}

// EnabledCells enumerates every enabled leaf as a Cell, walking the
// tree depth-first.
func (p *Paving) EnabledCells() []Cell {
	var out []Cell
	collectEnabled(p.root, nil, p.PrimaryHeight, &out)
	return out
}

func collectEnabled(n *node, path []bool, primaryHeight int, out *[]Cell) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		if n.enabled {
			*out = append(*out, Cell{PrimaryHeight: primaryHeight, Path: append([]bool(nil), path...)})
		}
		return
	}
	collectEnabled(n.children[0], append(append([]bool(nil), path...), false), primaryHeight, out)
	collectEnabled(n.children[1], append(append([]bool(nil), path...), true), primaryHeight, out)
}

// IsEmpty reports whether the paving has no enabled cells.
func (p *Paving) IsEmpty() bool {
	return len(p.EnabledCells()) == 0
}

func widen(box interval.Box, eps numeric.Float, prec uint) interval.Box {
	out := make(interval.Box, len(box))
	for i, iv := range box {
		out[i] = interval.Interval{Lo: numeric.Sub(iv.Lo, eps, prec, numeric.Down), Hi: numeric.Add(iv.Hi, eps, prec, numeric.Up), Prec: prec}
	}
	return out
}

func disjointBoxes(a, b interval.Box) bool {
	for i := range a {
		if a[i].Hi.Cmp(b[i].Lo) < 0 || b[i].Hi.Cmp(a[i].Lo) < 0 {
			return true
		}
	}
	return false
}

func subsetBox(a, b interval.Box) bool {
	for i := range a {
		if a[i].Lo.Cmp(b[i].Lo) < 0 || a[i].Hi.Cmp(b[i].Hi) > 0 {
			return false
		}
	}
	return true
}
