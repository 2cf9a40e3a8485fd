package interval

import "ariadne/numeric"

// Box is a Cartesian product of intervals, the n-dimensional domain type
// used throughout the evaluation layers (the D of spec.md 3's Taylor
// Model and Enclosure).
type Box []Interval

// NewBox builds a box from float64 bound pairs, e.g.
// NewBox(53, [2]float64{0, 1}, [2]float64{-1, 1}) for [0,1]x[-1,1].
func NewBox(prec uint, bounds ...[2]float64) Box {
	b := make(Box, len(bounds))
	for i, p := range bounds {
		b[i] = FromFloat64(p[0], p[1], prec)
	}
	return b
}

// Dim returns the box's dimension.
func (b Box) Dim() int { return len(b) }

// IsEmpty reports whether any coordinate interval is empty.
func (b Box) IsEmpty() bool {
	for _, c := range b {
		if c.IsEmpty() {
			return true
		}
	}
	return false
}

// Clone returns an independent copy (Interval/Float are immutable value
// types, but this documents intent at call sites that mutate a slice).
func (b Box) Clone() Box {
	out := make(Box, len(b))
	copy(out, b)
	return out
}

// Midpoint returns the box's centre point, one coordinate per dimension.
func (b Box) Midpoint() []numeric.Float {
	out := make([]numeric.Float, len(b))
	for i, c := range b {
		out[i] = c.Midpoint()
	}
	return out
}

// Radius returns the largest coordinate radius, used by the evolver's
// maximum_enclosure_radius split trigger (spec.md 4.9).
func (b Box) Radius() numeric.Float {
	if len(b) == 0 {
		return numeric.FromFloat64(0, 53)
	}
	r := b[0].Radius()
	for _, c := range b[1:] {
		if c.Radius().Cmp(r) > 0 {
			r = c.Radius()
		}
	}
	return r
}

// BoxHull returns the coordinatewise hull of two equal-dimension boxes.
func BoxHull(a, b Box) Box {
	out := make(Box, len(a))
	for i := range a {
		out[i] = Hull(a[i], b[i])
	}
	return out
}

// BoxSubset reports whether a is contained in b coordinatewise.
func BoxSubset(a, b Box) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Subset(a[i], b[i]) {
			return false
		}
	}
	return true
}

// WidenBy pads every coordinate of b outward by delta.
func (b Box) WidenBy(delta numeric.Float) Box {
	out := make(Box, len(b))
	for i, c := range b {
		out[i] = WidenBy(c, delta)
	}
	return out
}
