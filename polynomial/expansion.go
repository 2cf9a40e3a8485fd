package polynomial

import "sort"

// Term is one (index, coefficient) pair of an Expansion.
type Term[X any] struct {
	Index MultiIndex
	Coeff X
}

// Expansion is a mapping from multi-index to coefficient X, stored
// densely in insertion order for cache locality (spec.md 3). Canonical
// form — unique, sorted keys — is only guaranteed after Canonicalize;
// intermediate construction (Append) may hold duplicates.
type Expansion[X any] struct {
	terms []Term[X]
}

// NewExpansion builds an empty expansion with capacity hint cap.
func NewExpansion[X any](capHint int) *Expansion[X] {
	return &Expansion[X]{terms: make([]Term[X], 0, capHint)}
}

// Append adds a term without checking for an existing key; callers that
// need uniqueness should follow with Canonicalize.
func (e *Expansion[X]) Append(idx MultiIndex, coeff X) {
	e.terms = append(e.terms, Term[X]{Index: idx, Coeff: coeff})
}

// Len returns the number of stored terms (may include duplicates before
// Canonicalize).
func (e *Expansion[X]) Len() int { return len(e.terms) }

// Terms returns the underlying term slice; callers must not retain it
// across a mutating call.
func (e *Expansion[X]) Terms() []Term[X] { return e.terms }

// Find returns the coefficient at idx and whether it was present. O(n);
// callers on a hot path should Canonicalize first and binary search, or
// maintain their own index.
func (e *Expansion[X]) Find(idx MultiIndex) (X, bool) {
	for _, t := range e.terms {
		if t.Index.Equal(idx) {
			return t.Coeff, true
		}
	}
	var zero X
	return zero, false
}

// SortGraded sorts terms into the canonical graded order (degree, then
// lex), the order Taylor models use internally.
func (e *Expansion[X]) SortGraded() {
	sort.SliceStable(e.terms, func(i, j int) bool {
		return CompareGraded(e.terms[i].Index, e.terms[j].Index) < 0
	})
}

// SortLex sorts terms purely lexicographically.
func (e *Expansion[X]) SortLex() {
	sort.SliceStable(e.terms, func(i, j int) bool {
		return CompareLex(e.terms[i].Index, e.terms[j].Index) < 0
	})
}

// CombineDuplicates merges terms that share a multi-index using add, and
// sorts the result into graded order. Merged coefficients that come out
// zero are kept; RemoveZeros drops them.
func (e *Expansion[X]) CombineDuplicates(add func(a, b X) X) {
	e.SortGraded()
	out := e.terms[:0]
	for _, t := range e.terms {
		if n := len(out); n > 0 && out[n-1].Index.Equal(t.Index) {
			out[n-1].Coeff = add(out[n-1].Coeff, t.Coeff)
			continue
		}
		out = append(out, t)
	}
	e.terms = out
}

// RemoveZeros drops every term for which isZero reports true, preserving
// relative order.
func (e *Expansion[X]) RemoveZeros(isZero func(X) bool) {
	out := e.terms[:0]
	for _, t := range e.terms {
		if isZero(t.Coeff) {
			continue
		}
		out = append(out, t)
	}
	e.terms = out
}

// Canonicalize combines duplicates and removes zeros in one pass,
// leaving the invariant spec.md 3 requires: unique, sorted keys.
func (e *Expansion[X]) Canonicalize(add func(a, b X) X, isZero func(X) bool) {
	e.CombineDuplicates(add)
	e.RemoveZeros(isZero)
}

// Clone returns a deep copy of the term slice (coefficients are copied
// by value, which is correct for numeric.Float/Interval/float64 but
// callers storing pointer-like X must supply their own deep-copy term
// map if that matters).
func (e *Expansion[X]) Clone() *Expansion[X] {
	cp := make([]Term[X], len(e.terms))
	copy(cp, e.terms)
	return &Expansion[X]{terms: cp}
}

// Map builds a new Expansion by applying f to every coefficient,
// dropping terms where keep(coeff) is false post-transform is left to
// the caller via RemoveZeros.
func Map[X, Y any](e *Expansion[X], f func(X) Y) *Expansion[Y] {
	out := NewExpansion[Y](e.Len())
	for _, t := range e.terms {
		out.Append(t.Index, f(t.Coeff))
	}
	return out
}
