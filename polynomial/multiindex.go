// Package polynomial implements the L1 multi-index and expansion types:
// sparse polynomial coefficient storage keyed by variable-degree tuples,
// the foundation under differential and Taylor-model algebra.
package polynomial

import "fmt"

// MultiIndex is a non-negative integer tuple (a_1,...,a_n) with a
// precomputed total degree, used as the key into an Expansion.
type MultiIndex struct {
	exps   []int
	degree int
}

// New builds a MultiIndex from explicit per-variable exponents. Negative
// exponents are rejected by panicking: a MultiIndex is a compile-time-ish
// invariant of the algebra, not user input to validate softly.
func New(exps ...int) MultiIndex {
	degree := 0
	cp := make([]int, len(exps))
	for i, e := range exps {
		if e < 0 {
			panic(fmt.Sprintf("polynomial: negative exponent at position %d", i))
		}
		cp[i] = e
		degree += e
	}
	return MultiIndex{exps: cp, degree: degree}
}

// Zero returns the multi-index (0,...,0) in n variables.
func Zero(n int) MultiIndex {
	return MultiIndex{exps: make([]int, n), degree: 0}
}

// Vars returns the number of variables (tuple length).
func (m MultiIndex) Vars() int { return len(m.exps) }

// Degree returns the precomputed total degree sum(a_i).
func (m MultiIndex) Degree() int { return m.degree }

// At returns the exponent of variable j (0-indexed).
func (m MultiIndex) At(j int) int { return m.exps[j] }

// Exps returns a defensive copy of the exponent tuple.
func (m MultiIndex) Exps() []int {
	out := make([]int, len(m.exps))
	copy(out, m.exps)
	return out
}

// Increment returns a copy with variable j's exponent raised by one,
// used by antiderivative_j (spec.md 4.2).
func (m MultiIndex) Increment(j int) MultiIndex {
	cp := m.Exps()
	cp[j]++
	return MultiIndex{exps: cp, degree: m.degree + 1}
}

// Decrement returns a copy with variable j's exponent lowered by one.
// ok is false if the exponent is already zero.
func (m MultiIndex) Decrement(j int) (MultiIndex, bool) {
	if m.exps[j] == 0 {
		return MultiIndex{}, false
	}
	cp := m.Exps()
	cp[j]--
	return MultiIndex{exps: cp, degree: m.degree - 1}, true
}

// Add returns the pointwise sum of two multi-indices of equal arity,
// used by convolution (term_i * term_j contributes to index_i+index_j).
func Add(a, b MultiIndex) MultiIndex {
	out := make([]int, len(a.exps))
	deg := 0
	for i := range a.exps {
		out[i] = a.exps[i] + b.exps[i]
		deg += out[i]
	}
	return MultiIndex{exps: out, degree: deg}
}

// Equal reports exact tuple equality.
func (m MultiIndex) Equal(o MultiIndex) bool {
	if len(m.exps) != len(o.exps) {
		return false
	}
	for i := range m.exps {
		if m.exps[i] != o.exps[i] {
			return false
		}
	}
	return true
}

// CompareLex orders two multi-indices lexicographically by exponent
// tuple, left-to-right.
func CompareLex(a, b MultiIndex) int {
	n := len(a.exps)
	if len(b.exps) < n {
		n = len(b.exps)
	}
	for i := 0; i < n; i++ {
		if a.exps[i] != b.exps[i] {
			if a.exps[i] < b.exps[i] {
				return -1
			}
			return 1
		}
	}
	return len(a.exps) - len(b.exps)
}

// CompareGraded orders by total degree first, then lexicographically;
// this is the canonical order Taylor models sort their terms into
// (spec.md 4.2).
func CompareGraded(a, b MultiIndex) int {
	if a.degree != b.degree {
		return a.degree - b.degree
	}
	return CompareLex(a, b)
}

func (m MultiIndex) String() string {
	return fmt.Sprintf("%v", m.exps)
}
