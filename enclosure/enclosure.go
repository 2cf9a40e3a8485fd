// Package enclosure implements spec.md 4.7's Enclosure: a Taylor-model
// patch phi : D -> R^n over an implicit parameter box, narrowed by
// optional inequality constraints c_j(s) <= 0, with labels naming the
// state components. Enclosures are immutable; every operation returns
// a new value rather than mutating in place, mirroring
// original_source/source/dynamics/vector_field_evolver.hpp's
// create/transform/discard lifecycle translated into Go value
// semantics.
package enclosure

import (
	"fmt"

	"ariadne/canvas"
	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

// Enclosure is (D, Phi, Constraints, Labels). D itself is left implicit
// as [-1,1]^k, k = Phi[0].Vars, the same convention taylormodel.Model
// uses throughout.
type Enclosure struct {
	Phi         []*taylormodel.Model
	Constraints []*taylormodel.Model
	Labels      []string
	Prec        uint
}

// FromBox builds the enclosure representing exactly the box itself:
// phi_i(s) = mid_i + radius_i*s_i, zero constraints, zero error.
func FromBox(box interval.Box, labels []string, prec uint) *Enclosure {
	n := len(box)
	phi := make([]*taylormodel.Model, n)
	for i, iv := range box {
		mid := taylormodel.FromConstant(n, 1, iv.Midpoint(), prec)
		scaled := taylormodel.ScalarMulInterval(interval.Point(iv.Radius()), taylormodel.Identity(n, 1, i, prec))
		phi[i] = taylormodel.Add(mid, scaled)
	}
	lbl := labels
	if lbl == nil {
		lbl = make([]string, n)
		for i := range lbl {
			lbl[i] = fmt.Sprintf("x%d", i)
		}
	}
	return &Enclosure{Phi: phi, Labels: lbl, Prec: prec}
}

// Dimension returns n, the number of state components phi produces.
func (e *Enclosure) Dimension() int { return len(e.Phi) }

// ParameterCount returns k, the dimension of the implicit parameter
// domain D.
func (e *Enclosure) ParameterCount() int {
	if len(e.Phi) == 0 {
		return 0
	}
	return e.Phi[0].Vars
}

// ApplyMap returns phi' = g o phi, leaving constraints and labels
// unchanged (spec.md 4.7).
func (e *Enclosure) ApplyMap(g *function.Function) (*Enclosure, error) {
	if g.ArgumentSize() != e.Dimension() {
		return nil, fmt.Errorf("enclosure: ApplyMap: g expects %d arguments, enclosure has dimension %d", g.ArgumentSize(), e.Dimension())
	}
	newPhi, err := g.EvaluateModel(e.Phi)
	if err != nil {
		return nil, err
	}
	return &Enclosure{Phi: newPhi, Constraints: e.Constraints, Labels: e.Labels, Prec: e.Prec}, nil
}

// ApplyFlow returns phi'(s,t) = psi(phi(s),t) for t in [0,h], extending
// the parameter space by one time dimension (spec.md 4.7). psi is the
// n flow-step Taylor models the Integrator produces over D x [-h,h]
// (see integrator.Config's unit-time convention: psi's last variable
// ranges over [-1,1] standing for real time in [0,h]). Existing
// constraints are embedded by appending a dummy (always-satisfied)
// dependency on the new time variable, so their parameter count stays
// in sync with phi's.
func (e *Enclosure) ApplyFlow(psi []*taylormodel.Model, h numeric.Float) (*Enclosure, error) {
	n := e.Dimension()
	if len(psi) != n {
		return nil, fmt.Errorf("enclosure: ApplyFlow: expected %d flow-step models, got %d", n, len(psi))
	}
	k := e.ParameterCount()
	extDeg := maxModelDegree(psi)

	// liftGen embeds the old k-dimensional parameter space into the new
	// k+1-dimensional one (old variables unchanged, new time variable
	// untouched by anything defined purely in terms of the old ones).
	liftGen := make([]*taylormodel.Model, k)
	for j := 0; j < k; j++ {
		liftGen[j] = taylormodel.Identity(k+1, extDeg, j, e.Prec)
	}
	lifted := make([]*taylormodel.Model, n)
	for i := 0; i < n; i++ {
		lifted[i] = taylormodel.Compose(raiseDegree(e.Phi[i], extDeg), liftGen)
	}
	timeVar := taylormodel.Identity(k+1, extDeg, k, e.Prec)

	args := append(append([]*taylormodel.Model(nil), lifted...), timeVar)
	newPhi := make([]*taylormodel.Model, n)
	for i, m := range psi {
		newPhi[i] = taylormodel.Compose(raiseDegree(m, extDeg), args)
	}

	newConstraints := make([]*taylormodel.Model, len(e.Constraints))
	for i, c := range e.Constraints {
		newConstraints[i] = taylormodel.Compose(raiseDegree(c, extDeg), liftGen)
	}

	lbl := append(append([]string(nil), e.Labels...), "t")
	return &Enclosure{Phi: newPhi, Constraints: newConstraints, Labels: lbl, Prec: e.Prec}, nil
}

// ApplyFlowStep evaluates psi at t=h exactly (the "X''" term of spec.md
// 4.9's evolver loop, pop the step's final state rather than its whole
// reach tube): it is ApplyFlow followed by substituting the time
// variable's extremal value u=1 (real time h).
func (e *Enclosure) ApplyFlowStep(psi []*taylormodel.Model, h numeric.Float) (*Enclosure, error) {
	flowed, err := e.ApplyFlow(psi, h)
	if err != nil {
		return nil, err
	}
	k := flowed.ParameterCount()
	g := make([]*taylormodel.Model, k)
	for j := 0; j < k-1; j++ {
		g[j] = taylormodel.Identity(k-1, 0, j, e.Prec)
	}
	g[k-1] = taylormodel.FromConstant(k-1, 0, numeric.FromFloat64(1, e.Prec), e.Prec)
	newPhi := make([]*taylormodel.Model, len(flowed.Phi))
	for i, m := range flowed.Phi {
		newPhi[i] = taylormodel.Compose(m, g)
	}
	newConstraints := make([]*taylormodel.Model, len(flowed.Constraints))
	for i, c := range flowed.Constraints {
		newConstraints[i] = taylormodel.Compose(c, g)
	}
	return &Enclosure{Phi: newPhi, Constraints: newConstraints, Labels: e.Labels, Prec: e.Prec}, nil
}

// NewStateConstraint appends h o phi as a new parameter constraint
// (spec.md 4.7).
func (e *Enclosure) NewStateConstraint(h *function.Function) (*Enclosure, error) {
	if h.ArgumentSize() != e.Dimension() || h.ResultSize() != 1 {
		return nil, fmt.Errorf("enclosure: NewStateConstraint: h must map dimension %d to 1 result", e.Dimension())
	}
	val, err := h.EvaluateModel(e.Phi)
	if err != nil {
		return nil, err
	}
	newConstraints := append(append([]*taylormodel.Model(nil), e.Constraints...), val[0])
	return &Enclosure{Phi: e.Phi, Constraints: newConstraints, Labels: e.Labels, Prec: e.Prec}, nil
}

// Split bisects the enclosure along parameter k, yielding two
// enclosures whose union over-approximates the original (spec.md
// 4.7). Both phi components and every constraint are split the same
// way, so the two halves still satisfy the same constraint set.
func (e *Enclosure) Split(k int) (lower, upper *Enclosure, err error) {
	if k < 0 || k >= e.ParameterCount() {
		return nil, nil, fmt.Errorf("enclosure: Split: parameter index %d out of range", k)
	}
	lowerPhi := make([]*taylormodel.Model, len(e.Phi))
	upperPhi := make([]*taylormodel.Model, len(e.Phi))
	for i, m := range e.Phi {
		lowerPhi[i], upperPhi[i] = taylormodel.Split(m, k)
	}
	lowerC := make([]*taylormodel.Model, len(e.Constraints))
	upperC := make([]*taylormodel.Model, len(e.Constraints))
	for i, c := range e.Constraints {
		lowerC[i], upperC[i] = taylormodel.Split(c, k)
	}
	lower = &Enclosure{Phi: lowerPhi, Constraints: lowerC, Labels: e.Labels, Prec: e.Prec}
	upper = &Enclosure{Phi: upperPhi, Constraints: upperC, Labels: e.Labels, Prec: e.Prec}
	return lower, upper, nil
}

// Recondition sweeps every phi and constraint component at threshold
// tau, reabsorbing small high-order terms into the error bound (spec.md
// 4.9's "periodically sweep Taylor models" reconditioning knob).
func (e *Enclosure) Recondition(tau numeric.Float) *Enclosure {
	newPhi := make([]*taylormodel.Model, len(e.Phi))
	for i, m := range e.Phi {
		newPhi[i] = taylormodel.Sweep(m, tau)
	}
	newConstraints := make([]*taylormodel.Model, len(e.Constraints))
	for i, c := range e.Constraints {
		newConstraints[i] = taylormodel.Sweep(c, tau)
	}
	return &Enclosure{Phi: newPhi, Constraints: newConstraints, Labels: e.Labels, Prec: e.Prec}
}

// MaxError returns the largest per-component Taylor-model error bound
// across phi, the quantity compared against maximum_spacial_error.
func (e *Enclosure) MaxError() numeric.Float {
	max := numeric.FromFloat64(0, e.Prec)
	for _, m := range e.Phi {
		max = numeric.Max(max, m.Err)
	}
	return max
}

// BoundingBox evaluates phi at D via each component's Taylor-model
// range (spec.md 4.7).
func (e *Enclosure) BoundingBox() interval.Box {
	out := make(interval.Box, len(e.Phi))
	for i, m := range e.Phi {
		out[i] = m.Range(nil)
	}
	return out
}

// Radius returns the supremum-norm radius of the bounding box, the
// quantity the evolver compares against maximum_enclosure_radius
// (spec.md 4.9).
func (e *Enclosure) Radius() numeric.Float {
	return e.BoundingBox().Radius()
}

// Vertices flattens the bounding box into a 2D polygon vertex list for
// the Canvas collaborator, per spec.md 6 and the orbit.h serialization
// supplement. Only meaningful when Dimension()==2; higher dimensions
// project onto the first two components.
func (e *Enclosure) Vertices() [][2]float64 {
	box := e.BoundingBox()
	if len(box) < 2 {
		return nil
	}
	x, y := box[0], box[1]
	return [][2]float64{
		{x.Lo.Float64(), y.Lo.Float64()},
		{x.Hi.Float64(), y.Lo.Float64()},
		{x.Hi.Float64(), y.Hi.Float64()},
		{x.Lo.Float64(), y.Hi.Float64()},
	}
}

// Draw forwards the enclosure's projected bounding-box polygon to the
// plotting collaborator (spec.md 4.7/6: "draw(canvas, projection)" —
// the core never touches rendering internals directly).
func (e *Enclosure) Draw(c canvas.Drawer) {
	v := e.Vertices()
	if len(v) == 0 {
		return
	}
	c.DrawPolygon(v)
}

func maxModelDegree(models []*taylormodel.Model) int {
	max := 0
	for _, m := range models {
		if m.MaxDegree > max {
			max = m.MaxDegree
		}
	}
	return max
}

// raiseDegree returns m unchanged in content but with MaxDegree raised
// to at least deg, so Compose's internal min-degree truncation never
// clips a term that was already present.
func raiseDegree(m *taylormodel.Model, deg int) *taylormodel.Model {
	if m.MaxDegree >= deg {
		return m
	}
	out := m.Clone()
	out.MaxDegree = deg
	return out
}
