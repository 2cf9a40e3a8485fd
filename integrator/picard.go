package integrator

import (
	"ariadne/bounder"
	"ariadne/function"
	"ariadne/interval"
	"ariadne/numeric"
	"ariadne/taylormodel"
)

// PicardIntegrator implements spec.md 4.6's Picard method: start from
// phi^(0) = identity on the state variables with error equal to the
// bounder's coarse radius, then repeatedly set
// phi^(k+1) = antiderivative_t(f(phi^(k))) + x, sweeping after every
// step, until the error bound drops below step_maximum_error.
type PicardIntegrator struct {
	Config Config
}

// NewPicardIntegrator returns a PicardIntegrator with defaults applied.
func NewPicardIntegrator(cfg Config) *PicardIntegrator {
	cfg.ApplyDefaults()
	return &PicardIntegrator{Config: cfg}
}

var _ Integrator = (*PicardIntegrator)(nil)

// Step builds the Picard flow expansion. The (n+1)-th model variable is
// time; f is evaluated only at the n state-variable arguments.
func (p *PicardIntegrator) Step(f *function.Function, d interval.Box, h numeric.Float) ([]*taylormodel.Model, error) {
	cfg := p.Config
	n := len(d)
	bRes, err := bounder.Bound(f, d, h, cfg.Prec)
	if err != nil {
		return nil, err
	}

	degCap := combinedDegreeCap(&cfg)
	timeVar := n
	// The extended model's time coordinate ranges over the implicit
	// unit interval [-1,1], standing for real elapsed time
	// t = h/2*(u+1) in [0,h]; scaling f by h/2 before integrating
	// w.r.t. u gives the correct physical antiderivative.
	halfH := numeric.Div2(h, cfg.Prec)

	phi := make([]*taylormodel.Model, n)
	for i := 0; i < n; i++ {
		m := taylormodel.Identity(n+1, degCap, i, cfg.Prec)
		m, err := m.WithError(bRes.Box[i].Radius())
		if err != nil {
			return nil, err
		}
		phi[i] = m
	}

	for iter := 0; iter < cfg.MaxPicardIterations; iter++ {
		fphi, err := f.EvaluateModel(phi)
		if err != nil {
			return nil, err
		}
		next := make([]*taylormodel.Model, n)
		for i := 0; i < n; i++ {
			scaled := taylormodel.ScalarMulInterval(interval.Point(halfH), fphi[i])
			integ := taylormodel.AntiderivativeVar(scaled, timeVar)
			// Base the antiderivative at u=-1 (t=0), so phi(x,-1) = x.
			start := make([]*taylormodel.Model, n+1)
			for j := 0; j < n; j++ {
				start[j] = taylormodel.Identity(n+1, integ.MaxDegree, j, cfg.Prec)
			}
			start[timeVar] = taylormodel.FromConstant(n+1, integ.MaxDegree, numeric.FromFloat64(-1, cfg.Prec), cfg.Prec)
			integ = taylormodel.Sub(integ, taylormodel.Compose(integ, start))
			seed := taylormodel.Identity(n+1, integ.MaxDegree, i, cfg.Prec)
			integ = taylormodel.Add(integ, seed)
			integ = taylormodel.Sweep(integ, cfg.stepSweepThresholdFloat())
			integ = capDegree(integ, degCap)
			next[i] = integ
		}
		phi = next
		if maxModelError(phi).Cmp(cfg.stepMaximumErrorFloat()) < 0 {
			return phi, nil
		}
	}
	return nil, &FlowTimeStepException{Detail: "picard iteration did not converge within the configured iteration budget"}
}
