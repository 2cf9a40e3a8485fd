package bounder

import (
	"ariadne/interval"
	"ariadne/numeric"
)

func minkowskiSum(a, b interval.Box, prec uint) interval.Box {
	out := make(interval.Box, len(a))
	for i := range a {
		out[i] = interval.Add(a[i], b[i], prec)
	}
	return out
}

// scaleBox returns scalar*b, component-wise.
func scaleBox(scalar interval.Interval, b interval.Box, prec uint) interval.Box {
	out := make(interval.Box, len(b))
	for i := range b {
		out[i] = interval.Mul(scalar, b[i], prec)
	}
	return out
}

// widenBoxByFraction pads every component by frac*radius on each side.
func widenBoxByFraction(b interval.Box, frac float64, prec uint) interval.Box {
	out := make(interval.Box, len(b))
	fracF := numeric.FromFloat64(frac, prec)
	for i := range b {
		delta := numeric.Mul(b[i].Radius(), fracF, prec, numeric.Up)
		out[i] = interval.WidenBy(b[i], delta)
	}
	return out
}

// growAroundCentre scales each component's radius by factor about its
// own midpoint, used to enlarge a candidate self-map box between failed
// expansion iterations.
func growAroundCentre(b interval.Box, factor numeric.Float, prec uint) interval.Box {
	out := make(interval.Box, len(b))
	for i := range b {
		mid := b[i].Midpoint()
		rad := numeric.Mul(b[i].Radius(), factor, prec, numeric.Up)
		out[i] = interval.MustNew(numeric.Sub(mid, rad, prec, numeric.Down), numeric.Add(mid, rad, prec, numeric.Up))
	}
	return out
}

func boxSubset(a, b interval.Box) bool {
	for i := range a {
		if !interval.Subset(a[i], b[i]) {
			return false
		}
	}
	return true
}
