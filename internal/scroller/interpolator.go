package scroller

import "math"

// Interpolator maps an elapsed fraction in [0,1] to a progress fraction.
type Interpolator interface {
	Interpolation(x float64) float64
}

// InterpolatorFunc adapts a plain easing function.
type InterpolatorFunc func(x float64) float64

func (f InterpolatorFunc) Interpolation(x float64) float64 {
	return f(x)
}

const viscousFluidScale = 8.0

// ViscousFluid eases out like a body moving through a viscous medium:
// exponential approach first, then a long settle. It is the default scroll curve.
type ViscousFluid struct {
	normalize float64
	offset    float64
}

func NewViscousFluid() *ViscousFluid {
	v := &ViscousFluid{}
	v.normalize = 1.0 / viscousFluid(1.0)
	v.offset = 1.0 - v.normalize*viscousFluid(1.0)
	return v
}

func viscousFluid(x float64) float64 {
	x *= viscousFluidScale
	if x < 1.0 {
		x -= 1.0 - math.Exp(-x)
	} else {
		start := 0.36787944117 // 1/e == exp(-1)
		x = 1.0 - math.Exp(1.0-x)
		x = start + x*(1.0-start)
	}
	return x
}

func (v *ViscousFluid) Interpolation(in float64) float64 {
	out := v.normalize * viscousFluid(in)
	if out > 0 {
		return out + v.offset
	}
	return out
}

// Decelerate starts fast and slows down; factor 1 is a plain quadratic
// ease-out, larger factors exaggerate it.
type Decelerate struct {
	Factor float64
}

func NewDecelerate(factor float64) *Decelerate {
	return &Decelerate{Factor: factor}
}

func (d *Decelerate) Interpolation(x float64) float64 {
	if d.Factor == 1.0 {
		return 1.0 - (1.0-x)*(1.0-x)
	}
	return 1.0 - math.Pow(1.0-x, 2*d.Factor)
}

// Linear is the identity curve.
type Linear struct{}

func (Linear) Interpolation(x float64) float64 { return x }

// AccelerateDecelerate is a cosine ease in/out.
type AccelerateDecelerate struct{}

func (AccelerateDecelerate) Interpolation(x float64) float64 {
	return math.Cos((x+1)*math.Pi)/2 + 0.5
}
