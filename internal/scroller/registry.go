package scroller

import (
	"fmt"
	"sort"
)

var interpolators = map[string]func() Interpolator{
	"viscous":    func() Interpolator { return NewViscousFluid() },
	"decelerate": func() Interpolator { return NewDecelerate(2.5) },
	"quadratic":  func() Interpolator { return NewDecelerate(1.0) },
	"linear":     func() Interpolator { return Linear{} },
	"easeinout":  func() Interpolator { return AccelerateDecelerate{} },
}

// GetInterpolator builds a fresh interpolator by name.
func GetInterpolator(name string) (Interpolator, error) {
	fn, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterpolator, name)
	}
	return fn(), nil
}

func ListInterpolators() []string {
	names := make([]string, 0, len(interpolators))
	for name := range interpolators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Interpolators returns a copy of the registered constructors.
func Interpolators() map[string]func() Interpolator {
	out := make(map[string]func() Interpolator, len(interpolators))
	for name, fn := range interpolators {
		out[name] = fn
	}
	return out
}
