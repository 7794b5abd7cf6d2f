package scroller

import "errors"

var (
	// ErrUnknownInterpolator indicates a lookup for an unregistered easing curve.
	ErrUnknownInterpolator = errors.New("scroller: unknown interpolator")
)
