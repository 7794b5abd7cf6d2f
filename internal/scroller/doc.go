// Package scroller implements the motion simulator behind a wheel picker.
//
// A [Scroller] runs in one of two modes:
//
//   - [ModeScroll]: a fixed-duration move from start to start+delta, eased by
//     an [Interpolator] (viscous fluid by default)
//   - [ModeFling]: a velocity-driven deceleration whose distance and duration
//     come from a closed-form friction model, and whose progress follows a
//     precomputed spline ([DefaultSpline])
//
// The scroller never advances on its own. Callers poll ComputeScrollOffset
// once per animation frame and read the current position back.
//
// # Example
//
//	clock := host.NewSystemClock()
//	s := scroller.New(clock, 1.0, nil)
//	s.Fling(0, 0, 0, 4000, 0, 0, 0, math.MaxInt32)
//	for s.ComputeScrollOffset() {
//		draw(s.CurrY())
//	}
//
// # Thread Safety
//
// Scroller instances are NOT thread-safe. They are meant to be owned by a
// single UI loop.
package scroller
