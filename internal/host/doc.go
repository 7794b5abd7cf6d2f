// Package host provides the collaborators a wheel picker consumes from its
// surrounding UI: an animation clock, a redraw request, and a single-threaded
// delayed-callback queue.
//
//   - [Clock]: monotonic time in milliseconds ([SystemClock], [ManualClock])
//   - [Scheduler]: post/cancel of delayed callbacks ([Looper])
//   - [Invalidator]: fire-and-forget redraw request ([RedrawFlag])
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. Callers drive the
// looper and the clock from the same goroutine that feeds gestures and
// ticks to the picker.
package host
