// Package wheel implements the state controller of a wheel value picker.
//
// A [Picker] owns an inclusive integer range, the window of values laid out
// along the wheel, and a continuous scroll offset. Gestures and animation
// ticks move the offset; whenever it crosses an item boundary the window is
// rotated and the centered value committed, wrapping around the range or
// clamping at its ends.
//
// The picker drives two scrollers from package scroller: one for flings and
// single steps, one for the snap-adjust that re-centers the wheel after a
// gesture. At most one of them is running at any time.
//
// # Host Collaborators
//
// Everything the picker needs from its UI is passed in through [Env]: a
// millisecond clock, a delayed-callback scheduler (used for long-press
// repeat) and a redraw request. The host measures the wheel and reports it
// with [Picker.Layout]; until then offsets are not computed.
//
// # Example
//
//	clock := host.NewSystemClock()
//	looper := host.NewLooper(clock)
//	p, _ := wheel.New(wheel.DefaultConfig(), wheel.Env{Clock: clock, Scheduler: looper})
//	p.Layout(40, 16, 140)
//	p.OnValueChange(func(prev, cur int) { fmt.Println(prev, "->", cur) })
//
//	// every frame
//	looper.RunDue()
//	p.Tick()
//
// # Thread Safety
//
// Picker is NOT thread-safe. Gestures, ticks and scheduled callbacks must all
// run on the same goroutine.
package wheel
