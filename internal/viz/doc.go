// Package viz is the terminal front end for the wheel picker.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: one picker drawn as a column of slots, driven at the
//     configured frame rate
//   - a velocity gauge smoothed by a harmonica spring
//   - a sparkline of recent scroller speed
//   - theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	k/↑   - Step to the previous value
//	j/↓   - Step to the next value
//	f/F   - Fling forward/back
//	w     - Toggle wrapping
//	o     - Toggle ascending/descending order
//	+/-   - Raise/lower friction
//	T     - Cycle color themes
//	?     - Show help overlay
//	q     - Quit
//
// # Mouse
//
// Dragging the wheel scrolls it and releasing flings it with the tracked
// pointer velocity. The mouse wheel steps one value at a time and a click on
// the selected slot flashes it.
package viz
