package wheel

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/san-kum/wheelsim/internal/host"
	"github.com/san-kum/wheelsim/internal/scroller"
)

// ScrollState is the gesture phase reported to listeners.
type ScrollState int

const (
	Idle ScrollState = iota
	TouchScroll
	Fling
)

func (s ScrollState) String() string {
	switch s {
	case Idle:
		return "idle"
	case TouchScroll:
		return "touch-scroll"
	case Fling:
		return "fling"
	}
	return "unknown"
}

func (s ScrollState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Order is the direction values run along the wheel.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Key is a directional input from a keyboard or d-pad.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyCenter
)

// Formatter turns a value into its label.
type Formatter interface {
	Format(value int) string
}

type FormatterFunc func(value int) string

func (f FormatterFunc) Format(value int) string {
	return f(value)
}

// DecimalFormatter renders values with strconv.Itoa.
var DecimalFormatter = FormatterFunc(strconv.Itoa)

// ScrollObserver is notified whenever a scroll step changed the offset.
type ScrollObserver interface {
	OnScrollChanged(p *Picker, offset, previous int)
}

// ValueObserver is an optional extension of ScrollObserver. Observers that
// implement it also hear about every committed value change, including the
// ones from whole-element moves that leave the offset where it was.
type ValueObserver interface {
	OnValueChanged(p *Picker, previous, current int)
}

const (
	DefaultMinValue                    = 1
	DefaultMaxValue                    = 100
	DefaultWheelItemCount              = 7
	DefaultTouchSlop                   = 8
	DefaultMinFlingVelocity            = 50
	DefaultMaxFlingVelocity            = 8000
	DefaultMaxFlingVelocityCoefficient = 8
	DefaultLongPressTimeout            = 500
	DefaultLongPressInterval           = 300
	SelectorAdjustmentDuration         = 800
	SnapScrollDuration                 = 300
)

// Config describes a picker. Gesture thresholds are in density-independent
// pixels and scaled by Density.
type Config struct {
	MinValue       int
	MaxValue       int
	Value          int
	WheelItemCount int
	Wrap           bool
	Order          Order
	Orientation    Orientation

	Density  float64
	Friction float64

	// Interpolator shapes programmatic scrolls. Nil means viscous fluid.
	Interpolator scroller.Interpolator

	TouchSlop                   int // dp
	MinFlingVelocity            int // dp/s
	MaxFlingVelocity            int // dp/s, before the coefficient
	MaxFlingVelocityCoefficient int

	LongPressTimeout  int64 // ms
	LongPressInterval int64 // ms
	AdjustDuration    int   // ms
	SnapDuration      int   // ms
}

func DefaultConfig() Config {
	return Config{
		MinValue:                    DefaultMinValue,
		MaxValue:                    DefaultMaxValue,
		Value:                       DefaultMinValue,
		WheelItemCount:              DefaultWheelItemCount,
		Wrap:                        true,
		Order:                       Ascending,
		Orientation:                 Vertical,
		Density:                     1.0,
		Friction:                    0.015,
		TouchSlop:                   DefaultTouchSlop,
		MinFlingVelocity:            DefaultMinFlingVelocity,
		MaxFlingVelocity:            DefaultMaxFlingVelocity,
		MaxFlingVelocityCoefficient: DefaultMaxFlingVelocityCoefficient,
		LongPressTimeout:            DefaultLongPressTimeout,
		LongPressInterval:           DefaultLongPressInterval,
		AdjustDuration:              SelectorAdjustmentDuration,
		SnapDuration:                SnapScrollDuration,
	}
}

// Env holds the host collaborators. Zero fields get defaults: a system
// clock, a private looper, no redraws, and a disabled logger.
type Env struct {
	Clock       host.Clock
	Scheduler   host.Scheduler
	Invalidator host.Invalidator
	Logger      zerolog.Logger
}

func (e Env) withDefaults() Env {
	if e.Clock == nil {
		e.Clock = host.NewSystemClock()
	}
	if e.Scheduler == nil {
		e.Scheduler = host.NewLooper(e.Clock)
	}
	if e.Invalidator == nil {
		e.Invalidator = host.InvalidateFunc(nil)
	}
	return e
}
