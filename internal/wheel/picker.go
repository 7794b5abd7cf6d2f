package wheel

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/san-kum/wheelsim/internal/host"
	"github.com/san-kum/wheelsim/internal/scroller"
)

// adjustDeceleration is the ease-out factor of the snap-adjust scroller.
const adjustDeceleration = 2.5

// Picker is the wheel state controller.
type Picker struct {
	cfg Config
	log zerolog.Logger

	clock host.Clock
	sched host.Scheduler
	inv   host.Invalidator

	minValue, maxValue int
	value              int
	wrapPreferred      bool
	wrap               bool
	order              Order
	orientation        Orientation

	indices []int
	middle  int

	elementSize   int
	labelSize     int
	center        int
	initialOffset int
	offset        int
	laidOut       bool

	flinger         *scroller.Scroller
	adjuster        *scroller.Scroller
	prevScrollerPos int

	state ScrollState
	label string

	formatter Formatter
	displayed []string
	cache     map[int]string

	touchSlop      int
	minFling       int
	maxFling       int
	scaledMaxFling int
	downPos        float64
	lastPos        float64

	longPress    host.TaskID
	longPressInc bool

	onValueChange func(previous, current int)
	onScrollState func(ScrollState)
	onClick       func()
	observers     []ScrollObserver
}

// New builds a picker from cfg. The picker starts Idle and unmeasured.
func New(cfg Config, env Env) (*Picker, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	env = env.withDefaults()

	density := cfg.Density
	if density <= 0 {
		density = 1
	}

	p := &Picker{
		cfg:           cfg,
		log:           env.Logger,
		clock:         env.Clock,
		sched:         env.Scheduler,
		inv:           env.Invalidator,
		minValue:      cfg.MinValue,
		maxValue:      cfg.MaxValue,
		wrapPreferred: cfg.Wrap,
		order:         cfg.Order,
		orientation:   cfg.Orientation,
		formatter:     DecimalFormatter,
		cache:         make(map[int]string),
		touchSlop:     int(float64(cfg.TouchSlop) * density),
		minFling:      int(float64(cfg.MinFlingVelocity) * density),
		flinger:       scroller.New(env.Clock, density, cfg.Interpolator),
		adjuster:      scroller.New(env.Clock, density, scroller.NewDecelerate(adjustDeceleration)),
	}
	p.scaledMaxFling = int(float64(cfg.MaxFlingVelocity) * density)
	p.SetMaxFlingVelocityCoefficient(cfg.MaxFlingVelocityCoefficient)
	if cfg.Friction > 0 {
		p.SetFriction(cfg.Friction)
	}
	if p.cfg.AdjustDuration <= 0 {
		p.cfg.AdjustDuration = SelectorAdjustmentDuration
	}
	if p.cfg.SnapDuration <= 0 {
		p.cfg.SnapDuration = SnapScrollDuration
	}
	if p.cfg.LongPressInterval <= 0 {
		p.cfg.LongPressInterval = DefaultLongPressInterval
	}

	p.resize(cfg.WheelItemCount)
	p.updateWrap()
	p.value = p.resolveValue(cfg.Value)
	p.initializeIndices()
	p.updateLabel()

	p.log.Debug().
		Int("min", p.minValue).
		Int("max", p.maxValue).
		Int("value", p.value).
		Int("items", len(p.indices)).
		Bool("wrap", p.wrap).
		Msg("picker created")

	return p, nil
}

func validateConfig(cfg Config) error {
	if cfg.MaxValue < 0 || cfg.MinValue > cfg.MaxValue {
		return &InvalidRangeError{Min: cfg.MinValue, Max: cfg.MaxValue, Displayed: -1}
	}
	if cfg.WheelItemCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidItemCount, cfg.WheelItemCount)
	}
	if cfg.Density < 0 {
		return fmt.Errorf("wheel: density must be positive, got %f", cfg.Density)
	}
	return nil
}

// Layout reports the measured wheel: the span of one slot, the label size
// (the rotation threshold when wider than half a slot), and the coordinate of the selected slot's
// center along the active axis. A non-positive element size leaves the
// picker unmeasured.
func (p *Picker) Layout(elementSize, labelSize, center int) {
	if elementSize <= 0 {
		p.laidOut = false
		return
	}
	p.elementSize = elementSize
	p.labelSize = labelSize
	p.center = center
	p.initialOffset = center - elementSize*p.middle
	p.offset = p.initialOffset
	p.laidOut = true

	p.initializeIndices()
	p.updateLabel()
	p.invalidate()
}

// SetRange changes the inclusive bounds, clamping the current value into
// them and rebuilding the wheel.
func (p *Picker) SetRange(min, max int) error {
	if max < 0 || min > max {
		return &InvalidRangeError{Min: min, Max: max, Displayed: -1}
	}
	if min == p.minValue && max == p.maxValue {
		return nil
	}
	p.minValue = min
	p.maxValue = max
	if p.value < min {
		p.value = min
	}
	if p.value > max {
		p.value = max
	}
	p.updateWrap()
	p.initializeIndices()
	p.updateLabel()
	p.invalidate()
	return nil
}

// SetValue moves the wheel to v without notifying value listeners. Out of
// range values wrap when wrapping is enabled and clamp otherwise.
func (p *Picker) SetValue(v int) {
	p.value = p.resolveValue(v)
	p.initializeIndices()
	p.updateLabel()
	p.invalidate()
}

// SetWheelItemCount changes how many values are visible at once.
func (p *Picker) SetWheelItemCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidItemCount, count)
	}
	p.resize(count)
	p.updateWrap()
	p.initializeIndices()
	if p.laidOut {
		p.initialOffset = p.center - p.elementSize*p.middle
		p.offset = p.initialOffset
	}
	p.invalidate()
	return nil
}

func (p *Picker) resize(count int) {
	p.indices = make([]int, count)
	p.middle = count / 2
}

// SetWrap records the wrap preference. Wrapping only takes effect when the
// range is large enough to fill the wheel without repeating.
func (p *Picker) SetWrap(wrap bool) {
	p.wrapPreferred = wrap
	p.updateWrap()
	p.initializeIndices()
	p.invalidate()
}

func (p *Picker) updateWrap() {
	allowed := p.maxValue > p.minValue && p.maxValue-p.minValue >= len(p.indices)-1
	p.wrap = allowed && p.wrapPreferred
}

func (p *Picker) SetOrder(o Order) {
	p.order = o
	p.invalidate()
}

func (p *Picker) SetOrientation(o Orientation) {
	if o == p.orientation {
		return
	}
	p.orientation = o
	p.flinger.ForceFinished(true)
	p.adjuster.ForceFinished(true)
	p.laidOut = false
}

// SetFriction sets the fling friction of both scrollers.
func (p *Picker) SetFriction(f float64) {
	p.flinger.SetFriction(f)
	p.adjuster.SetFriction(f)
}

// SetMaxFlingVelocityCoefficient divides the platform maximum fling
// velocity; values below 1 fall back to the default.
func (p *Picker) SetMaxFlingVelocityCoefficient(c int) {
	if c < 1 {
		c = DefaultMaxFlingVelocityCoefficient
	}
	p.cfg.MaxFlingVelocityCoefficient = c
	p.maxFling = p.scaledMaxFling / c
}

func (p *Picker) SetFormatter(f Formatter) {
	if f == nil {
		f = DecimalFormatter
	}
	p.formatter = f
	p.initializeIndices()
	p.updateLabel()
	p.invalidate()
}

// SetDisplayedValues replaces formatted labels with a lookup table indexed
// by value-min. A nil table restores the formatter.
func (p *Picker) SetDisplayedValues(values []string) {
	p.displayed = nil
	if values != nil {
		p.displayed = append(make([]string, 0, len(values)), values...)
	}
	p.initializeIndices()
	p.updateLabel()
	p.invalidate()
}

// Validate reports a displayed-value table that does not match the range.
func (p *Picker) Validate() error {
	if p.displayed != nil && len(p.displayed) != p.maxValue-p.minValue+1 {
		return &InvalidRangeError{Min: p.minValue, Max: p.maxValue, Displayed: len(p.displayed)}
	}
	return nil
}

func (p *Picker) OnValueChange(fn func(previous, current int)) { p.onValueChange = fn }

func (p *Picker) OnScrollStateChange(fn func(ScrollState)) { p.onScrollState = fn }

func (p *Picker) OnClick(fn func()) { p.onClick = fn }

func (p *Picker) AddObserver(o ScrollObserver) {
	p.observers = append(p.observers, o)
}

// Detach cancels pending callbacks and stops all motion.
func (p *Picker) Detach() {
	p.cancelCallbacks()
	p.flinger.ForceFinished(true)
	p.adjuster.ForceFinished(true)
	p.setScrollState(Idle)
}

func (p *Picker) Value() int               { return p.value }
func (p *Picker) Min() int                 { return p.minValue }
func (p *Picker) Max() int                 { return p.maxValue }
func (p *Picker) WheelItemCount() int      { return len(p.indices) }
func (p *Picker) WrapEnabled() bool        { return p.wrap }
func (p *Picker) Order() Order             { return p.order }
func (p *Picker) Orientation() Orientation { return p.orientation }
func (p *Picker) ScrollState() ScrollState { return p.state }
func (p *Picker) Offset() int              { return p.offset }
func (p *Picker) InitialOffset() int       { return p.initialOffset }
func (p *Picker) ElementSize() int         { return p.elementSize }
func (p *Picker) MiddleIndex() int         { return p.middle }
func (p *Picker) Label() string            { return p.label }
func (p *Picker) Now() int64               { return p.clock.NowMillis() }
func (p *Picker) MaxFlingVelocity() int    { return p.maxFling }
func (p *Picker) MinFlingVelocity() int    { return p.minFling }

// Indices returns a copy of the visible window, top/left slot first in
// ascending order.
func (p *Picker) Indices() []int {
	return append([]int(nil), p.indices...)
}

// Animating reports whether either scroller still has motion to deliver.
func (p *Picker) Animating() bool {
	return !p.flinger.Finished() || !p.adjuster.Finished()
}

// Velocity is the current speed of the active scroller in px/s.
func (p *Picker) Velocity() float64 {
	switch {
	case !p.flinger.Finished():
		return p.flinger.CurrVelocity()
	case !p.adjuster.Finished():
		return p.adjuster.CurrVelocity()
	}
	return 0
}

func (p *Picker) setScrollState(s ScrollState) {
	if p.state == s {
		return
	}
	p.log.Debug().Stringer("from", p.state).Stringer("to", s).Msg("scroll state")
	p.state = s
	if p.onScrollState != nil {
		p.onScrollState(s)
	}
}

func (p *Picker) notifyChange(previous, current int) {
	if p.onValueChange != nil {
		p.onValueChange(previous, current)
	}
	for _, o := range p.observers {
		if vo, ok := o.(ValueObserver); ok {
			vo.OnValueChanged(p, previous, current)
		}
	}
}

func (p *Picker) invalidate() {
	p.inv.Invalidate()
}

// resolveValue maps v into the range by wrapping or clamping.
func (p *Picker) resolveValue(v int) int {
	if p.wrap {
		return p.wrapIndex(v)
	}
	return clampInt(v, p.minValue, p.maxValue)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
