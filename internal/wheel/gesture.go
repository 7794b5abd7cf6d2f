package wheel

import "math"

// HandleGestureStart handles a press at pos along the active axis.
func (p *Picker) HandleGestureStart(pos float64) {
	p.cancelCallbacks()
	p.downPos = pos
	p.lastPos = pos

	switch {
	case !p.flinger.Finished():
		p.flinger.ForceFinished(true)
		p.adjuster.ForceFinished(true)
		p.updateLabel()
		p.setScrollState(Idle)
	case !p.adjuster.Finished():
		p.flinger.ForceFinished(true)
		p.adjuster.ForceFinished(true)
	case !p.laidOut:
	case p.inSelectedBand(pos):
		if p.onClick != nil {
			p.onClick()
		}
	case pos < p.selectedBandStart():
		p.postLongPress(false, p.cfg.LongPressTimeout)
	default:
		p.postLongPress(true, p.cfg.LongPressTimeout)
	}
}

// HandleGestureMove handles the pointer moving to pos. Movement below the
// touch slop is ignored until the slop is crossed once.
func (p *Picker) HandleGestureMove(pos float64) {
	if p.state != TouchScroll {
		if math.Abs(pos-p.downPos) > float64(p.touchSlop) {
			p.cancelCallbacks()
			p.flinger.ForceFinished(true)
			p.adjuster.ForceFinished(true)
			p.setScrollState(TouchScroll)
		}
	} else {
		p.scrollBy(int(pos - p.lastPos))
		p.invalidate()
	}
	p.lastPos = pos
}

// HandleGestureEnd handles a release at pos with the tracked velocity in
// px/s along the active axis.
func (p *Picker) HandleGestureEnd(velocity, pos float64) {
	p.cancelLongPress()

	v := int(math.Max(-float64(p.maxFling), math.Min(velocity, float64(p.maxFling))))
	if absInt(v) > p.minFling {
		p.fling(v)
		p.setScrollState(Fling)
		return
	}

	if math.Abs(pos-p.downPos) <= float64(p.touchSlop) && p.laidOut {
		slot := int(pos)/p.elementSize - p.middle
		switch {
		case slot > 0:
			p.ChangeValueByOne(true)
		case slot < 0:
			p.ChangeValueByOne(false)
		default:
			p.ensureScrollWheelAdjusted()
		}
	} else {
		p.ensureScrollWheelAdjusted()
	}
	p.setScrollState(Idle)
}

// HandleGestureCancel abandons the gesture and re-centers the wheel if it
// was being dragged.
func (p *Picker) HandleGestureCancel() {
	p.cancelCallbacks()
	if p.state == TouchScroll {
		p.ensureScrollWheelAdjusted()
		p.setScrollState(Idle)
	}
}

// HandleKey handles a directional key and reports whether it was consumed.
func (p *Picker) HandleKey(k Key) bool {
	switch k {
	case KeyUp, KeyDown:
		increment := k == KeyDown
		raises := increment == (p.order == Ascending)
		if !p.wrap && raises && p.value >= p.maxValue {
			return false
		}
		if !p.wrap && !raises && p.value <= p.minValue {
			return false
		}
		p.cancelCallbacks()
		if p.flinger.Finished() {
			p.ChangeValueByOne(increment)
		}
		return true
	case KeyCenter:
		if p.onClick != nil {
			p.onClick()
		}
		return true
	}
	return false
}

func (p *Picker) selectedBandStart() float64 {
	return float64(p.initialOffset + p.elementSize*p.middle - p.elementSize/2)
}

func (p *Picker) inSelectedBand(pos float64) bool {
	start := p.selectedBandStart()
	return pos >= start && pos <= start+float64(p.elementSize)
}

func (p *Picker) postLongPress(increment bool, delay int64) {
	p.cancelLongPress()
	p.longPressInc = increment
	p.longPress = p.sched.Post(delay, p.runLongPress)
}

// runLongPress steps once and re-posts itself until cancelled.
func (p *Picker) runLongPress() {
	p.longPress = 0
	p.ChangeValueByOne(p.longPressInc)
	p.longPress = p.sched.Post(p.cfg.LongPressInterval, p.runLongPress)
}

func (p *Picker) cancelLongPress() {
	if p.longPress != 0 {
		p.sched.Cancel(p.longPress)
		p.longPress = 0
	}
}

func (p *Picker) cancelCallbacks() {
	p.cancelLongPress()
}

// LongPressPending reports whether a repeat step is scheduled.
func (p *Picker) LongPressPending() bool {
	return p.longPress != 0
}
