package wheel

import (
	"math"

	"github.com/san-kum/wheelsim/internal/scroller"
)

// scrollBy moves the wheel by delta px, rotating the window once per item
// boundary crossed.
func (p *Picker) scrollBy(delta int) {
	if !p.laidOut || len(p.indices) == 0 {
		return
	}
	before := p.offset

	if !p.wrap && p.blockedAtBound(delta) {
		p.offset = p.initialOffset
		p.notifyScroll(before)
		return
	}

	p.offset += delta
	gap := p.rotationThreshold()
	limit := absInt(delta)/p.elementSize + 1

	for n := 0; p.offset-p.initialOffset > gap && n < limit; n++ {
		p.offset -= p.elementSize
		if p.order == Ascending {
			p.decrementIndices()
		} else {
			p.incrementIndices()
		}
		if p.commitRotation() {
			break
		}
	}
	for n := 0; p.offset-p.initialOffset < -gap && n < limit; n++ {
		p.offset += p.elementSize
		if p.order == Ascending {
			p.incrementIndices()
		} else {
			p.decrementIndices()
		}
		if p.commitRotation() {
			break
		}
	}

	p.notifyScroll(before)
}

// blockedAtBound reports whether a non-wrapping wheel is already centered on
// the bound that delta would push past.
func (p *Picker) blockedAtBound(delta int) bool {
	mid := p.indices[p.middle]
	atMin := mid <= p.minValue
	atMax := mid >= p.maxValue
	if p.order == Descending {
		atMin, atMax = atMax, atMin
	}
	return (delta > 0 && atMin) || (delta < 0 && atMax)
}

// commitRotation commits the new center value and reports whether the
// rotation ran off the end of a non-wrapping range, in which case the wheel
// is pinned back to its rest position.
func (p *Picker) commitRotation() bool {
	center := p.indices[p.middle]
	p.setValueInternal(center, true)
	if !p.wrap && (center < p.minValue || center > p.maxValue) {
		p.offset = p.initialOffset
		p.initializeIndices()
		return true
	}
	return false
}

// rotationThreshold is how far past rest the offset may drift before the
// window rotates. It never drops below half a slot, so one rotation cannot
// leave the offset past the opposite threshold.
func (p *Picker) rotationThreshold() int {
	half := p.elementSize / 2
	if p.labelSize > half && p.labelSize < p.elementSize {
		return p.labelSize
	}
	return half
}

func (p *Picker) notifyScroll(before int) {
	if p.offset == before {
		return
	}
	for _, o := range p.observers {
		o.OnScrollChanged(p, p.offset, before)
	}
}

// Tick advances whichever scroller is running and feeds the motion since the
// previous tick into the wheel. It returns whether motion remains.
func (p *Picker) Tick() bool {
	if !p.laidOut {
		return false
	}
	s := p.flinger
	if s.Finished() {
		s = p.adjuster
		if s.Finished() {
			return false
		}
	}

	s.ComputeScrollOffset()
	curr := p.axisCurr(s)
	if p.prevScrollerPos == 0 {
		p.prevScrollerPos = p.axisStart(s)
	}
	p.scrollBy(curr - p.prevScrollerPos)
	p.prevScrollerPos = curr

	if s.Finished() {
		p.onScrollerFinished(s)
	} else {
		p.invalidate()
	}
	return p.Animating()
}

func (p *Picker) onScrollerFinished(s *scroller.Scroller) {
	if s == p.flinger {
		p.ensureScrollWheelAdjusted()
		p.updateLabel()
		p.setScrollState(Idle)
	} else if p.state != TouchScroll {
		p.updateLabel()
	}
}

// fling starts a release-driven motion. Positive velocities run up from 0,
// negative ones down from the top of the scroller's range.
func (p *Picker) fling(velocity int) {
	p.adjuster.ForceFinished(true)
	p.prevScrollerPos = 0
	start := 0
	if velocity <= 0 {
		start = math.MaxInt32
	}
	if p.orientation == Horizontal {
		p.flinger.Fling(start, 0, velocity, 0, 0, math.MaxInt32, 0, 0)
	} else {
		p.flinger.Fling(0, start, 0, velocity, 0, 0, 0, math.MaxInt32)
	}
	p.log.Debug().
		Int("velocity", velocity).
		Int("duration", p.flinger.Duration()).
		Int("distance", p.flinger.Distance()).
		Msg("fling")
	p.invalidate()
}

// ensureScrollWheelAdjusted starts a snap back to the nearest rest position.
func (p *Picker) ensureScrollWheelAdjusted() {
	if !p.laidOut {
		return
	}
	delta := p.initialOffset - p.offset
	if delta == 0 {
		return
	}
	if absInt(delta) > p.elementSize/2 {
		if delta > 0 {
			delta -= p.elementSize
		} else {
			delta += p.elementSize
		}
	}
	p.prevScrollerPos = 0
	p.startScroll(p.adjuster, delta, p.cfg.AdjustDuration)
	p.log.Debug().Int("delta", delta).Msg("snap adjust")
	p.invalidate()
}

// ChangeValueByOne animates the wheel one slot. increment moves the next
// slot (below or right) into the center.
func (p *Picker) ChangeValueByOne(increment bool) {
	if !p.laidOut {
		step := 1
		if increment != (p.order == Ascending) {
			step = -1
		}
		p.setValueInternal(p.value+step, true)
		return
	}
	if !p.moveToFinalScrollerPosition(p.flinger) {
		p.moveToFinalScrollerPosition(p.adjuster)
	}
	p.smoothScroll(increment, 1)
}

// SmoothScrollToPosition animates the wheel until value is centered.
func (p *Picker) SmoothScrollToPosition(value int) {
	current := p.indices[p.middle]
	if current == value || !p.laidOut {
		return
	}
	increment := (value > current) == (p.order == Ascending)
	p.smoothScroll(increment, absInt(value-current))
}

func (p *Picker) smoothScroll(increment bool, steps int) {
	diff := p.elementSize * steps
	if increment {
		diff = -diff
	}
	p.adjuster.ForceFinished(true)
	p.prevScrollerPos = 0
	p.startScroll(p.flinger, diff, p.cfg.SnapDuration)
	p.invalidate()
}

// moveToFinalScrollerPosition jumps s to its target and then nudges the
// wheel onto the nearest rest position. It reports whether anything moved.
func (p *Picker) moveToFinalScrollerPosition(s *scroller.Scroller) bool {
	s.ForceFinished(true)
	if p.elementSize == 0 {
		return false
	}
	amount := p.axisFinal(s) - p.axisCurr(s)

	es := p.elementSize
	residual := ((p.offset+amount-p.initialOffset)%es + es) % es
	overshoot := -residual
	if residual > es/2 {
		overshoot = es - residual
	}

	total := amount + overshoot
	if total == 0 {
		return false
	}
	p.scrollBy(total)
	return true
}

func (p *Picker) startScroll(s *scroller.Scroller, distance, duration int) {
	if p.orientation == Horizontal {
		s.StartScroll(0, 0, distance, 0, duration)
	} else {
		s.StartScroll(0, 0, 0, distance, duration)
	}
}

func (p *Picker) axisCurr(s *scroller.Scroller) int {
	if p.orientation == Horizontal {
		return s.CurrX()
	}
	return s.CurrY()
}

func (p *Picker) axisStart(s *scroller.Scroller) int {
	if p.orientation == Horizontal {
		return s.StartX()
	}
	return s.StartY()
}

func (p *Picker) axisFinal(s *scroller.Scroller) int {
	if p.orientation == Horizontal {
		return s.FinalX()
	}
	return s.FinalY()
}
