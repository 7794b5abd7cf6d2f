package wheel

// wrapIndex folds an out-of-range index back into [min, max] with the
// -1/+1 corrected step. An overshoot that is an exact multiple of max-min
// lands one past the range, so the result is folded again and finally
// reduced over the full cycle.
func (p *Picker) wrapIndex(i int) int {
	lo, hi := p.minValue, p.maxValue
	span := hi - lo
	if span <= 0 {
		return lo
	}
	for n := 0; n < 2 && (i < lo || i > hi); n++ {
		if i > hi {
			i = lo + (i-hi)%span - 1
		} else {
			i = hi - (lo-i)%span + 1
		}
	}
	if i < lo || i > hi {
		cycle := span + 1
		i = lo + ((i-lo)%cycle+cycle)%cycle
	}
	return i
}

// initializeIndices rebuilds the whole window around the current value.
func (p *Picker) initializeIndices() {
	clear(p.cache)
	for i := range p.indices {
		idx := p.value + (i - p.middle)
		if p.wrap {
			idx = p.wrapIndex(idx)
		}
		p.indices[i] = idx
		p.ensureCached(idx)
	}
}

// incrementIndices shifts the window one slot toward larger values.
func (p *Picker) incrementIndices() {
	last := len(p.indices) - 1
	next := p.indices[last] + 1
	copy(p.indices, p.indices[1:])
	if p.wrap && next > p.maxValue {
		next = p.minValue
	}
	p.indices[last] = next
	p.ensureCached(next)
}

// decrementIndices shifts the window one slot toward smaller values.
func (p *Picker) decrementIndices() {
	next := p.indices[0] - 1
	copy(p.indices[1:], p.indices[:len(p.indices)-1])
	if p.wrap && next < p.minValue {
		next = p.maxValue
	}
	p.indices[0] = next
	p.ensureCached(next)
}

// setValueInternal commits a new center value. During a fling the label is
// left stale until the motion settles.
func (p *Picker) setValueInternal(v int, notify bool) {
	if p.value == v {
		return
	}
	v = p.resolveValue(v)
	previous := p.value
	if v == previous {
		// clamped back onto the bound it already had
		p.initializeIndices()
		return
	}
	p.value = v
	if p.state != Fling {
		p.updateLabel()
	}
	p.log.Debug().Int("from", previous).Int("to", v).Bool("notify", notify).Msg("value committed")
	if notify {
		p.notifyChange(previous, v)
	}
	p.initializeIndices()
	p.invalidate()
}

func (p *Picker) ensureCached(idx int) {
	if _, ok := p.cache[idx]; ok {
		return
	}
	s, ok := p.resolveLabel(idx)
	if !ok {
		delete(p.cache, idx)
		return
	}
	p.cache[idx] = s
}

// resolveLabel returns the label of idx. Values outside the range are empty;
// ok is false only when a displayed-value table has no entry for idx.
func (p *Picker) resolveLabel(idx int) (string, bool) {
	if idx < p.minValue || idx > p.maxValue {
		return "", true
	}
	if p.displayed != nil {
		i := idx - p.minValue
		if i >= len(p.displayed) {
			return "", false
		}
		return p.displayed[i], true
	}
	return p.formatter.Format(idx), true
}

func (p *Picker) updateLabel() {
	s, _ := p.resolveLabel(p.value)
	p.label = s
}

// DisplayString returns the label drawn for idx.
func (p *Picker) DisplayString(idx int) string {
	if s, ok := p.cache[idx]; ok {
		return s
	}
	s, _ := p.resolveLabel(idx)
	return s
}

// Labels returns the strings for each visible slot in drawing order:
// reversed for a descending wheel. Skipped slots are empty.
func (p *Picker) Labels() []string {
	n := len(p.indices)
	out := make([]string, n)
	for i := range out {
		slot := i
		if p.order == Descending {
			slot = n - i - 1
		}
		out[i] = p.cache[p.indices[slot]]
	}
	return out
}
