// Package trace records how a picker moves over time and summarises the
// motion with metrics.
package trace

import (
	"github.com/san-kum/wheelsim/internal/wheel"
)

// Sample is the picker as seen at one instant. T is milliseconds since the
// first sample. Position is the offset unrolled across rotations, so it
// grows smoothly through slot changes instead of jumping back.
type Sample struct {
	T        int64             `json:"t_ms"`
	Offset   int               `json:"offset"`
	Position float64           `json:"position"`
	Value    int               `json:"value"`
	State    wheel.ScrollState `json:"state"`
	Velocity float64           `json:"velocity"`
}

// Recorder collects samples from a picker. It is a wheel.ScrollObserver and
// a wheel.ValueObserver, so adding it to a picker records every scroll step
// and every value commit; Observe records on demand.
type Recorder struct {
	samples []Sample
	metrics []Metric
	start   int64
	steps   int
}

func NewRecorder(metrics ...Metric) *Recorder {
	if len(metrics) == 0 {
		metrics = DefaultMetrics()
	}
	return &Recorder{metrics: metrics}
}

func (r *Recorder) OnScrollChanged(p *wheel.Picker, offset, previous int) {
	r.Observe(p)
}

func (r *Recorder) OnValueChanged(p *wheel.Picker, previous, current int) {
	r.Observe(p)
}

// Observe samples p. A second sample at the same instant replaces the first.
// Observe once before motion starts so Position is anchored at rest.
func (r *Recorder) Observe(p *wheel.Picker) {
	now := p.Now()
	if len(r.samples) == 0 {
		r.start = now
	}

	if n := len(r.samples); n > 0 {
		r.steps += valueSteps(p, r.samples[n-1].Value, p.Value())
	}

	es := p.ElementSize()
	rolled := -r.steps * es
	if p.Order() == wheel.Descending {
		rolled = -rolled
	}

	s := Sample{
		T:        now - r.start,
		Offset:   p.Offset(),
		Position: float64(p.Offset() - p.InitialOffset() + rolled),
		Value:    p.Value(),
		State:    p.ScrollState(),
		Velocity: p.Velocity(),
	}

	if n := len(r.samples); n > 0 && r.samples[n-1].T == s.T {
		r.samples[n-1] = s
		return
	}
	r.samples = append(r.samples, s)
}

// valueSteps is the signed number of slots between two values, taking the
// short way round on a wrapping wheel.
func valueSteps(p *wheel.Picker, from, to int) int {
	d := to - from
	if !p.WrapEnabled() || d == 0 {
		return d
	}
	cycle := p.Max() - p.Min() + 1
	d %= cycle
	if d > cycle/2 {
		d -= cycle
	} else if d < -cycle/2 {
		d += cycle
	}
	return d
}

// Samples returns a copy of the recording.
func (r *Recorder) Samples() []Sample {
	return append([]Sample(nil), r.samples...)
}

func (r *Recorder) Len() int {
	return len(r.samples)
}

func (r *Recorder) Last() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

func (r *Recorder) Reset() {
	r.samples = r.samples[:0]
	r.steps = 0
	r.start = 0
}

// Result is one metric evaluated over a recording.
type Result struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Report runs every metric over the recorded samples.
func (r *Recorder) Report() []Result {
	out := make([]Result, 0, len(r.metrics))
	for _, m := range r.metrics {
		m.Reset()
		for _, s := range r.samples {
			m.Observe(s)
		}
		out = append(out, Result{Name: m.Name(), Value: m.Value()})
	}
	return out
}
