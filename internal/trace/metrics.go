package trace

import (
	"math"

	"github.com/san-kum/wheelsim/internal/wheel"
)

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

func DefaultMetrics() []Metric {
	return []Metric{
		NewPeakVelocity(),
		NewTravel(),
		NewSettleTime(),
		NewValueChanges(),
	}
}

// PeakVelocity is the largest scroller speed seen, in px/s.
type PeakVelocity struct {
	name string
	peak float64
}

func NewPeakVelocity() *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity"}
}

func (m *PeakVelocity) Name() string { return m.name }

func (m *PeakVelocity) Observe(s Sample) {
	m.peak = math.Max(m.peak, math.Abs(s.Velocity))
}

func (m *PeakVelocity) Value() float64 { return m.peak }

func (m *PeakVelocity) Reset() { m.peak = 0 }

// Travel is the total distance the wheel content moved, in px.
type Travel struct {
	name    string
	last    float64
	total   float64
	samples int
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (m *Travel) Name() string { return m.name }

func (m *Travel) Observe(s Sample) {
	if m.samples > 0 {
		m.total += math.Abs(s.Position - m.last)
	}
	m.last = s.Position
	m.samples++
}

func (m *Travel) Value() float64 { return m.total }

func (m *Travel) Reset() {
	m.last = 0
	m.total = 0
	m.samples = 0
}

// SettleTime is the time of the last sample that was still moving, in ms.
type SettleTime struct {
	name    string
	last    Sample
	settled int64
	samples int
}

func NewSettleTime() *SettleTime {
	return &SettleTime{name: "settle_time"}
}

func (m *SettleTime) Name() string { return m.name }

func (m *SettleTime) Observe(s Sample) {
	moving := s.State != wheel.Idle || (m.samples > 0 && s.Position != m.last.Position)
	if moving {
		m.settled = s.T
	}
	m.last = s
	m.samples++
}

func (m *SettleTime) Value() float64 { return float64(m.settled) }

func (m *SettleTime) Reset() {
	m.last = Sample{}
	m.settled = 0
	m.samples = 0
}

// ValueChanges counts how often the selected value changed.
type ValueChanges struct {
	name    string
	last    int
	changes int
	samples int
}

func NewValueChanges() *ValueChanges {
	return &ValueChanges{name: "value_changes"}
}

func (m *ValueChanges) Name() string { return m.name }

func (m *ValueChanges) Observe(s Sample) {
	if m.samples > 0 && s.Value != m.last {
		m.changes++
	}
	m.last = s.Value
	m.samples++
}

func (m *ValueChanges) Value() float64 { return float64(m.changes) }

func (m *ValueChanges) Reset() {
	m.last = 0
	m.changes = 0
	m.samples = 0
}
