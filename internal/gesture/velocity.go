// Package gesture turns raw pointer samples into release velocities.
package gesture

import "math"

const (
	historySize = 20
	horizonMs   = 100
	// a gap this long between samples means the pointer stopped
	assumeStoppedMs = 40
)

type sample struct {
	t   int64
	pos float64
}

// VelocityTracker estimates single-axis pointer velocity with a least-squares
// line through the recent samples.
type VelocityTracker struct {
	samples []sample
}

func NewVelocityTracker() *VelocityTracker {
	return &VelocityTracker{samples: make([]sample, 0, historySize)}
}

// AddMovement records the pointer at pos at time tMs. A pause longer than
// the stop threshold discards the earlier history.
func (v *VelocityTracker) AddMovement(tMs int64, pos float64) {
	if n := len(v.samples); n > 0 && tMs-v.samples[n-1].t > assumeStoppedMs {
		v.samples = v.samples[:0]
	}
	if len(v.samples) == historySize {
		copy(v.samples, v.samples[1:])
		v.samples = v.samples[:historySize-1]
	}
	v.samples = append(v.samples, sample{t: tMs, pos: pos})
}

// ComputeVelocity returns the velocity in position units per units
// milliseconds (1000 gives px/s), clamped to ±max when max > 0.
func (v *VelocityTracker) ComputeVelocity(units int, max float64) float64 {
	n := len(v.samples)
	if n < 2 {
		return 0
	}
	newest := v.samples[n-1].t

	var sumT, sumP, sumTT, sumTP float64
	count := 0
	for i := n - 1; i >= 0; i-- {
		s := v.samples[i]
		age := newest - s.t
		if age > horizonMs {
			break
		}
		t := -float64(age)
		sumT += t
		sumP += s.pos
		sumTT += t * t
		sumTP += t * s.pos
		count++
	}
	if count < 2 {
		return 0
	}

	c := float64(count)
	denom := c*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	slope := (c*sumTP - sumT*sumP) / denom

	vel := slope * float64(units)
	if max > 0 {
		vel = math.Max(-max, math.Min(vel, max))
	}
	return vel
}

func (v *VelocityTracker) Clear() {
	v.samples = v.samples[:0]
}

// Len reports how many samples are held.
func (v *VelocityTracker) Len() int {
	return len(v.samples)
}
