package scroller

import "math"

const (
	nbSamples       = 100
	inflexion       = 0.35 // tension lines cross at (inflexion, 1)
	startTension    = 0.5
	endTension      = 1.0
	p1              = startTension * inflexion
	p2              = 1.0 - endTension*(1.0-inflexion)
	splineTolerance = 1e-5
)

// decelerationRate is the exponent of the fling friction curve.
var decelerationRate = math.Log(0.78) / math.Log(0.9)

// Spline holds the sampled fling curve: position[i] is the fraction of the
// total distance covered at time i/n, and time[i] is the inverse mapping.
type Spline struct {
	position []float64
	time     []float64
	n        int
}

// Global fling spline (100 samples)
var DefaultSpline = NewSpline(nbSamples)

// NewSpline samples the fling curve at n+1 points by bisecting the two
// tension curves for each sample.
func NewSpline(n int) *Spline {
	s := &Spline{
		position: make([]float64, n+1),
		time:     make([]float64, n+1),
		n:        n,
	}

	// the lower bracket carries over between samples since alpha only grows
	var xMin, yMin float64
	for i := 0; i < n; i++ {
		alpha := float64(i) / float64(n)

		xMax := 1.0
		var x, tx, coef float64
		for {
			x = xMin + (xMax-xMin)/2
			coef = 3 * x * (1 - x)
			tx = coef*((1-x)*p1+x*p2) + x*x*x
			if math.Abs(tx-alpha) < splineTolerance {
				break
			}
			if tx > alpha {
				xMax = x
			} else {
				xMin = x
			}
		}
		s.position[i] = coef*((1-x)*startTension+x) + x*x*x

		yMax := 1.0
		var y, dy float64
		for {
			y = yMin + (yMax-yMin)/2
			coef = 3 * y * (1 - y)
			dy = coef*((1-y)*startTension+y) + y*y*y
			if math.Abs(dy-alpha) < splineTolerance {
				break
			}
			if dy > alpha {
				yMax = y
			} else {
				yMin = y
			}
		}
		s.time[i] = coef*((1-y)*p1+y*p2) + y*y*y
	}
	s.position[n] = 1
	s.time[n] = 1

	return s
}

// At returns the covered distance fraction and the normalized velocity at
// elapsed fraction t, interpolating linearly between bracketing samples.
// Past the last sample the motion is complete and velocity is zero.
func (s *Spline) At(t float64) (distance, velocity float64) {
	if t <= 0 {
		t = 0
	}
	idx := int(float64(s.n) * t)
	if idx >= s.n {
		return 1, 0
	}

	tInf := float64(idx) / float64(s.n)
	tSup := float64(idx+1) / float64(s.n)
	dInf := s.position[idx]
	dSup := s.position[idx+1]

	velocity = (dSup - dInf) / (tSup - tInf)
	distance = dInf + (t-tInf)*velocity
	return
}

// Samples returns copies of the position and time tables.
func (s *Spline) Samples() (position, time []float64) {
	position = append([]float64(nil), s.position...)
	time = append([]float64(nil), s.time...)
	return
}

func (s *Spline) Len() int {
	return s.n + 1
}
