package scroller

import (
	"math"

	"github.com/san-kum/wheelsim/internal/host"
)

// Mode selects how a Scroller moves between start and final.
type Mode int

const (
	ModeScroll Mode = iota
	ModeFling
)

func (m Mode) String() string {
	switch m {
	case ModeScroll:
		return "scroll"
	case ModeFling:
		return "fling"
	}
	return "unknown"
}

const (
	// DefaultDuration is the length of a scroll started without one, in ms.
	DefaultDuration = 250

	// DefaultFriction matches the platform scroll friction.
	DefaultFriction = 0.015

	gravityEarth     = 9.80665 // m/s^2
	inchesPerMeter   = 39.37
	physicalFriction = 0.84
	dpi              = 160.0
)

// Scroller animates a 2D integer position either along a fixed-duration
// eased path or along a decelerating fling. Only the axis a caller cares
// about needs to be non-zero.
type Scroller struct {
	clock  host.Clock
	interp Interpolator
	spline *Spline

	mode Mode

	startX, startY         int
	finalX, finalY         int
	minX, maxX, minY, maxY int
	currX, currY           int
	deltaX, deltaY         float64

	startTime          int64
	duration           int
	durationReciprocal float64
	finished           bool

	velocity     float64
	currVelocity float64
	distance     int

	friction      float64
	deceleration  float64
	ppi           float64
	physicalCoeff float64
}

// New creates a finished scroller. A nil interpolator selects ViscousFluid;
// density scales pixels per inch and therefore the fling friction model.
func New(clock host.Clock, density float64, interp Interpolator) *Scroller {
	if interp == nil {
		interp = NewViscousFluid()
	}
	if density <= 0 {
		density = 1
	}
	s := &Scroller{
		clock:    clock,
		interp:   interp,
		spline:   DefaultSpline,
		finished: true,
		friction: DefaultFriction,
		ppi:      density * dpi,
	}
	s.deceleration = s.computeDeceleration(DefaultFriction)
	s.physicalCoeff = s.computeDeceleration(physicalFriction)
	return s
}

// SetFriction changes the amount of friction applied to flings.
func (s *Scroller) SetFriction(friction float64) {
	s.deceleration = s.computeDeceleration(friction)
	s.friction = friction
}

func (s *Scroller) Friction() float64 { return s.friction }

func (s *Scroller) computeDeceleration(friction float64) float64 {
	return gravityEarth * inchesPerMeter * s.ppi * friction
}

func (s *Scroller) Mode() Mode { return s.mode }
func (s *Scroller) Finished() bool { return s.finished }
func (s *Scroller) Duration() int { return s.duration }
func (s *Scroller) CurrX() int { return s.currX }
func (s *Scroller) CurrY() int { return s.currY }
func (s *Scroller) StartX() int { return s.startX }
func (s *Scroller) StartY() int { return s.startY }
func (s *Scroller) FinalX() int { return s.finalX }
func (s *Scroller) FinalY() int { return s.finalY }
func (s *Scroller) Distance() int { return s.distance }
func (s *Scroller) Velocity() float64 { return s.velocity }

// ForceFinished sets the finished flag without touching the position.
func (s *Scroller) ForceFinished(finished bool) {
	s.finished = finished
}

// CurrVelocity returns the instantaneous velocity in px/s. Only meaningful
// while a fling is running; in scroll mode it extrapolates the last fling
// velocity under constant deceleration.
func (s *Scroller) CurrVelocity() float64 {
	if s.mode == ModeFling {
		return s.currVelocity
	}
	return s.velocity - s.deceleration*float64(s.TimePassed())/2000.0
}

// TimePassed returns the ms elapsed since the current motion began.
func (s *Scroller) TimePassed() int {
	return int(s.clock.NowMillis() - s.startTime)
}

// ComputeScrollOffset advances the motion to the clock's current time. It
// returns false once the scroller had already finished before this call.
func (s *Scroller) ComputeScrollOffset() bool {
	if s.finished {
		return false
	}

	timePassed := s.TimePassed()
	if timePassed >= s.duration {
		s.currX = s.finalX
		s.currY = s.finalY
		s.finished = true
		return true
	}

	switch s.mode {
	case ModeScroll:
		x := s.interp.Interpolation(float64(timePassed) * s.durationReciprocal)
		s.currX = s.startX + roundInt(x*s.deltaX)
		s.currY = s.startY + roundInt(x*s.deltaY)

	case ModeFling:
		t := float64(timePassed) / float64(s.duration)
		distanceCoef, velocityCoef := s.spline.At(t)
		s.currVelocity = velocityCoef * float64(s.distance) / float64(s.duration) * 1000.0

		s.currX = clampInt(s.startX+roundInt(distanceCoef*float64(s.finalX-s.startX)), s.minX, s.maxX)
		s.currY = clampInt(s.startY+roundInt(distanceCoef*float64(s.finalY-s.startY)), s.minY, s.maxY)

		if s.currX == s.finalX && s.currY == s.finalY {
			s.finished = true
		}
	}
	return true
}

// StartScroll begins an eased move by (dx, dy) over duration ms.
func (s *Scroller) StartScroll(startX, startY, dx, dy, duration int) {
	s.mode = ModeScroll
	s.finished = false
	s.duration = duration
	s.startTime = s.clock.NowMillis()
	s.startX = startX
	s.startY = startY
	s.finalX = startX + dx
	s.finalY = startY + dy
	s.deltaX = float64(dx)
	s.deltaY = float64(dy)
	if duration > 0 {
		s.durationReciprocal = 1.0 / float64(duration)
	} else {
		s.durationReciprocal = 0
	}
}

// StartScrollDefault is StartScroll with DefaultDuration.
func (s *Scroller) StartScrollDefault(startX, startY, dx, dy int) {
	s.StartScroll(startX, startY, dx, dy, DefaultDuration)
}

// Fling starts a deceleration from (startX, startY) with the given velocity
// in px/s. The final position is pinned to the bounds. A fling started while
// a previous motion is still running inherits its velocity when both point
// the same way on each axis.
func (s *Scroller) Fling(startX, startY, velocityX, velocityY, minX, maxX, minY, maxY int) {
	if !s.finished {
		oldVel := s.CurrVelocity()
		dx := float64(s.finalX - s.startX)
		dy := float64(s.finalY - s.startY)
		if hyp := math.Hypot(dx, dy); hyp > 0 {
			oldVelocityX := dx / hyp * oldVel
			oldVelocityY := dy / hyp * oldVel
			if sign(float64(velocityX)) == sign(oldVelocityX) &&
				sign(float64(velocityY)) == sign(oldVelocityY) {
				velocityX += int(oldVelocityX)
				velocityY += int(oldVelocityY)
			}
		}
	}

	s.mode = ModeFling
	s.finished = false

	velocity := math.Hypot(float64(velocityX), float64(velocityY))
	s.velocity = velocity
	s.duration = s.SplineFlingDuration(velocity)
	s.startTime = s.clock.NowMillis()
	s.startX = startX
	s.startY = startY

	coefX, coefY := 1.0, 1.0
	if velocity != 0 {
		coefX = float64(velocityX) / velocity
		coefY = float64(velocityY) / velocity
	}

	totalDistance := s.SplineFlingDistance(velocity)
	s.distance = int(totalDistance * sign(velocity))

	s.minX, s.maxX = minX, maxX
	s.minY, s.maxY = minY, maxY

	s.finalX = clampInt(startX+roundInt(totalDistance*coefX), minX, maxX)
	s.finalY = clampInt(startY+roundInt(totalDistance*coefY), minY, maxY)
}

func (s *Scroller) splineDeceleration(velocity float64) float64 {
	return math.Log(inflexion * math.Abs(velocity) / (s.friction * s.physicalCoeff))
}

// SplineFlingDuration returns the fling duration in ms for a release velocity.
func (s *Scroller) SplineFlingDuration(velocity float64) int {
	l := s.splineDeceleration(velocity)
	return int(1000.0 * math.Exp(l/(decelerationRate-1.0)))
}

// SplineFlingDistance returns the fling travel in px for a release velocity.
func (s *Scroller) SplineFlingDistance(velocity float64) float64 {
	l := s.splineDeceleration(velocity)
	return s.friction * s.physicalCoeff * math.Exp(decelerationRate/(decelerationRate-1.0)*l)
}

// AbortAnimation jumps to the final position and stops.
func (s *Scroller) AbortAnimation() {
	s.currX = s.finalX
	s.currY = s.finalY
	s.finished = true
}

// ExtendDuration lengthens the running motion so it ends extend ms from now.
func (s *Scroller) ExtendDuration(extend int) {
	s.duration = s.TimePassed() + extend
	if s.duration > 0 {
		s.durationReciprocal = 1.0 / float64(s.duration)
	}
	s.finished = false
}

// SetFinalX retargets the running motion on the X axis.
func (s *Scroller) SetFinalX(x int) {
	s.finalX = x
	s.deltaX = float64(s.finalX - s.startX)
	s.finished = false
}

// SetFinalY retargets the running motion on the Y axis.
func (s *Scroller) SetFinalY(y int) {
	s.finalY = y
	s.deltaY = float64(s.finalY - s.startY)
	s.finished = false
}

// IsScrollingInDirection reports whether an unfinished motion is heading the
// same way as the given velocity on both axes.
func (s *Scroller) IsScrollingInDirection(velX, velY float64) bool {
	return !s.finished &&
		sign(velX) == sign(float64(s.finalX-s.startX)) &&
		sign(velY) == sign(float64(s.finalY-s.startY))
}

// roundInt rounds half up, so -2.5 becomes -2.
func roundInt(f float64) int {
	return int(math.Floor(f + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	}
	return 0
}
