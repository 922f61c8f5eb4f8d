package gait

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinodyn/gaitopt-research/internal/core"
)

// DefaultLiftHeight is the swing apex height above the contact plane
// when the caller does not specify one (meters).
const DefaultLiftHeight = 0.03

// SwingMotion interpolates one flight of a foot from liftoff to
// touchdown. The horizontal motion follows a quintic with zero velocity
// and acceleration at both ends; a polynomial lift term peaks at the
// apex height at mid-swing. The whole motion is normalized by its
// duration, so rescaling the duration stretches the same shape in time.
type SwingMotion struct {
	duration   float64
	liftHeight float64
	start      r3.Vec
	goal       r3.Vec
}

// NewSwingMotion builds a swing of the given duration between two
// contact positions.
func NewSwingMotion(duration float64, start, goal r3.Vec, liftHeight float64) *SwingMotion {
	if duration <= 0 {
		panic(fmt.Sprintf("gait: non-positive swing duration %v", duration))
	}
	return &SwingMotion{
		duration:   duration,
		liftHeight: liftHeight,
		start:      start,
		goal:       goal,
	}
}

// Duration returns the current swing duration.
func (s *SwingMotion) Duration() float64 {
	return s.duration
}

// SetDuration rescales the motion in place to a new duration. The shape
// in normalized time is unchanged.
func (s *SwingMotion) SetDuration(t float64) {
	if t <= 0 {
		panic(fmt.Sprintf("gait: non-positive swing duration %v", t))
	}
	s.duration = t
}

// SetEndpoints moves the liftoff and touchdown positions, keeping
// duration and lift height.
func (s *SwingMotion) SetEndpoints(start, goal r3.Vec) {
	s.start = start
	s.goal = goal
}

// Start returns the liftoff position.
func (s *SwingMotion) Start() r3.Vec { return s.start }

// Goal returns the touchdown position.
func (s *SwingMotion) Goal() r3.Vec { return s.goal }

// quintic smoothstep and its first two derivatives in normalized time.
func quintic(u float64) (h, dh, ddh float64) {
	h = u * u * u * (10 + u*(-15+6*u))
	dh = 30 * u * u * (1 - u) * (1 - u)
	ddh = 60 * u * (1 - u) * (1 - 2*u)
	return
}

// lift bump 16u^2(1-u)^2 and derivatives; peaks at 1 for u=0.5.
func liftBump(u float64) (b, db, ddb float64) {
	b = 16 * u * u * (1 - u) * (1 - u)
	db = 32 * u * (1 - u) * (1 - 2*u)
	ddb = 32 * (1 - 6*u + 6*u*u)
	return
}

// State evaluates position, velocity and acceleration at local time
// tLocal in [0, duration].
func (s *SwingMotion) State(tLocal float64) core.State {
	u := tLocal / s.duration
	h, dh, ddh := quintic(u)
	b, db, ddb := liftBump(u)

	delta := r3.Sub(s.goal, s.start)
	T := s.duration

	pos := r3.Add(s.start, r3.Scale(h, delta))
	pos.Z += s.liftHeight * b

	vel := r3.Scale(dh/T, delta)
	vel.Z += s.liftHeight * db / T

	acc := r3.Scale(ddh/(T*T), delta)
	acc.Z += s.liftHeight * ddb / (T * T)

	return core.State{Pos: pos, Vel: vel, Acc: acc}
}

// StateDerivWrtDuration returns d(pos)/dT at fixed local time: the
// sensitivity of the foot position to stretching this swing alone,
// holding its start time fixed. For a duration-normalized shape this is
// -(t/T) * velocity.
func (s *SwingMotion) StateDerivWrtDuration(tLocal float64) r3.Vec {
	st := s.State(tLocal)
	return r3.Scale(-tLocal/s.duration, st.Vel)
}
