package gait

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/nlp"
)

// phase is one maximal stance or swing interval of a single foot.
// contactIdx indexes the contact held during stance; for a swing it
// indexes the liftoff contact, and contactIdx+1 is the touchdown goal.
type phase struct {
	inContact  bool
	duration   float64
	contactIdx int
	motion     *SwingMotion
}

// EndeffectorMotion parameterizes the motion of one foot swinging
// multiple times over the horizon. It is built incrementally before
// optimization starts: an initial position, then alternating stance and
// swing phases. Afterwards the solver mutates the free contact
// positions directly and the phase durations through the observed
// ContactSchedule.
type EndeffectorMotion struct {
	contacts []r3.Vec
	phases   []phase
	schedule *ContactSchedule
}

// NewEndeffectorMotion creates an empty motion. SetInitialPos must be
// called before the first phase is added.
func NewEndeffectorMotion() *EndeffectorMotion {
	return &EndeffectorMotion{}
}

// SetInitialPos fixes the first contact position. This one is never an
// optimization variable.
func (m *EndeffectorMotion) SetInitialPos(pos r3.Vec) {
	if len(m.phases) > 0 {
		panic("gait: initial position must be set before phases are added")
	}
	m.contacts = []r3.Vec{pos}
}

// AddStancePhase appends a phase holding the most recent contact
// position for the given duration.
func (m *EndeffectorMotion) AddStancePhase(duration float64) {
	m.checkBuildable(duration)
	m.phases = append(m.phases, phase{
		inContact:  true,
		duration:   duration,
		contactIdx: len(m.contacts) - 1,
	})
}

// AddSwingPhase appends a flight from the most recent contact position
// to goal, lifting to DefaultLiftHeight at the apex. The goal becomes
// the new most recent contact position and a free optimization variable.
func (m *EndeffectorMotion) AddSwingPhase(duration float64, goal r3.Vec) {
	m.AddSwingPhaseLifted(duration, goal, DefaultLiftHeight)
}

// AddSwingPhaseLifted is AddSwingPhase with an explicit apex height.
func (m *EndeffectorMotion) AddSwingPhaseLifted(duration float64, goal r3.Vec, liftHeight float64) {
	m.checkBuildable(duration)
	start := m.contacts[len(m.contacts)-1]
	m.phases = append(m.phases, phase{
		duration:   duration,
		contactIdx: len(m.contacts) - 1,
		motion:     NewSwingMotion(duration, start, goal, liftHeight),
	})
	m.contacts = append(m.contacts, goal)
}

func (m *EndeffectorMotion) checkBuildable(duration float64) {
	if len(m.contacts) == 0 {
		panic("gait: initial position not set")
	}
	if duration <= 0 {
		panic(fmt.Sprintf("gait: non-positive phase duration %v", duration))
	}
}

// SetContactPosition overwrites the idx-th contact position (0 is the
// fixed initial one) and refreshes the endpoints of the adjacent swing
// motions. Panics if idx is out of range.
func (m *EndeffectorMotion) SetContactPosition(idx int, pos r3.Vec) {
	m.contacts[idx] = pos
	for _, p := range m.phases {
		if p.motion != nil {
			p.motion.SetEndpoints(m.contacts[p.contactIdx], m.contacts[p.contactIdx+1])
		}
	}
}

// ContactPosition returns the idx-th contact position.
func (m *EndeffectorMotion) ContactPosition(idx int) r3.Vec {
	return m.contacts[idx]
}

// FreeContactPositions returns, in order, every contact position not
// fixed at construction: everything after the initial one. These are
// exactly the footholds the optimizer may move.
func (m *EndeffectorMotion) FreeContactPositions() []r3.Vec {
	return append([]r3.Vec(nil), m.contacts[1:]...)
}

// FreeContactCount returns the number of optimizable footholds.
func (m *EndeffectorMotion) FreeContactCount() int {
	return len(m.contacts) - 1
}

// PhaseCount returns the number of stance and swing phases.
func (m *EndeffectorMotion) PhaseCount() int {
	return len(m.phases)
}

// TotalTime returns the sum of all phase durations.
func (m *EndeffectorMotion) TotalTime() float64 {
	total := 0.0
	for _, p := range m.phases {
		total += p.duration
	}
	return total
}

// BindSchedule registers this motion as an observer of cs and adopts its
// durations. The schedule's phase count must match the phases built so
// far.
func (m *EndeffectorMotion) BindSchedule(cs *ContactSchedule) {
	if cs.PhaseCount() != len(m.phases) {
		panic(fmt.Sprintf("gait: schedule has %d phases, motion has %d", cs.PhaseCount(), len(m.phases)))
	}
	m.schedule = cs
	cs.AddObserver(m)
	m.PhaseDurationsChanged()
}

// Schedule returns the observed ContactSchedule, nil if unbound.
func (m *EndeffectorMotion) Schedule() *ContactSchedule {
	return m.schedule
}

// PhaseDurationsChanged pulls the current durations from the observed
// schedule and rescales the swing motions. Called synchronously from
// ContactSchedule.SetValues.
func (m *EndeffectorMotion) PhaseDurationsChanged() {
	durations := m.schedule.Durations()
	for i := range m.phases {
		m.phases[i].duration = durations[i]
		if m.phases[i].motion != nil {
			m.phases[i].motion.SetDuration(durations[i])
		}
	}
}

// PhaseAt maps a global time to a phase index. Phase intervals are
// half-open [start, end), so a time exactly on a boundary belongs to
// the later phase; the last phase is closed at the horizon end. Times
// outside [0, TotalTime] are a caller contract violation.
func (m *EndeffectorMotion) PhaseAt(tGlobal float64) int {
	if tGlobal < 0 || tGlobal > m.TotalTime() {
		panic(fmt.Sprintf("gait: time %v outside horizon [0, %v]", tGlobal, m.TotalTime()))
	}
	end := 0.0
	for i, p := range m.phases {
		end += p.duration
		if tGlobal < end {
			return i
		}
	}
	return len(m.phases) - 1
}

// PhaseStart returns the global start time of phase i.
func (m *EndeffectorMotion) PhaseStart(i int) float64 {
	start := 0.0
	for _, p := range m.phases[:i] {
		start += p.duration
	}
	return start
}

// State returns the foot's kinematic state at a global time: the held
// contact with zero derivatives during stance, the interpolated swing
// state otherwise.
func (m *EndeffectorMotion) State(tGlobal float64) core.State {
	i := m.PhaseAt(tGlobal)
	p := m.phases[i]
	if p.inContact {
		return core.StationaryState(m.contacts[p.contactIdx])
	}
	return p.motion.State(tGlobal - m.PhaseStart(i))
}

// IsInContact reports whether the foot is in stance at a global time.
func (m *EndeffectorMotion) IsInContact(tGlobal float64) bool {
	return m.phases[m.PhaseAt(tGlobal)].inContact
}

// ContactIndexAt returns the index of the contact governing the foot at
// a global time: the held contact during stance, the touchdown goal
// during swing.
func (m *EndeffectorMotion) ContactIndexAt(tGlobal float64) int {
	i := m.PhaseAt(tGlobal)
	p := m.phases[i]
	if p.inContact {
		return p.contactIdx
	}
	return p.contactIdx + 1
}

// swingAt returns the swing motion active at tGlobal, nil during stance.
func (m *EndeffectorMotion) swingAt(tGlobal float64) *SwingMotion {
	return m.phases[m.PhaseAt(tGlobal)].motion
}

// TimingJacobian returns the sensitivity of the foot position at a
// global time to the optimized phase durations of the bound schedule,
// through the schedule's chain rule. During stance the foot does not
// move with time, so the columns are numerically zero but stay
// structural: as durations shift, the query time can migrate into a
// swing phase.
func (m *EndeffectorMotion) TimingJacobian(tGlobal float64) *nlp.Jacobian {
	if m.schedule == nil {
		panic("gait: motion not bound to a schedule")
	}
	phase := m.PhaseAt(tGlobal)

	dqdT := make([]float64, 3)
	qdot := make([]float64, 3)
	if sw := m.phases[phase].motion; sw != nil {
		tLocal := tGlobal - m.PhaseStart(phase)
		d := sw.StateDerivWrtDuration(tLocal)
		v := sw.State(tLocal).Vel
		dqdT[0], dqdT[1], dqdT[2] = d.X, d.Y, d.Z
		qdot[0], qdot[1], qdot[2] = v.X, v.Y, v.Z
	}
	return m.schedule.JacobianOfTimeDependentQuantity(phase, dqdT, qdot)
}
