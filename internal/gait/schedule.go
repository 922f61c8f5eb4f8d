// Package gait parameterizes when each foot of a legged robot is in
// stance vs. swing and where it touches the ground, exposing both as
// optimization variables with analytic timing sensitivities.
package gait

import (
	"fmt"

	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/nlp"
)

// PhaseObserver is notified synchronously whenever the phase durations
// of a ContactSchedule change. Observers hold non-owning back-references
// and must recompute their phase boundaries inside the callback.
type PhaseObserver interface {
	PhaseDurationsChanged()
}

// ContactSchedule owns the ordered stance/swing phase durations of one
// endeffector. The total time is fixed, so only the first N-1 durations
// are optimization variables; the last is always derived as the
// remainder. One schedule can drive several downstream motions.
type ContactSchedule struct {
	ee        core.EndeffectorID
	durations []float64
	tTotal    float64
	bounds    nlp.Bounds
	observers []PhaseObserver
}

// NewContactSchedule creates a schedule from initial phase timings. The
// sum of the timings fixes the total time for the rest of the schedule's
// life. minDuration/maxDuration bound every optimized phase uniformly.
func NewContactSchedule(ee core.EndeffectorID, timings []float64, minDuration, maxDuration float64) *ContactSchedule {
	if len(timings) < 2 {
		panic("gait: schedule needs at least two phases")
	}
	total := 0.0
	for _, t := range timings {
		if t <= 0 {
			panic(fmt.Sprintf("gait: non-positive phase duration %v", t))
		}
		total += t
	}
	cs := &ContactSchedule{
		ee:        ee,
		durations: append([]float64(nil), timings...),
		tTotal:    total,
		bounds:    nlp.Bounds{Lower: minDuration, Upper: maxDuration},
	}
	return cs
}

// Name identifies this variable block inside the NLP.
func (cs *ContactSchedule) Name() string {
	return "phase-durations-" + cs.ee.String()
}

// Rows returns the number of optimized durations (one less than the
// phase count, since the last duration is derived).
func (cs *ContactSchedule) Rows() int {
	return len(cs.durations) - 1
}

// Values returns the current optimized durations in phase order.
func (cs *ContactSchedule) Values() []float64 {
	return append([]float64(nil), cs.durations[:cs.Rows()]...)
}

// SetValues writes the optimized durations and derives the last one so
// the total time stays fixed. A non-positive derived duration means the
// caller let the iterate escape its bounds; that is a programming error,
// not a recoverable state. Observers are notified before returning.
func (cs *ContactSchedule) SetValues(x []float64) {
	if len(x) != cs.Rows() {
		panic(fmt.Sprintf("gait: %d durations, want %d", len(x), cs.Rows()))
	}
	sum := 0.0
	for i, v := range x {
		cs.durations[i] = v
		sum += v
	}
	last := cs.tTotal - sum
	if last <= 0 {
		panic(fmt.Sprintf("gait: derived last phase duration %v <= 0", last))
	}
	cs.durations[len(cs.durations)-1] = last
	for _, o := range cs.observers {
		o.PhaseDurationsChanged()
	}
}

// Bounds returns the uniform duration bounds, one pair per optimized
// phase.
func (cs *ContactSchedule) Bounds() []nlp.Bounds {
	b := make([]nlp.Bounds, cs.Rows())
	for i := range b {
		b[i] = cs.bounds
	}
	return b
}

// Durations returns a copy of all N phase durations, derived last
// duration included.
func (cs *ContactSchedule) Durations() []float64 {
	return append([]float64(nil), cs.durations...)
}

// PhaseCount returns N, the total number of phases.
func (cs *ContactSchedule) PhaseCount() int {
	return len(cs.durations)
}

// TotalTime returns the fixed horizon this schedule spans.
func (cs *ContactSchedule) TotalTime() float64 {
	return cs.tTotal
}

// Endeffector returns the limb this schedule belongs to.
func (cs *ContactSchedule) Endeffector() core.EndeffectorID {
	return cs.ee
}

// AddObserver registers o for duration-change notifications. No
// ownership is transferred.
func (cs *ContactSchedule) AddObserver(o PhaseObserver) {
	cs.observers = append(cs.observers, o)
}

// JacobianOfTimeDependentQuantity propagates phase-duration changes into
// a quantity q that depends on global time only through the phase it
// falls in and its local time within that phase. dqdT is dq/dT of the
// current phase's own duration, holding the phase start fixed; qdot is
// the time derivative of q. Both have one entry per dimension of q.
//
// Stretching an earlier phase shifts the current phase's start, so q
// slides along its own time axis: those columns are -qdot. The current
// phase's own column is dqdT. If q sits in the last phase, its duration
// is not a free variable; growing any earlier duration shrinks the last
// phase by the same amount, so every earlier column becomes -qdot-dqdT.
//
// Every slot is written, zero or not, so the whole matrix is part of
// the structural pattern: a column that is zero now turns nonzero once
// the query time migrates into a later phase, and solver backends need
// the sparsity pattern stable across iterations.
func (cs *ContactSchedule) JacobianOfTimeDependentQuantity(currentPhase int, dqdT, qdot []float64) *nlp.Jacobian {
	nDim := len(qdot)
	jac := nlp.NewJacobian(nDim, cs.Rows())

	inLastPhase := currentPhase == len(cs.durations)-1

	for phase := 0; phase < cs.Rows(); phase++ {
		col := make([]float64, nDim)
		switch {
		case phase == currentPhase:
			copy(col, dqdT)
		case phase < currentPhase:
			for d := 0; d < nDim; d++ {
				col[d] = -qdot[d]
				if inLastPhase {
					col[d] -= dqdT[d]
				}
			}
		}
		jac.SetCol(phase, col)
	}

	return jac
}
