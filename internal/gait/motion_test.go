package gait

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinodyn/gaitopt-research/internal/core"
)

func vec(x, y, z float64) r3.Vec {
	return r3.Vec{X: x, Y: y, Z: z}
}

// buildMotion is stance(1.0) then swing(2.0) from origin to (0.3,0,0).
func buildMotion() *EndeffectorMotion {
	m := NewEndeffectorMotion()
	m.SetInitialPos(vec(0, 0, 0))
	m.AddStancePhase(1.0)
	m.AddSwingPhase(2.0, vec(0.3, 0, 0))
	return m
}

func TestPhaseBoundaryResolution(t *testing.T) {
	m := buildMotion()

	tests := []struct {
		t    float64
		want bool
	}{
		{0.0, true},
		{0.999, true},
		{1.0, false}, // boundary belongs to the later phase
		{2.5, false},
		{3.0, false}, // horizon end stays in the last phase
	}

	for _, tt := range tests {
		if got := m.IsInContact(tt.t); got != tt.want {
			t.Errorf("IsInContact(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestPhaseAtOutsideHorizonPanics(t *testing.T) {
	m := buildMotion()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for time outside horizon")
		}
	}()
	m.PhaseAt(3.5)
}

func TestFreeContactPositions(t *testing.T) {
	p0 := vec(0, 0, 0)
	p1 := vec(0.3, 0, 0)
	p2 := vec(0.6, 0, 0)

	m := NewEndeffectorMotion()
	m.SetInitialPos(p0)
	m.AddSwingPhase(0.5, p1)
	m.AddSwingPhase(0.5, p2)

	free := m.FreeContactPositions()
	if len(free) != 2 {
		t.Fatalf("len(free) = %d, want 2", len(free))
	}
	if free[0] != p1 || free[1] != p2 {
		t.Errorf("free = %v, want [%v %v]", free, p1, p2)
	}
}

func TestStateStanceAndSwing(t *testing.T) {
	m := buildMotion()

	st := m.State(0.5)
	if st.Pos != vec(0, 0, 0) || st.Vel != (r3.Vec{}) || st.Acc != (r3.Vec{}) {
		t.Errorf("stance state = %+v, want stationary at origin", st)
	}

	// Swing endpoints interpolate between the two contacts.
	lift := m.State(1.0)
	if !almostEqual(lift.Pos.X, 0) || !almostEqual(lift.Pos.Z, 0) {
		t.Errorf("liftoff pos = %v, want origin", lift.Pos)
	}
	down := m.State(3.0)
	if !almostEqual(down.Pos.X, 0.3) || !almostEqual(down.Pos.Z, 0) {
		t.Errorf("touchdown pos = %v, want (0.3,0,0)", down.Pos)
	}

	// Mid-swing the foot is lifted.
	mid := m.State(2.0)
	if !almostEqual(mid.Pos.Z, DefaultLiftHeight) {
		t.Errorf("apex height = %v, want %v", mid.Pos.Z, DefaultLiftHeight)
	}
}

func TestSetContactPositionMovesSwingGoal(t *testing.T) {
	m := buildMotion()

	goal := vec(0.5, 0.1, 0)
	m.SetContactPosition(1, goal)

	down := m.State(3.0)
	if !almostEqual(down.Pos.X, goal.X) || !almostEqual(down.Pos.Y, goal.Y) {
		t.Errorf("touchdown pos = %v, want %v", down.Pos, goal)
	}
}

func TestBindScheduleRescalesPhases(t *testing.T) {
	m := buildMotion()
	cs := NewContactSchedule(core.E0, []float64{1.0, 2.0}, 0.1, 3.0)
	m.BindSchedule(cs)

	// Shrink the stance phase; the swing absorbs the remainder.
	cs.SetValues([]float64{0.5})

	if !m.IsInContact(0.4) {
		t.Error("IsInContact(0.4) = false after shrinking stance, want true")
	}
	if m.IsInContact(0.5) {
		t.Error("IsInContact(0.5) = true after shrinking stance, want false")
	}
	if !almostEqual(m.TotalTime(), 3.0) {
		t.Errorf("TotalTime() = %v, want 3.0", m.TotalTime())
	}

	// Touchdown still lands on the goal at the (unchanged) horizon end.
	down := m.State(3.0)
	if !almostEqual(down.Pos.X, 0.3) {
		t.Errorf("touchdown pos = %v, want x=0.3", down.Pos)
	}
}

func TestContactIndexAt(t *testing.T) {
	m := NewEndeffectorMotion()
	m.SetInitialPos(vec(0, 0, 0))
	m.AddStancePhase(1.0)
	m.AddSwingPhase(1.0, vec(0.3, 0, 0))
	m.AddStancePhase(1.0)

	tests := []struct {
		t    float64
		want int
	}{
		{0.5, 0}, // first stance holds the fixed initial contact
		{1.5, 1}, // swing is governed by its touchdown goal
		{2.5, 1}, // second stance holds that goal
	}

	for _, tt := range tests {
		if got := m.ContactIndexAt(tt.t); got != tt.want {
			t.Errorf("ContactIndexAt(%v) = %d, want %d", tt.t, got, tt.want)
		}
	}
}
