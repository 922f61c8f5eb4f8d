package gait

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSwingBoundaryConditions(t *testing.T) {
	sw := NewSwingMotion(0.4, vec(0.1, 0.2, 0), vec(0.4, 0.2, 0), 0.05)

	start := sw.State(0)
	if start.Pos != vec(0.1, 0.2, 0) {
		t.Errorf("start pos = %v, want (0.1,0.2,0)", start.Pos)
	}
	if !almostEqual(start.Vel.X, 0) || !almostEqual(start.Vel.Z, 0) {
		t.Errorf("start vel = %v, want zero", start.Vel)
	}

	end := sw.State(0.4)
	if !almostEqual(end.Pos.X, 0.4) || !almostEqual(end.Pos.Z, 0) {
		t.Errorf("end pos = %v, want (0.4,0.2,0)", end.Pos)
	}
	if !almostEqual(end.Vel.X, 0) || !almostEqual(end.Vel.Z, 0) {
		t.Errorf("end vel = %v, want zero", end.Vel)
	}
}

func TestSwingApexHeight(t *testing.T) {
	sw := NewSwingMotion(0.4, vec(0, 0, 0), vec(0.3, 0, 0), 0.05)

	mid := sw.State(0.2)
	if !almostEqual(mid.Pos.Z, 0.05) {
		t.Errorf("apex z = %v, want 0.05", mid.Pos.Z)
	}
	// Vertical velocity changes sign at the apex.
	if !almostEqual(mid.Vel.Z, 0) {
		t.Errorf("apex vertical vel = %v, want 0", mid.Vel.Z)
	}
}

func TestSwingVelocityMatchesFiniteDifference(t *testing.T) {
	sw := NewSwingMotion(0.6, vec(0, 0, 0), vec(0.3, 0.1, 0), 0.04)

	const h = 1e-6
	for _, tt := range []float64{0.1, 0.25, 0.45} {
		st := sw.State(tt)
		fd := r3.Scale(1/(2*h), r3.Sub(sw.State(tt+h).Pos, sw.State(tt-h).Pos))

		if math.Abs(st.Vel.X-fd.X) > 1e-5 || math.Abs(st.Vel.Z-fd.Z) > 1e-5 {
			t.Errorf("t=%v: vel = %v, finite difference = %v", tt, st.Vel, fd)
		}
	}
}

func TestSwingDurationSensitivity(t *testing.T) {
	// StateDerivWrtDuration against central differences over the
	// duration, holding the local time fixed.
	start := vec(0, 0, 0)
	goal := vec(0.3, 0.1, 0)
	const T = 0.6
	const h = 1e-6

	for _, tt := range []float64{0.1, 0.3, 0.55} {
		sw := NewSwingMotion(T, start, goal, 0.04)
		analytic := sw.StateDerivWrtDuration(tt)

		plus := NewSwingMotion(T+h, start, goal, 0.04).State(tt).Pos
		minus := NewSwingMotion(T-h, start, goal, 0.04).State(tt).Pos
		fd := r3.Scale(1/(2*h), r3.Sub(plus, minus))

		if math.Abs(analytic.X-fd.X) > 1e-5 || math.Abs(analytic.Z-fd.Z) > 1e-5 {
			t.Errorf("t=%v: d(pos)/dT = %v, finite difference = %v", tt, analytic, fd)
		}
	}
}

func TestSwingRescaleKeepsShape(t *testing.T) {
	sw := NewSwingMotion(0.4, vec(0, 0, 0), vec(0.3, 0, 0), 0.05)
	apexBefore := sw.State(0.2).Pos

	sw.SetDuration(0.8)
	apexAfter := sw.State(0.4).Pos

	if !almostEqual(apexBefore.X, apexAfter.X) || !almostEqual(apexBefore.Z, apexAfter.Z) {
		t.Errorf("apex moved on rescale: %v vs %v", apexBefore, apexAfter)
	}
}
