// Package state holds the mutable model behind the gait visualizer.
package state

import (
	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/gait"
)

// State bundles the feet being visualized with playback timing.
type State struct {
	Motions   core.Endeffectors[*gait.EndeffectorMotion]
	Schedules []*gait.ContactSchedule
	Playback  *Playback
}

// NewState wraps a set of foot motions; the playback horizon is the
// common total time of their schedules.
func NewState(motions core.Endeffectors[*gait.EndeffectorMotion], schedules []*gait.ContactSchedule) *State {
	maxTime := 0.0
	for _, cs := range schedules {
		if cs.TotalTime() > maxTime {
			maxTime = cs.TotalTime()
		}
	}
	return &State{
		Motions:   motions,
		Schedules: schedules,
		Playback:  NewPlayback(maxTime),
	}
}

// FootLabel returns the morphology name for an endeffector when one
// exists, the generic ID otherwise.
func (s *State) FootLabel(ee core.EndeffectorID) string {
	if s.Motions.Count() == len(core.QuadMap) {
		return core.QuadMap[ee].String()
	}
	if s.Motions.Count() == len(core.BipedMap) {
		return core.BipedMap[ee].String()
	}
	return ee.String()
}

// ScaleDurations applies a uniform scale to every schedule's optimized
// durations, as a stand-in for a solver iterate. The derived last
// durations keep each total fixed. Scales that would drive a last
// duration non-positive are ignored.
func (s *State) ScaleDurations(scale float64) {
	for _, cs := range s.Schedules {
		x := cs.Values()
		sum := 0.0
		for i := range x {
			x[i] *= scale
			sum += x[i]
		}
		if cs.TotalTime()-sum <= 0 {
			continue
		}
		cs.SetValues(x)
	}
}
