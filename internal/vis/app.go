// Package vis implements a Gio-based visualization of gait phase
// schedules and foot trajectories.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/gait"
	"github.com/kinodyn/gaitopt-research/internal/vis/state"
	"github.com/kinodyn/gaitopt-research/internal/vis/widgets"
)

// App is the visualizer application.
type App struct {
	state    *state.State
	theme    *material.Theme
	footView *widgets.FootView
	timeline *widgets.Timeline
}

// NewApp wires the widgets around a gait. Pass nil schedules to get the
// built-in walk demo.
func NewApp(motions core.Endeffectors[*gait.EndeffectorMotion], schedules []*gait.ContactSchedule) *App {
	if schedules == nil {
		motions, schedules = demoWalk()
	}
	st := state.NewState(motions, schedules)
	return &App{
		state:    st,
		theme:    material.NewTheme(),
		footView: widgets.NewFootView(st),
		timeline: widgets.NewTimeline(st),
	}
}

// Run drives the window event loop until the window closes.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKey(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKey(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.Step(-1)
	case key.NameRightArrow:
		a.state.Playback.Step(1)
	case key.NameHome:
		a.state.Playback.Reset()
	case key.NameUpArrow:
		a.state.ScaleDurations(1.05)
	case key.NameDownArrow:
		a.state.ScaleDurations(0.95)
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.footView.Layout(gtx, a.theme)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}

// demoWalk builds a one-step-at-a-time quadruped walk for ad-hoc runs.
func demoWalk() (core.Endeffectors[*gait.EndeffectorMotion], []*gait.ContactSchedule) {
	const (
		swing  = 0.3
		stride = 0.15
		rest   = 0.3
	)

	footprint := map[core.EndeffectorID][2]float64{
		core.E0: {-0.3, 0.2},  // LH
		core.E1: {0.3, 0.2},   // LF
		core.E2: {-0.3, -0.2}, // RH
		core.E3: {0.3, -0.2},  // RF
	}
	order := []core.EndeffectorID{core.E0, core.E1, core.E2, core.E3}

	motions := core.NewEndeffectors[*gait.EndeffectorMotion](4)
	var schedules []*gait.ContactSchedule

	for slot, ee := range order {
		fp := footprint[ee]
		m := gait.NewEndeffectorMotion()
		m.SetInitialPos(r3.Vec{X: fp[0], Y: fp[1]})

		var timings []float64
		if slot > 0 {
			m.AddStancePhase(float64(slot) * swing)
			timings = append(timings, float64(slot)*swing)
		}
		m.AddSwingPhase(swing, r3.Vec{X: fp[0] + stride, Y: fp[1]})
		timings = append(timings, swing)

		tail := float64(len(order)-1-slot)*swing + rest
		m.AddStancePhase(tail)
		timings = append(timings, tail)

		cs := gait.NewContactSchedule(ee, timings, swing/3, 4*swing)
		m.BindSchedule(cs)
		motions.Set(ee, m)
		schedules = append(schedules, cs)
	}

	return motions, schedules
}
