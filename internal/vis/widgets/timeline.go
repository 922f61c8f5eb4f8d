package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/kinodyn/gaitopt-research/internal/vis/state"
)

var (
	stanceColor   = color.NRGBA{R: 70, G: 130, B: 90, A: 255}
	swingColor    = color.NRGBA{R: 120, G: 160, B: 220, A: 255}
	playheadColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	labelColor    = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// Timeline shows one stance/swing bar row per foot with a draggable
// playhead across them.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates the widget over st.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

const (
	rowHeight   = 22
	rowGap      = 4
	labelWidth  = 48
	trackMargin = 16
)

// Layout renders the phase rows and handles scrubbing.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	rows := t.state.Motions.Count()
	height := rows*(rowHeight+rowGap) + 30

	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	trackX := labelWidth + trackMargin
	trackWidth := gtx.Constraints.Max.X - trackX - trackMargin
	maxTime := t.state.Playback.MaxTime

	t.handlePointerEvents(gtx, height, trackX, trackWidth)

	for row, ee := range t.state.Motions.IDs() {
		m := t.state.Motions.At(ee)
		y := row * (rowHeight + rowGap)

		label := material.Label(th, 12, t.state.FootLabel(ee))
		label.Color = labelColor
		label.Alignment = text.Start
		layout.Inset{Top: unit.Dp(float32(y + 4)), Left: unit.Dp(8)}.Layout(gtx, label.Layout)

		start := 0.0
		for _, d := range m.Schedule().Durations() {
			x0 := trackX + int(start/maxTime*float64(trackWidth))
			x1 := trackX + int((start+d)/maxTime*float64(trackWidth))
			col := swingColor
			if m.IsInContact(start) {
				col = stanceColor
			}
			bar := image.Rect(x0, y, x1-1, y+rowHeight)
			paint.FillShape(gtx.Ops, col, clip.Rect(bar).Op())
			start += d
		}
	}

	// Playhead across all rows.
	px := trackX + int(t.state.Playback.Progress()*float64(trackWidth))
	ph := image.Rect(px-1, 0, px+1, rows*(rowHeight+rowGap))
	paint.FillShape(gtx.Ops, playheadColor, clip.Rect(ph).Op())

	timeLabel := material.Label(th, 12,
		fmt.Sprintf("t = %.2fs / %.2fs", t.state.Playback.CurrentTime, maxTime))
	timeLabel.Color = labelColor
	layout.Inset{Top: unit.Dp(float32(rows*(rowHeight+rowGap) + 6)), Left: unit.Dp(8)}.Layout(gtx, timeLabel.Layout)

	return layout.Dimensions{Size: image.Point{X: gtx.Constraints.Max.X, Y: height}}
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, height, trackX, trackWidth int) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.dragging = true
			t.seek(pe.Position.X, trackX, trackWidth)
		case pointer.Drag:
			if t.dragging {
				t.seek(pe.Position.X, trackX, trackWidth)
			}
		case pointer.Release:
			t.dragging = false
		}
	}
}

func (t *Timeline) seek(screenX float32, trackX, trackWidth int) {
	progress := (float64(screenX) - float64(trackX)) / float64(trackWidth)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	t.state.Playback.SetTime(progress * t.state.Playback.MaxTime)
}
