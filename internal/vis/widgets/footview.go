package widgets

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/kinodyn/gaitopt-research/internal/vis/state"
)

var footColors = []color.NRGBA{
	{R: 240, G: 120, B: 100, A: 255},
	{R: 120, G: 200, B: 120, A: 255},
	{R: 110, G: 160, B: 240, A: 255},
	{R: 230, G: 200, B: 90, A: 255},
	{R: 200, G: 120, B: 220, A: 255},
	{R: 120, G: 210, B: 210, A: 255},
}

// FootView draws each foot's trajectory in the x-z plane (side view)
// with a marker at the playhead time. Feet on the ground render as
// filled markers, swinging feet as outlines.
type FootView struct {
	state *state.State
}

// NewFootView creates the widget over st.
func NewFootView(st *state.State) *FootView {
	return &FootView{state: st}
}

// Layout renders the trajectories. The theme is accepted for symmetry
// with the other widgets; the view draws with raw ops.
func (v *FootView) Layout(gtx layout.Context, _ *material.Theme) layout.Dimensions {
	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, color.NRGBA{R: 24, G: 26, B: 30, A: 255},
		clip.Rect(image.Rect(0, 0, size.X, size.Y)).Op())

	minX, maxX, maxZ := v.worldExtent()
	scaleX := float64(size.X-80) / (maxX - minX)
	scaleZ := scaleX
	if lim := float64(size.Y-120) / maxZ; lim < scaleZ {
		scaleZ = lim
	}
	groundY := float64(size.Y - 60)

	toScreen := func(x, z float64) (float32, float32) {
		return float32(40 + (x-minX)*scaleX), float32(groundY - z*scaleZ)
	}

	// Ground line.
	gy := int(groundY)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 70, G: 70, B: 75, A: 255},
		clip.Rect(image.Rect(20, gy, size.X-20, gy+2)).Op())

	const samples = 120
	for i, ee := range v.state.Motions.IDs() {
		m := v.state.Motions.At(ee)
		col := footColors[i%len(footColors)]
		total := m.TotalTime()

		var prevX, prevY float32
		for k := 0; k <= samples; k++ {
			st := m.State(total * float64(k) / samples)
			x, y := toScreen(st.Pos.X, st.Pos.Z)
			if k > 0 {
				line(gtx, prevX, prevY, x, y, 1.5, col)
			}
			prevX, prevY = x, y
		}

		// Playhead marker.
		t := v.state.Playback.CurrentTime
		if t > total {
			t = total
		}
		st := m.State(t)
		x, y := toScreen(st.Pos.X, st.Pos.Z)
		if m.IsInContact(t) {
			fillCircle(gtx, x, y, 6, col)
		} else {
			ring(gtx, x, y, 6, col)
		}
	}

	return layout.Dimensions{Size: size}
}

// worldExtent returns the x-range and peak height over all trajectories.
func (v *FootView) worldExtent() (minX, maxX, maxZ float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	maxZ = 0.05
	const samples = 60
	for _, ee := range v.state.Motions.IDs() {
		m := v.state.Motions.At(ee)
		total := m.TotalTime()
		for k := 0; k <= samples; k++ {
			p := m.State(total * float64(k) / samples).Pos
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			maxZ = math.Max(maxZ, p.Z)
		}
	}
	if maxX-minX < 0.1 {
		maxX = minX + 0.1
	}
	return minX, maxX, maxZ
}

func line(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx, dy := x2-x1, y2-y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}
	px := -dy / length * width / 2
	py := dx / length * width / 2

	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(x1+px, y1+py))
	p.LineTo(f32.Pt(x2+px, y2+py))
	p.LineTo(f32.Pt(x2-px, y2-py))
	p.LineTo(f32.Pt(x1-px, y1-py))
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

func fillCircle(gtx layout.Context, x, y, r float32, col color.NRGBA) {
	b := image.Rect(int(x-r), int(y-r), int(x+r), int(y+r))
	paint.FillShape(gtx.Ops, col, clip.Ellipse(b).Op(gtx.Ops))
}

func ring(gtx layout.Context, x, y, r float32, col color.NRGBA) {
	outer := image.Rect(int(x-r), int(y-r), int(x+r), int(y+r))
	paint.FillShape(gtx.Ops, col, clip.Ellipse(outer).Op(gtx.Ops))
	inner := image.Rect(int(x-r+2), int(y-r+2), int(x+r-2), int(y+r-2))
	paint.FillShape(gtx.Ops, color.NRGBA{R: 24, G: 26, B: 30, A: 255}, clip.Ellipse(inner).Op(gtx.Ops))
}
