package core

import "gonum.org/v1/gonum/spatial/r3"

// State is the linear kinematic state of a point in 3D.
type State struct {
	Pos r3.Vec
	Vel r3.Vec
	Acc r3.Vec
}

// StationaryState returns a state resting at pos with zero derivatives.
func StationaryState(pos r3.Vec) State {
	return State{Pos: pos}
}
