// Package core defines domain models for legged-robot gait optimization.
package core

import "gonum.org/v1/gonum/spatial/r3"

// EndeffectorID identifies one limb of the robot.
type EndeffectorID int

const (
	E0 EndeffectorID = iota
	E1
	E2
	E3
	E4
	E5
)

func (e EndeffectorID) String() string {
	return [...]string{"E0", "E1", "E2", "E3", "E4", "E5"}[e]
}

// Endeffectors assigns one value of type T to each endeffector.
// Common values are xyz-positions (r3.Vec) and contact flags (bool).
type Endeffectors[T any] struct {
	ee []T
}

// NewEndeffectors creates a container holding n endeffectors.
func NewEndeffectors[T any](n int) Endeffectors[T] {
	return Endeffectors[T]{ee: make([]T, n)}
}

// SetCount resizes the container to n endeffectors, zeroing all slots.
func (e *Endeffectors[T]) SetCount(n int) {
	e.ee = make([]T, n)
}

// SetAll assigns value to every endeffector.
func (e *Endeffectors[T]) SetAll(value T) {
	for i := range e.ee {
		e.ee[i] = value
	}
}

// Count returns the number of endeffectors this container holds.
func (e Endeffectors[T]) Count() int {
	return len(e.ee)
}

// IDs returns all endeffector IDs from E0 upwards, in order.
func (e Endeffectors[T]) IDs() []EndeffectorID {
	ids := make([]EndeffectorID, len(e.ee))
	for i := range ids {
		ids[i] = EndeffectorID(i)
	}
	return ids
}

// At returns the value stored for ee. Panics if ee is out of range.
func (e Endeffectors[T]) At(ee EndeffectorID) T {
	return e.ee[ee]
}

// Set stores value for ee. Panics if ee is out of range.
func (e *Endeffectors[T]) Set(ee EndeffectorID, value T) {
	e.ee[ee] = value
}

// EndeffectorsPos assigns a 3D position to each endeffector.
type EndeffectorsPos = Endeffectors[r3.Vec]

// EndeffectorsVel assigns a 3D velocity to each endeffector.
type EndeffectorsVel = Endeffectors[r3.Vec]

// EndeffectorsBool assigns a flag to each endeffector, e.g. contact state.
type EndeffectorsBool = Endeffectors[bool]

// Sub returns the element-wise difference a-b. Both containers must hold
// the same number of endeffectors.
func Sub(a, b EndeffectorsPos) EndeffectorsPos {
	out := NewEndeffectors[r3.Vec](a.Count())
	for _, ee := range a.IDs() {
		out.Set(ee, r3.Sub(a.At(ee), b.At(ee)))
	}
	return out
}

// Div returns a copy of a with every element divided by s.
// Used e.g. to turn a position difference into a velocity estimate.
func Div(a EndeffectorsPos, s float64) EndeffectorsPos {
	out := NewEndeffectors[r3.Vec](a.Count())
	for _, ee := range a.IDs() {
		out.Set(ee, r3.Scale(1/s, a.At(ee)))
	}
	return out
}

// Unequal reports whether a and b differ in count or in any element.
func Unequal[T comparable](a, b Endeffectors[T]) bool {
	if a.Count() != b.Count() {
		return true
	}
	for _, ee := range a.IDs() {
		if a.At(ee) != b.At(ee) {
			return true
		}
	}
	return false
}

// Invert returns a copy of f with every flag flipped.
func Invert(f EndeffectorsBool) EndeffectorsBool {
	out := NewEndeffectors[bool](f.Count())
	for _, ee := range f.IDs() {
		out.Set(ee, !f.At(ee))
	}
	return out
}

// TrueCount returns the number of endeffectors with their flag set.
func TrueCount(f EndeffectorsBool) int {
	n := 0
	for _, ee := range f.IDs() {
		if f.At(ee) {
			n++
		}
	}
	return n
}
