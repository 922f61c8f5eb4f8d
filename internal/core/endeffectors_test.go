package core

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestEndeffectorsElementwiseOps(t *testing.T) {
	a := NewEndeffectors[r3.Vec](2)
	a.Set(E0, r3.Vec{X: 1, Y: 2, Z: 3})
	a.Set(E1, r3.Vec{X: 4, Y: 5, Z: 6})

	b := NewEndeffectors[r3.Vec](2)
	b.Set(E0, r3.Vec{X: 0.5, Y: 1, Z: 1.5})
	b.Set(E1, r3.Vec{X: 1, Y: 1, Z: 1})

	diff := Sub(a, b)
	for _, ee := range a.IDs() {
		want := r3.Sub(a.At(ee), b.At(ee))
		if diff.At(ee) != want {
			t.Errorf("Sub at %v = %v, want %v", ee, diff.At(ee), want)
		}
	}

	half := Div(a, 2)
	for _, ee := range a.IDs() {
		want := r3.Scale(0.5, a.At(ee))
		if half.At(ee) != want {
			t.Errorf("Div at %v = %v, want %v", ee, half.At(ee), want)
		}
	}
}

func TestEndeffectorsUnequal(t *testing.T) {
	a := NewEndeffectors[bool](2)
	b := NewEndeffectors[bool](2)
	if Unequal(a, b) {
		t.Error("identical containers reported unequal")
	}

	b.Set(E1, true)
	if !Unequal(a, b) {
		t.Error("differing containers reported equal")
	}

	c := NewEndeffectors[bool](3)
	if !Unequal(a, c) {
		t.Error("containers of different count reported equal")
	}
}

func TestBoolAggregates(t *testing.T) {
	f := NewEndeffectors[bool](4)
	f.Set(E0, true)
	f.Set(E2, true)

	if got := TrueCount(f); got != 2 {
		t.Errorf("TrueCount = %d, want 2", got)
	}

	inv := Invert(f)
	if got := TrueCount(inv); got != f.Count()-2 {
		t.Errorf("TrueCount(Invert) = %d, want %d", got, f.Count()-2)
	}
	for _, ee := range f.IDs() {
		if inv.At(ee) == f.At(ee) {
			t.Errorf("flag at %v not flipped", ee)
		}
	}
}

func TestSetCountAndSetAll(t *testing.T) {
	var e Endeffectors[float64]
	e.SetCount(3)
	if e.Count() != 3 {
		t.Fatalf("Count = %d, want 3", e.Count())
	}

	e.SetAll(1.5)
	for _, ee := range e.IDs() {
		if e.At(ee) != 1.5 {
			t.Errorf("At(%v) = %v, want 1.5", ee, e.At(ee))
		}
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	e := NewEndeffectors[int](2)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range endeffector")
		}
	}()
	e.At(E3)
}

func TestMorphologyMaps(t *testing.T) {
	if BipedMap[E0] != BipedL || BipedMap[E1] != BipedR {
		t.Error("biped map mismatch")
	}
	if QuadMap[E3] != QuadRF {
		t.Errorf("QuadMap[E3] = %v, want RF", QuadMap[E3])
	}

	rev := Reverse(QuadMap)
	if len(rev) != len(QuadMap) {
		t.Fatalf("reverse map has %d entries, want %d", len(rev), len(QuadMap))
	}
	for ee, foot := range QuadMap {
		if rev[foot] != ee {
			t.Errorf("Reverse[%v] = %v, want %v", foot, rev[foot], ee)
		}
	}
}
