package core

// BipedFoot names the feet of a two-legged robot.
type BipedFoot int

const (
	BipedL BipedFoot = iota
	BipedR
)

func (f BipedFoot) String() string {
	return [...]string{"L", "R"}[f]
}

// QuadFoot names the feet of a four-legged robot.
type QuadFoot int

const (
	QuadRF QuadFoot = iota // Right front
	QuadLF                 // Left front
	QuadLH                 // Left hind
	QuadRH                 // Right hind
)

func (f QuadFoot) String() string {
	return [...]string{"RF", "LF", "LH", "RH"}[f]
}

// BipedMap translates generic endeffector IDs to biped foot names.
var BipedMap = map[EndeffectorID]BipedFoot{
	E0: BipedL,
	E1: BipedR,
}

// QuadMap translates generic endeffector IDs to quadruped foot names.
var QuadMap = map[EndeffectorID]QuadFoot{
	E0: QuadLH,
	E1: QuadLF,
	E2: QuadRH,
	E3: QuadRF,
}

// Reverse builds the foot-name-to-ID lookup from an ID-to-foot-name map.
func Reverse[T comparable](m map[EndeffectorID]T) map[T]EndeffectorID {
	rev := make(map[T]EndeffectorID, len(m))
	for ee, foot := range m {
		rev[foot] = ee
	}
	return rev
}
