package nlp

import "gonum.org/v1/gonum/mat"

// Jacobian is a derivative matrix with an explicit structural sparsity
// pattern. A slot marked structural stays part of the pattern even while
// its value is numerically zero, because it can turn nonzero at a later
// iterate (e.g. when a query time moves into a different phase). Solver
// backends require the pattern to be stable across iterations.
type Jacobian struct {
	vals    *mat.Dense
	pattern []bool // row-major, true where the slot is structurally nonzero
}

// NewJacobian creates an all-zero r x c Jacobian with an empty pattern.
func NewJacobian(r, c int) *Jacobian {
	return &Jacobian{
		vals:    mat.NewDense(r, c, nil),
		pattern: make([]bool, r*c),
	}
}

// Dims returns the matrix dimensions.
func (j *Jacobian) Dims() (r, c int) {
	return j.vals.Dims()
}

// Set writes v at (r,c) and marks the slot structurally nonzero.
func (j *Jacobian) Set(r, c int, v float64) {
	_, cols := j.vals.Dims()
	j.vals.Set(r, c, v)
	j.pattern[r*cols+c] = true
}

// SetCol writes a full column and marks every slot in it structural.
func (j *Jacobian) SetCol(c int, col []float64) {
	rows, cols := j.vals.Dims()
	for r := 0; r < rows; r++ {
		j.vals.Set(r, c, col[r])
		j.pattern[r*cols+c] = true
	}
}

// At returns the value at (r,c), zero for slots outside the pattern.
func (j *Jacobian) At(r, c int) float64 {
	return j.vals.At(r, c)
}

// Structural reports whether slot (r,c) is part of the sparsity pattern.
func (j *Jacobian) Structural(r, c int) bool {
	_, cols := j.vals.Dims()
	return j.pattern[r*cols+c]
}

// NNZ returns the number of structurally nonzero slots.
func (j *Jacobian) NNZ() int {
	n := 0
	for _, s := range j.pattern {
		if s {
			n++
		}
	}
	return n
}

// Dense returns the value matrix. Mutating it bypasses the pattern.
func (j *Jacobian) Dense() *mat.Dense {
	return j.vals
}
