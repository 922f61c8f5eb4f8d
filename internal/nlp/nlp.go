// Package nlp defines the thin capability surface the gait variables and
// constraints expose to a nonlinear-program solver backend.
package nlp

import "fmt"

// Bounds is a closed interval restricting one scalar variable or
// constraint row.
type Bounds struct {
	Lower float64
	Upper float64
}

// NoBound leaves a row unrestricted.
var NoBound = Bounds{Lower: -1e20, Upper: 1e20}

// Equality pins a constraint row to zero.
var Equality = Bounds{}

// VariableSet is one named block of optimization variables. The solver
// writes values through SetValues once per iteration; everything else
// reads them back between writes.
type VariableSet interface {
	Name() string
	Rows() int
	Values() []float64
	SetValues(x []float64)
	Bounds() []Bounds
}

// Constraint is one block of constraint rows evaluated at the current
// iterate.
type Constraint interface {
	Name() string
	Rows() int
	Values() []float64
	Bounds() []Bounds
}

// Problem stacks variable sets into one flat vector and collects the
// constraints evaluated against them.
type Problem struct {
	vars        []VariableSet
	constraints []Constraint
}

// AddVariableSet appends a variable block. Blocks keep their insertion
// order in the stacked vector.
func (p *Problem) AddVariableSet(v VariableSet) {
	p.vars = append(p.vars, v)
}

// AddConstraint appends a constraint block.
func (p *Problem) AddConstraint(c Constraint) {
	p.constraints = append(p.constraints, c)
}

// VariableRows returns the length of the stacked variable vector.
func (p *Problem) VariableRows() int {
	n := 0
	for _, v := range p.vars {
		n += v.Rows()
	}
	return n
}

// VariableValues returns the stacked variable vector in block order.
func (p *Problem) VariableValues() []float64 {
	x := make([]float64, 0, p.VariableRows())
	for _, v := range p.vars {
		x = append(x, v.Values()...)
	}
	return x
}

// SetVariableValues distributes a stacked vector back to the blocks.
func (p *Problem) SetVariableValues(x []float64) {
	if len(x) != p.VariableRows() {
		panic(fmt.Sprintf("nlp: vector length %d, want %d", len(x), p.VariableRows()))
	}
	off := 0
	for _, v := range p.vars {
		v.SetValues(x[off : off+v.Rows()])
		off += v.Rows()
	}
}

// VariableBounds returns the stacked bounds, one per variable row.
func (p *Problem) VariableBounds() []Bounds {
	b := make([]Bounds, 0, p.VariableRows())
	for _, v := range p.vars {
		b = append(b, v.Bounds()...)
	}
	return b
}

// ConstraintRows returns the total number of constraint rows.
func (p *Problem) ConstraintRows() int {
	n := 0
	for _, c := range p.constraints {
		n += c.Rows()
	}
	return n
}

// ConstraintValues evaluates all constraint blocks at the current iterate.
func (p *Problem) ConstraintValues() []float64 {
	g := make([]float64, 0, p.ConstraintRows())
	for _, c := range p.constraints {
		g = append(g, c.Values()...)
	}
	return g
}

// ConstraintBounds returns the stacked constraint bounds.
func (p *Problem) ConstraintBounds() []Bounds {
	b := make([]Bounds, 0, p.ConstraintRows())
	for _, c := range p.constraints {
		b = append(b, c.Bounds()...)
	}
	return b
}
