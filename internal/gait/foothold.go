package gait

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kinodyn/gaitopt-research/internal/core"
	"github.com/kinodyn/gaitopt-research/internal/nlp"
)

// FootholdConstraint penalizes the deviation of each foot's governing
// contact position from a nominal stance at one fixed evaluation time.
// It holds references only; the solver re-evaluates it every iteration
// without structural mutation.
type FootholdConstraint struct {
	motions core.Endeffectors[*EndeffectorMotion]
	nominal core.EndeffectorsPos
	t       float64
	bounds  nlp.Bounds
}

// NewFootholdConstraint builds an equality constraint pinning every
// foot's contact position at time t to the nominal stance.
func NewFootholdConstraint(motions core.Endeffectors[*EndeffectorMotion], nominal core.EndeffectorsPos, t float64) *FootholdConstraint {
	return &FootholdConstraint{
		motions: motions,
		nominal: nominal,
		t:       t,
		bounds:  nlp.Equality,
	}
}

// SetBounds relaxes the per-row bounds away from the equality default.
func (c *FootholdConstraint) SetBounds(b nlp.Bounds) {
	c.bounds = b
}

// Name identifies this constraint block inside the NLP.
func (c *FootholdConstraint) Name() string {
	return "foothold"
}

// Rows returns three rows (x,y,z deviation) per endeffector.
func (c *FootholdConstraint) Rows() int {
	return 3 * c.motions.Count()
}

// Values returns the stacked deviation between each foot's governing
// contact position at the evaluation time and its nominal target.
func (c *FootholdConstraint) Values() []float64 {
	g := make([]float64, 0, c.Rows())
	for _, ee := range c.motions.IDs() {
		m := c.motions.At(ee)
		pos := m.ContactPosition(m.ContactIndexAt(c.t))
		dev := r3.Sub(pos, c.nominal.At(ee))
		g = append(g, dev.X, dev.Y, dev.Z)
	}
	return g
}

// Bounds returns one bound pair per row.
func (c *FootholdConstraint) Bounds() []nlp.Bounds {
	b := make([]nlp.Bounds, c.Rows())
	for i := range b {
		b[i] = c.bounds
	}
	return b
}

// JacobianWrtContacts returns the 3 x 3*FreeContactCount Jacobian of one
// endeffector's rows with respect to that foot's free contact positions:
// an identity block on the contact governing the evaluation time, zero
// elsewhere. The initial contact is fixed, so a time governed by it
// yields an empty pattern.
func (c *FootholdConstraint) JacobianWrtContacts(ee core.EndeffectorID) *nlp.Jacobian {
	m := c.motions.At(ee)
	jac := nlp.NewJacobian(3, 3*m.FreeContactCount())
	free := m.ContactIndexAt(c.t) - 1
	if free < 0 {
		return jac
	}
	for d := 0; d < 3; d++ {
		jac.Set(d, 3*free+d, 1)
	}
	return jac
}

// JacobianWrtDurations returns the sensitivity of the foot position at
// the evaluation time to that foot's optimized phase durations, through
// the schedule's chain rule.
func (c *FootholdConstraint) JacobianWrtDurations(ee core.EndeffectorID) *nlp.Jacobian {
	return c.motions.At(ee).TimingJacobian(c.t)
}
