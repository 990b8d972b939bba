package constraint

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

type ContactPoint struct {
	Position    mgl64.Vec2
	Penetration float64
}

// ContactConstraint is one overlap between BodyA and BodyB.
// A zero Displacement means the overlap was detected but no correction could be computed.
type ContactConstraint struct {
	BodyA *actor.Body
	BodyB *actor.Body

	// Normal points from A toward B
	Normal mgl64.Vec2
	Depth  float64
	// Displacement separates the shapes when added to B (or subtracted from A)
	Displacement mgl64.Vec2
	Points       []ContactPoint
}

// SolvePosition pushes the bodies apart along the displacement, split by ComputeShares
func (c *ContactConstraint) SolvePosition() {
	if c.Displacement.LenSqr() == 0 {
		return
	}

	shareA, shareB := ComputeShares(c.BodyA, c.BodyB)

	if shareA > 0 {
		c.BodyA.Translate(c.Displacement.Mul(-shareA))
	}
	if shareB > 0 {
		c.BodyB.Translate(c.Displacement.Mul(shareB))
	}
}
