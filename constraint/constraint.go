package constraint

import (
	"github.com/akmonengine/feather2d/actor"
)

type Constraint interface {
	SolvePosition()
}

// ComputeShares returns how much of a correction each body takes.
// Static bodies take none; two dynamic bodies split it evenly.
func ComputeShares(bodyA, bodyB *actor.Body) (shareA, shareB float64) {
	staticA := bodyA.BodyType == actor.BodyTypeStatic
	staticB := bodyB.BodyType == actor.BodyTypeStatic

	switch {
	case staticA && staticB:
		return 0, 0
	case staticA:
		return 0, 1
	case staticB:
		return 1, 0
	}
	return 0.5, 0.5
}
