package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
)

const DEFAULT_WORKERS = 1

// Inputs holds the controls applied to each body for one step.
// Bodies missing from the map steer with zero controls, which damps them.
type Inputs map[*actor.Body]actor.Controls

type World struct {
	// List of all bodies in the world
	Bodies  []*actor.Body
	Workers int

	Events Events
}

func NewWorld(workers int) *World {
	return &World{
		Workers: workers,
		Events:  NewEvents(),
	}
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Step advances the world by one tick and returns the contacts it resolved
func (w *World) Step(inputs Inputs) []*constraint.ContactConstraint {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: controls and velocity
	w.steer(inputs)
	w.integrate()

	// Phase 2: every pair through the narrow phase
	constraints := w.detectCollision()

	constraints = w.Events.recordCollisions(constraints)

	// Phase 3: position correction
	w.solvePosition(constraints)

	w.Events.flush()

	return constraints
}

// steer reads the inputs map only, so it is safe to run concurrently
func (w *World) steer(inputs Inputs) {
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.Steer(inputs[body])
	})
}

func (w *World) integrate() {
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.Integrate()
	})
}

func (w *World) detectCollision() []*constraint.ContactConstraint {
	return NarrowPhase(Pairs(w.Bodies), w.Workers)
}

// solvePosition runs sequentially: a body may appear in several constraints
func (w *World) solvePosition(constraints []*constraint.ContactConstraint) {
	for _, c := range constraints {
		c.SolvePosition()
	}
}
