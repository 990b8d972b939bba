package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of body
type BodyType int

const (
	// BodyTypeDynamic bodies move with their velocity and are pushed out of
	// collisions
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never translate. They may still be rotated by their
	// controls.
	BodyTypeStatic
)

// Steering constants, in world units per tick
const (
	SteerAcceleration = 1.0
	SteerDamping      = 0.2
	SteerSnapLimit    = 1.0
	SteerMaxSpeed     = 4.0

	// RotationStep is the rotation applied per tick while Rotate is held, in degrees
	RotationStep = 0.25
)

// Controls is one tick of input for a single body
type Controls struct {
	Left, Right bool
	Up, Down    bool
	Rotate      bool
}

// Body is the caller-owned simulation state of a shape: where it is (through
// its polygon transform) and how fast it moves.
type Body struct {
	Id any

	Shape    *Polygon
	Velocity mgl64.Vec2 // world units per tick

	BodyType BodyType
	// Triggers report overlaps but are never pushed apart
	IsTrigger bool
}

// NewBody creates a body at rest
func NewBody(shape *Polygon, bodyType BodyType) *Body {
	return &Body{
		Shape:    shape,
		BodyType: bodyType,
	}
}

func (b *Body) Position() mgl64.Vec2 {
	return b.Shape.Transform.Position
}

// Translate moves a dynamic body by delta. Static bodies are left untouched.
func (b *Body) Translate(delta mgl64.Vec2) {
	if b.BodyType == BodyTypeStatic {
		return
	}
	b.Shape.Transform.Position = b.Shape.Transform.Position.Add(delta)
}

// Steer applies one tick of controls. Rotation applies to every body type,
// velocity changes only to dynamic bodies.
func (b *Body) Steer(c Controls) {
	if c.Rotate {
		b.Shape.Transform.Rotation += mgl64.DegToRad(RotationStep)
	}

	if b.BodyType == BodyTypeStatic {
		return
	}

	b.Velocity[0] = steerAxis(b.Velocity[0], c.Left, c.Right)
	b.Velocity[1] = steerAxis(b.Velocity[1], c.Up, c.Down)
}

// Integrate advances a dynamic body by one tick of velocity
func (b *Body) Integrate() {
	if b.BodyType == BodyTypeStatic {
		return
	}
	b.Translate(b.Velocity)
}

// steerAxis accelerates toward the held key, or damps when none is held.
// Any speed beyond the snap limit jumps straight to the maximum speed.
func steerAxis(v float64, negative, positive bool) float64 {
	switch {
	case negative:
		v -= SteerAcceleration
	case positive:
		v += SteerAcceleration
	default:
		v *= SteerDamping
	}

	if v > SteerSnapLimit {
		v = SteerMaxSpeed
	}
	if v < -SteerSnapLimit {
		v = -SteerMaxSpeed
	}

	return v
}
