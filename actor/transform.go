package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and an orientation in the plane
type Transform struct {
	Position mgl64.Vec2
	Rotation float64 // radians
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Rotation: 0,
	}
}

// Matrix returns the homogeneous local-to-world matrix: rotation about the
// local origin followed by the translation.
func (t Transform) Matrix() mgl64.Mat3 {
	return mgl64.Translate2D(t.Position.X(), t.Position.Y()).Mul3(mgl64.HomogRotate2D(t.Rotation))
}

// Apply maps a local point to world space
func (t Transform) Apply(local mgl64.Vec2) mgl64.Vec2 {
	return t.Matrix().Mul3x1(local.Vec3(1)).Vec2()
}

// RotateAbout returns the transform rotated by angle radians around a world pivot.
// Both the position and the orientation are rotated, so every world vertex of a
// shape using this transform turns rigidly around the pivot.
func (t Transform) RotateAbout(pivot mgl64.Vec2, angle float64) Transform {
	offset := mgl64.Rotate2D(angle).Mul2x1(t.Position.Sub(pivot))

	return Transform{
		Position: pivot.Add(offset),
		Rotation: t.Rotation + angle,
	}
}
