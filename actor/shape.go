package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Polygon is a convex polygon: ordered vertices in local space plus the affine
// transform placing them in the world.
//
// Convexity and winding are a caller contract. Nothing in gjk or epa checks
// them; IsConvex is provided for callers that want to assert it themselves.
type Polygon struct {
	Vertices  []mgl64.Vec2
	Transform Transform
}

// NewPolygon creates a polygon from local vertices. The slice is used as is.
func NewPolygon(transform Transform, vertices ...mgl64.Vec2) *Polygon {
	return &Polygon{
		Vertices:  vertices,
		Transform: transform,
	}
}

// NewRectangle creates a width x height rectangle whose local origin is its
// top-left corner, placed at position.
func NewRectangle(position mgl64.Vec2, width, height float64) *Polygon {
	return NewPolygon(
		Transform{Position: position},
		mgl64.Vec2{0, 0},
		mgl64.Vec2{width, 0},
		mgl64.Vec2{width, height},
		mgl64.Vec2{0, height},
	)
}

// FurthestInDirection returns the index of the vertex whose world position has
// the largest projection on direction.
//
// The comparison is strict, so on ties the first vertex in iteration order wins.
// Results depend on that ordering and must stay reproducible.
func (p *Polygon) FurthestInDirection(direction mgl64.Vec2) int {
	m := p.Transform.Matrix()

	furthestIndex := 0
	furthestDot := m.Mul3x1(p.Vertices[0].Vec3(1)).Vec2().Dot(direction)

	for i := 1; i < len(p.Vertices); i++ {
		curDot := m.Mul3x1(p.Vertices[i].Vec3(1)).Vec2().Dot(direction)
		if curDot > furthestDot {
			furthestDot = curDot
			furthestIndex = i
		}
	}

	return furthestIndex
}

// WorldVertex returns vertex i in world space
func (p *Polygon) WorldVertex(i int) mgl64.Vec2 {
	return p.Transform.Apply(p.Vertices[i])
}

// WorldVertices returns every vertex in world space, in order
func (p *Polygon) WorldVertices() []mgl64.Vec2 {
	m := p.Transform.Matrix()

	world := make([]mgl64.Vec2, len(p.Vertices))
	for i, v := range p.Vertices {
		world[i] = m.Mul3x1(v.Vec3(1)).Vec2()
	}
	return world
}

// SupportWorld returns the world-space vertex furthest along direction
func (p *Polygon) SupportWorld(direction mgl64.Vec2) mgl64.Vec2 {
	return p.WorldVertex(p.FurthestInDirection(direction))
}

// Centroid returns the vertex average in world space
func (p *Polygon) Centroid() mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, v := range p.WorldVertices() {
		sum = sum.Add(v)
	}
	return sum.Mul(1.0 / float64(len(p.Vertices)))
}

// IsConvex reports whether the vertices form a convex polygon with non-zero
// area, in either winding. Collinear runs are tolerated.
func (p *Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}

	sign := 0
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		c := p.Vertices[(i+2)%n]

		ab := b.Sub(a)
		bc := c.Sub(b)
		cross := ab.X()*bc.Y() - ab.Y()*bc.X()

		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}

	return sign != 0
}
