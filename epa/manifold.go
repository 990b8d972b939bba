package epa

import (
	"math"
	"slices"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// feature is the polygon edge best facing a direction, in world space.
// max is the vertex furthest along that direction, one of the edge ends.
type feature struct {
	max  mgl64.Vec2
	a, b mgl64.Vec2
}

func (f feature) direction() mgl64.Vec2 {
	return f.b.Sub(f.a)
}

// GenerateManifold creates contact points for a collision by clipping edges.
//
// Algorithm:
//  1. For each polygon, take the edge next to its furthest vertex that is the
//     most perpendicular to the normal (toward B for A, toward A for B)
//  2. The edge most perpendicular to the normal becomes the reference, the other
//     one the incident edge
//  3. Clip the incident edge to the extent of the reference edge
//  4. Keep the clipped points lying behind the reference edge
//
// Parameters:
//   - a, b: The two colliding polygons
//   - normal: Contact normal, the EPA normal (from A toward B)
//   - depth: Penetration depth, used for the fallback point
//
// Returns:
//
//	1-2 ContactPoints with world positions and their penetration
func GenerateManifold(a, b *actor.Polygon, normal mgl64.Vec2, depth float64) []constraint.ContactPoint {
	edgeA := bestEdge(a, normal)
	edgeB := bestEdge(b, normal.Mul(-1))

	reference, incident := edgeA, edgeB
	facing := normal
	if math.Abs(safeNormalize(edgeA.direction()).Dot(normal)) > math.Abs(safeNormalize(edgeB.direction()).Dot(normal)) {
		reference, incident = edgeB, edgeA
		facing = normal.Mul(-1)
	}

	refDir := safeNormalize(reference.direction())

	// Clip against both ends of the reference edge. An incident end lying exactly
	// on the first side plane may be all that is left of the edge.
	clipped := clipSegment(incident.a, incident.b, refDir, refDir.Dot(reference.a))
	if len(clipped) == 2 {
		clipped = clipSegment(clipped[0], clipped[1], refDir.Mul(-1), -refDir.Dot(reference.b))
	} else {
		clipped = slices.DeleteFunc(clipped, func(p mgl64.Vec2) bool {
			return refDir.Dot(p) > refDir.Dot(reference.b)
		})
	}

	// Outward normal of the reference edge, toward the other polygon
	refNormal := gjk.Perp(refDir)
	if refNormal.Dot(facing) < 0 {
		refNormal = refNormal.Mul(-1)
	}
	offset := refNormal.Dot(reference.max)

	var contactPoints []constraint.ContactPoint
	for _, point := range clipped {
		penetration := offset - refNormal.Dot(point)
		if penetration >= 0 {
			contactPoints = append(contactPoints, constraint.ContactPoint{
				Position:    point,
				Penetration: penetration,
			})
		}
	}

	// Fallback: the deepest point of B
	if len(contactPoints) == 0 {
		contactPoints = append(contactPoints, constraint.ContactPoint{
			Position:    b.SupportWorld(normal.Mul(-1)),
			Penetration: depth,
		})
	}

	return contactPoints
}

// bestEdge returns the edge adjacent to the furthest vertex along n that is the
// most perpendicular to n
func bestEdge(p *actor.Polygon, n mgl64.Vec2) feature {
	vertices := p.WorldVertices()
	count := len(vertices)

	i := p.FurthestInDirection(n)
	v := vertices[i]
	next := vertices[(i+1)%count]
	prev := vertices[(i-1+count)%count]

	left := safeNormalize(v.Sub(next))
	right := safeNormalize(v.Sub(prev))

	if right.Dot(n) <= left.Dot(n) {
		return feature{max: v, a: prev, b: v}
	}
	return feature{max: v, a: v, b: next}
}

// clipSegment keeps the part of segment v1-v2 where n·p >= o
func clipSegment(v1, v2, n mgl64.Vec2, o float64) []mgl64.Vec2 {
	clipped := make([]mgl64.Vec2, 0, 2)

	d1 := n.Dot(v1) - o
	d2 := n.Dot(v2) - o

	if d1 >= 0 {
		clipped = append(clipped, v1)
	}
	if d2 >= 0 {
		clipped = append(clipped, v2)
	}

	// Ends on opposite sides: add the crossing point
	if d1*d2 < 0 {
		e := v2.Sub(v1)
		u := d1 / (d1 - d2)
		clipped = append(clipped, v1.Add(e.Mul(u)))
	}

	return clipped
}

// safeNormalize returns the zero vector instead of NaNs for a zero-length input
func safeNormalize(v mgl64.Vec2) mgl64.Vec2 {
	length := v.Len()
	if length < DegenerateEdgeLength {
		return mgl64.Vec2{}
	}
	return v.Mul(1.0 / length)
}
