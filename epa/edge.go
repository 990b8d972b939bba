package epa

import (
	"math"

	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Edge is a polytope edge seen from the origin
type Edge struct {
	Normal   mgl64.Vec2 // Unit normal pointing away from the origin
	Distance float64    // Distance from the origin to the edge line along Normal
	Index    int        // Where a point found beyond this edge is inserted to keep the winding
}

// createEdgeOutward builds the edge from a to b with its normal facing away from
// the origin. index is the position of b in the polytope.
//
// Returns false when a and b coincide: such an edge has no normal.
func createEdgeOutward(a, b mgl64.Vec2, index int) (Edge, bool) {
	e := b.Sub(a)
	normal := gjk.Perp(e)

	// The polytope contains the origin, so an outward normal never points at it
	if normal.Dot(a.Mul(-1)) >= 0 {
		normal = normal.Mul(-1)
	}

	length := normal.Len()
	if length < DegenerateEdgeLength {
		return Edge{}, false
	}
	normal = normal.Mul(1.0 / length)

	return Edge{
		Normal: normal,
		// a is the vector from the origin to a point of the edge
		Distance: a.Dot(normal),
		Index:    index,
	}, true
}

// FindClosestEdge returns the edge of the closed polygon points nearest to the origin.
//
// Edges are taken between consecutive points, the last one closing back on the
// first. Ties keep the first edge found. Returns false when every edge is degenerate.
func FindClosestEdge(points []mgl64.Vec2) (Edge, bool) {
	closest := Edge{Distance: math.MaxFloat64}
	found := false

	for i := 0; i < len(points); i++ {
		j := i + 1
		if j == len(points) {
			j = 0
		}

		edge, ok := createEdgeOutward(points[i], points[j], j)
		if !ok {
			continue
		}

		if edge.Distance < closest.Distance {
			closest = edge
			found = true
		}
	}

	return closest, found
}
