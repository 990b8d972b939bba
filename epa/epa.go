// Package epa implements the Expanding Polytope Algorithm for computing 2D penetration depth.
//
// EPA is run after GJK detects a collision to determine:
//   - Penetration depth (how far shapes overlap)
//   - Contact normal (direction to separate shapes)
//   - Contact points (where shapes touch), see GenerateManifold
//
// The algorithm expands a polygon (starting from GJK's terminating triangle) toward the
// boundary of the Minkowski difference, until the edge closest to the origin lies on that
// boundary. That edge gives the Minimum Translation Vector (MTV) separating the shapes.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/internal/logger"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits polytope expansion to prevent infinite loops on
	// degenerate geometry. Reaching it is not a normal outcome.
	MaxIterations = 100

	// ConvergenceTolerance defines when EPA has converged: the support point found
	// along the closest edge normal is no further than this from the edge itself.
	ConvergenceTolerance = 0.01

	// SeparationOvershoot is added to the depth of the returned vector so that
	// applying it leaves the shapes separated instead of exactly touching.
	SeparationOvershoot = 0.01

	// DegenerateEdgeLength is the normal length under which an edge is ignored
	DegenerateEdgeLength = 1e-12
)

var (
	// ErrNotConverged is returned when MaxIterations is reached
	ErrNotConverged = errors.New("epa: failed to converge")
	// ErrDegenerateSimplex is returned when the simplex cannot form a polygon
	ErrDegenerateSimplex = errors.New("epa: degenerate simplex")
)

// Penetration describes how deep B sits inside A
type Penetration struct {
	// Normal is the unit normal of the Minkowski difference A - B boundary.
	// Moving B along it separates the shapes.
	Normal mgl64.Vec2
	// Depth is the distance from the origin to the boundary along Normal
	Depth float64
	// Vector is Normal scaled by Depth plus SeparationOvershoot
	Vector mgl64.Vec2
	// Iterations is the number of expansion steps it took
	Iterations int
}

// EPA computes the penetration of two overlapping convex polygons.
//
// Algorithm overview:
//  1. Start with the GJK terminating triangle (which encloses the origin)
//  2. Find the edge closest to the origin
//  3. Get the support point along that edge normal
//  4. If the support point lies on the edge → converged
//  5. Otherwise insert the point between the edge vertices, and repeat from 2
//
// Preconditions: a and b overlap and simplex is exactly the simplex GJK returned
// for them. Violating them is not detected. The simplex is expanded in place.
//
// Returns ErrNotConverged when MaxIterations is reached, ErrDegenerateSimplex when
// the simplex has fewer than 3 points or only zero-length edges.
func EPA(a, b *actor.Polygon, simplex *gjk.Simplex) (Penetration, error) {
	if simplex.Len() < 3 {
		return Penetration{}, fmt.Errorf("%w: %d points", ErrDegenerateSimplex, simplex.Len())
	}

	polytope := NewPolytope(simplex)

	for i := 0; i < MaxIterations; i++ {
		edge, ok := polytope.ClosestEdge()
		if !ok {
			logger.Get().Debug("epa: no usable edge", "points", polytope.Len())
			return Penetration{}, fmt.Errorf("%w: every edge has zero length", ErrDegenerateSimplex)
		}

		support := gjk.Support(a, b, edge.Normal)
		distance := support.Dot(edge.Normal)

		// The boundary of the Minkowski difference has been reached
		if math.Abs(distance-edge.Distance) < ConvergenceTolerance {
			return Penetration{
				Normal:     edge.Normal,
				Depth:      distance,
				Vector:     edge.Normal.Mul(distance + SeparationOvershoot),
				Iterations: i + 1,
			}, nil
		}

		polytope.Expand(edge, support)
	}

	logger.Get().Debug("epa: iteration cap reached",
		"iterations", MaxIterations,
		"points", polytope.Len(),
	)
	return Penetration{}, fmt.Errorf("%w after %d iterations", ErrNotConverged, MaxIterations)
}

// FindPenetrationDistance returns the displacement that moves b out of a.
//
// It must only be called with the simplex gjk.AreColliding returned for the same
// shapes. When EPA cannot produce an answer the zero vector is returned, meaning
// no correction this tick.
func FindPenetrationDistance(a, b *actor.Polygon, simplex *gjk.Simplex) mgl64.Vec2 {
	penetration, err := EPA(a, b, simplex)
	if err != nil {
		return mgl64.Vec2{}
	}
	return penetration.Vector
}
