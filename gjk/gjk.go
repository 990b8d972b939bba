// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D collision detection.
//
// GJK detects whether two convex polygons overlap by testing if their Minkowski difference
// contains the origin. The algorithm builds a simplex of Minkowski difference points
// incrementally; in the plane a triangle enclosing the origin proves the overlap.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"slices"
	"sync"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/internal/logger"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxIterations bounds the GJK loop. It only protects against degenerate geometry
// that would otherwise never terminate; it is not a retry budget.
const MaxIterations = 100

// InitialDirection is the first search direction. Any non-zero vector works.
var InitialDirection = mgl64.Vec2{1, 1}

// Outcome is the result of one GJK run
type Outcome uint8

const (
	// Separated means a separating axis was found
	Separated Outcome = iota
	// Overlapping means the simplex encloses the origin
	Overlapping
	// Exhausted means MaxIterations was reached without a decision.
	// Callers treat it as not overlapping.
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Separated:
		return "separated"
	case Overlapping:
		return "overlapping"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Simplex is an ordered set of points in the Minkowski difference space.
//
// During GJK it holds 0-3 points and only membership matters. EPA then treats it
// as a closed polygon where the order defines the edges.
type Simplex struct {
	Points []mgl64.Vec2
}

func (s *Simplex) Reset() {
	s.Points = s.Points[:0]
}

func (s *Simplex) Len() int {
	return len(s.Points)
}

// Push appends p as the most recent point
func (s *Simplex) Push(p mgl64.Vec2) {
	s.Points = append(s.Points, p)
}

// Last returns the most recent point
func (s *Simplex) Last() mgl64.Vec2 {
	return s.Points[len(s.Points)-1]
}

// RemoveAt drops the point at index i, keeping the order of the others.
// Removal goes by index, never by value, so coincident points stay unambiguous.
func (s *Simplex) RemoveAt(i int) {
	s.Points = slices.Delete(s.Points, i, i+1)
}

// Insert places p at index i, shifting the following points
func (s *Simplex) Insert(i int, p mgl64.Vec2) {
	s.Points = slices.Insert(s.Points, i, p)
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{Points: make([]mgl64.Vec2, 0, 8)}
	},
}

// Perp returns v rotated by a quarter turn: (-y, x)
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// Support computes a support point in the Minkowski difference (A - B).
//
// Returns:
//
//	furthestPoint(A, direction) - furthestPoint(B, -direction), both in world space
//
// The result always lies on the boundary of A - B, never inside it. Both GJK and
// EPA rely on that.
func Support(a, b *actor.Polygon, direction mgl64.Vec2) mgl64.Vec2 {
	supportA := a.WorldVertex(a.FurthestInDirection(direction))
	supportB := b.WorldVertex(b.FurthestInDirection(direction.Mul(-1)))
	return supportA.Sub(supportB)
}

// AreColliding reports whether a and b overlap. On overlap the returned simplex is
// the terminating triangle, to be passed unchanged to epa.FindPenetrationDistance.
func AreColliding(a, b *actor.Polygon) (bool, *Simplex) {
	simplex := &Simplex{Points: make([]mgl64.Vec2, 0, 3)}
	return GJK(a, b, simplex) == Overlapping, simplex
}

// GJK runs the overlap test between two convex polygons.
//
// Algorithm overview:
//  1. Take a support point along InitialDirection, then search the opposite way
//  2. Get a new support point in the search direction
//  3. If it does not pass the origin, a separating axis exists → Separated
//  4. Otherwise add it and let ContainsOrigin refine the simplex and direction
//  5. Repeat until the origin is enclosed or MaxIterations is reached
//
// The simplex must be empty on entry and is modified in place. On Overlapping it
// holds exactly the 3 points of the triangle enclosing the origin.
func GJK(a, b *actor.Polygon, simplex *Simplex) Outcome {
	direction := InitialDirection

	simplex.Push(Support(a, b, direction))
	direction = direction.Mul(-1)

	for i := 0; i < MaxIterations; i++ {
		newPoint := Support(a, b, direction)

		// The furthest point along direction does not reach the origin:
		// direction is a separating axis.
		if newPoint.Dot(direction) < 0 {
			return Separated
		}

		simplex.Push(newPoint)

		if ContainsOrigin(simplex, &direction) {
			return Overlapping
		}
	}

	logger.Get().Debug("gjk: iteration cap reached",
		"iterations", MaxIterations,
		"simplex", simplex.Len(),
	)
	return Exhausted
}

// ContainsOrigin tests if the simplex encloses the origin, and otherwise reduces it
// and updates the search direction for the next support point.
//
// Behavior by simplex size (a is always the most recent point):
//   - 2 points: direction becomes the perpendicular of ab facing the origin
//   - 3 points: keep the edge whose outer side holds the origin, or report the
//     triangle as enclosing it
//
// Returns true only for a triangle containing the origin.
func ContainsOrigin(simplex *Simplex, direction *mgl64.Vec2) bool {
	switch simplex.Len() {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	}
	return false
}

// line handles the 2 points simplex [b, a]. A segment never encloses the origin.
func line(simplex *Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[1]
	b := simplex.Points[0]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	abPerp := Perp(ab)
	if abPerp.Dot(ao) < 0 {
		abPerp = abPerp.Mul(-1)
	}

	*direction = abPerp
	return false
}

// triangle handles the 3 points simplex [b, c, a].
//
// The origin already lies past bc (that is where a was searched for), so only the
// regions beyond ab and ac remain to be tested.
func triangle(simplex *Simplex, direction *mgl64.Vec2) bool {
	a := simplex.Points[2] // Most recent point
	b := simplex.Points[0]
	c := simplex.Points[1]

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	// Region AB: perpendicular to ab, facing away from c. Measured from a rather
	// than from the origin; both agree on every triangle this loop builds.
	abPerp := Perp(ab)
	if abPerp.Dot(ac) >= 0 {
		abPerp = abPerp.Mul(-1)
	}

	if abPerp.Dot(ao) > 0 {
		simplex.RemoveAt(1) // c
		*direction = abPerp
		return false
	}

	// Region AC: perpendicular to ac, facing away from b
	acPerp := Perp(ac)
	if acPerp.Dot(ab) >= 0 {
		acPerp = acPerp.Mul(-1)
	}

	if acPerp.Dot(ao) <= 0 {
		// Neither beyond ab nor beyond ac: the origin is inside
		return true
	}

	simplex.RemoveAt(0) // b
	*direction = acPerp
	return false
}
