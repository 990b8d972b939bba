package epa

import (
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Polytope is the expanding polygon of EPA. It works directly on the GJK
// simplex: the terminating triangle is its initial shape and every expansion
// inserts into it, so the caller's simplex holds the final polytope afterwards.
type Polytope struct {
	simplex *gjk.Simplex
}

// NewPolytope wraps a GJK terminating simplex
func NewPolytope(simplex *gjk.Simplex) *Polytope {
	return &Polytope{simplex: simplex}
}

// Points returns the vertices in winding order
func (p *Polytope) Points() []mgl64.Vec2 {
	return p.simplex.Points
}

func (p *Polytope) Len() int {
	return p.simplex.Len()
}

// ClosestEdge returns the edge nearest to the origin, see FindClosestEdge
func (p *Polytope) ClosestEdge() (Edge, bool) {
	return FindClosestEdge(p.simplex.Points)
}

// Expand inserts a support point found beyond edge. Inserting at edge.Index puts
// the point between the edge's two vertices, which preserves the winding.
func (p *Polytope) Expand(edge Edge, support mgl64.Vec2) {
	p.simplex.Insert(edge.Index, support)
}
