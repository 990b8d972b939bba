package epa

import (
	"math"
	"testing"

	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

func vec2ApproxEqual(a, b mgl64.Vec2, epsilon float64) bool {
	return math.Abs(a.X()-b.X()) < epsilon && math.Abs(a.Y()-b.Y()) < epsilon
}

func TestCreateEdgeOutward(t *testing.T) {
	tests := []struct {
		name     string
		a, b     mgl64.Vec2
		normal   mgl64.Vec2
		distance float64
	}{
		{"right of origin", mgl64.Vec2{5, -10}, mgl64.Vec2{5, 10}, mgl64.Vec2{1, 0}, 5},
		{"right of origin, reversed", mgl64.Vec2{5, 10}, mgl64.Vec2{5, -10}, mgl64.Vec2{1, 0}, 5},
		{"below origin", mgl64.Vec2{-3, -2}, mgl64.Vec2{4, -2}, mgl64.Vec2{0, -1}, 2},
		{"diagonal", mgl64.Vec2{2, 0}, mgl64.Vec2{0, 2}, mgl64.Vec2{math.Sqrt2 / 2, math.Sqrt2 / 2}, math.Sqrt2},
		// The origin on the edge line: the normal is only guaranteed to be unit length
		{"through origin", mgl64.Vec2{-1, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, ok := createEdgeOutward(tt.a, tt.b, 3)
			if !ok {
				t.Fatalf("expected a valid edge")
			}
			if edge.Index != 3 {
				t.Errorf("Index = %d, want 3", edge.Index)
			}
			if math.Abs(edge.Normal.Len()-1) > 1e-12 {
				t.Errorf("normal %v is not unit length", edge.Normal)
			}
			if !vec2ApproxEqual(edge.Normal, tt.normal, 1e-12) {
				t.Errorf("Normal = %v, want %v", edge.Normal, tt.normal)
			}
			if math.Abs(edge.Distance-tt.distance) > 1e-12 {
				t.Errorf("Distance = %v, want %v", edge.Distance, tt.distance)
			}
		})
	}
}

func TestCreateEdgeOutward_Degenerate(t *testing.T) {
	p := mgl64.Vec2{2, 3}
	if _, ok := createEdgeOutward(p, p, 0); ok {
		t.Errorf("expected a zero-length edge to be rejected")
	}
}

func TestFindClosestEdge(t *testing.T) {
	tests := []struct {
		name     string
		points   []mgl64.Vec2
		normal   mgl64.Vec2
		distance float64
		index    int
	}{
		{
			name:     "ties keep the first edge",
			points:   []mgl64.Vec2{{-1, -1}, {2, -1}, {2, 1}, {-1, 1}},
			normal:   mgl64.Vec2{0, -1},
			distance: 1,
			index:    1,
		},
		{
			name:     "closing edge inserts at 0",
			points:   []mgl64.Vec2{{1, 2}, {-5, 2}, {-5, -5}, {1, -5}},
			normal:   mgl64.Vec2{1, 0},
			distance: 1,
			index:    0,
		},
		{
			name:     "gjk terminating triangle",
			points:   []mgl64.Vec2{{5, 10}, {-15, -10}, {5, -10}},
			normal:   mgl64.Vec2{-math.Sqrt2 / 2, math.Sqrt2 / 2},
			distance: 5 * math.Sqrt2 / 2,
			index:    1,
		},
		{
			name:     "degenerate edge skipped",
			points:   []mgl64.Vec2{{3, -1}, {3, -1}, {3, 4}, {-4, 4}, {-4, -1}},
			normal:   mgl64.Vec2{0, -1},
			distance: 1,
			index:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, ok := FindClosestEdge(tt.points)
			if !ok {
				t.Fatalf("expected an edge")
			}
			if !vec2ApproxEqual(edge.Normal, tt.normal, 1e-9) {
				t.Errorf("Normal = %v, want %v", edge.Normal, tt.normal)
			}
			if math.Abs(edge.Distance-tt.distance) > 1e-9 {
				t.Errorf("Distance = %v, want %v", edge.Distance, tt.distance)
			}
			if edge.Index != tt.index {
				t.Errorf("Index = %d, want %d", edge.Index, tt.index)
			}
		})
	}
}

func TestFindClosestEdge_AllDegenerate(t *testing.T) {
	p := mgl64.Vec2{1, 1}
	if _, ok := FindClosestEdge([]mgl64.Vec2{p, p, p}); ok {
		t.Errorf("expected no usable edge")
	}
}

func TestPolytope_Expand(t *testing.T) {
	simplex := &gjk.Simplex{Points: []mgl64.Vec2{{5, 10}, {-15, -10}, {5, -10}}}
	polytope := NewPolytope(simplex)

	edge, ok := polytope.ClosestEdge()
	if !ok {
		t.Fatalf("expected an edge")
	}
	polytope.Expand(edge, mgl64.Vec2{-15, 10})

	expected := []mgl64.Vec2{{5, 10}, {-15, 10}, {-15, -10}, {5, -10}}
	if polytope.Len() != len(expected) {
		t.Fatalf("expected %d points, got %d", len(expected), polytope.Len())
	}
	for i, p := range expected {
		if polytope.Points()[i] != p {
			t.Errorf("point %d: got %v, want %v", i, polytope.Points()[i], p)
		}
	}

	// The polytope works on the caller's simplex
	if simplex.Len() != len(expected) {
		t.Errorf("expected the simplex to be expanded in place")
	}
}
