package scenario

import (
	"fmt"
	"io"
	"math"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// DemoScene builds the reference scene: a static quad placed at (300,300) and
// a 50x80 movable rectangle at the origin.
func DemoScene(workers int) (world *feather2d.World, static, movable *actor.Body) {
	static = actor.NewBody(
		actor.NewPolygon(
			actor.Transform{Position: mgl64.Vec2{300, 300}},
			mgl64.Vec2{0, 0},
			mgl64.Vec2{200, -40},
			mgl64.Vec2{200, 180},
			mgl64.Vec2{0, 120},
		),
		actor.BodyTypeStatic,
	)
	static.Id = "static"

	movable = actor.NewBody(actor.NewRectangle(mgl64.Vec2{}, 50, 80), actor.BodyTypeDynamic)
	movable.Id = "movable"

	world = feather2d.NewWorld(workers)
	world.AddBody(static)
	world.AddBody(movable)

	return world, static, movable
}

// Record is the state of the movable body at the end of a frame
type Record struct {
	Frame    int
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	// Colliding is true when the movable body overlapped another body this frame,
	// even if no correction could be computed for it
	Colliding bool
	// Correction is the displacement collision resolution applied to the movable body
	Correction mgl64.Vec2
}

func (r Record) String() string {
	return fmt.Sprintf("frame=%d pos=(%s) vel=(%s) colliding=%t correction=(%s)",
		r.Frame, formatVec(r.Position), formatVec(r.Velocity), r.Colliding, formatVec(r.Correction))
}

// Replay steps world once per frame, calling fn with the record of each frame.
// It stops at the first error fn returns.
func Replay(world *feather2d.World, static, movable *actor.Body, frames []Frame, fn func(Record) error) error {
	for i, frame := range frames {
		contacts := world.Step(feather2d.Inputs{
			movable: frame.Movable,
			static:  frame.Static,
		})

		record := Record{
			Frame:    i + 1,
			Position: movable.Position(),
			Velocity: movable.Velocity,
		}
		for _, c := range contacts {
			if correction, ok := correctionOf(c, movable); ok {
				record.Colliding = true
				record.Correction = record.Correction.Add(correction)
			}
		}

		if err := fn(record); err != nil {
			return err
		}
	}

	return nil
}

// Run replays frames and writes one line per frame to w
func Run(world *feather2d.World, static, movable *actor.Body, frames []Frame, w io.Writer) error {
	return Replay(world, static, movable, frames, func(r Record) error {
		_, err := fmt.Fprintln(w, r.String())
		return err
	})
}

// correctionOf returns the part of c's displacement applied to body
func correctionOf(c *constraint.ContactConstraint, body *actor.Body) (mgl64.Vec2, bool) {
	shareA, shareB := constraint.ComputeShares(c.BodyA, c.BodyB)

	switch body {
	case c.BodyA:
		return c.Displacement.Mul(-shareA), true
	case c.BodyB:
		return c.Displacement.Mul(shareB), true
	}
	return mgl64.Vec2{}, false
}

func formatVec(v mgl64.Vec2) string {
	return formatFloat(v.X()) + "," + formatFloat(v.Y())
}

// formatFloat prints two decimals, without the sign of values rounding to zero
func formatFloat(f float64) string {
	if math.Abs(f) < 0.005 {
		f = 0
	}
	return fmt.Sprintf("%.2f", f)
}
