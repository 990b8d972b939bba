package scenario

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// boxScene is a 10x10 static box at the origin and a 10x10 movable box at start
func boxScene(start mgl64.Vec2) (*feather2d.World, *actor.Body, *actor.Body) {
	static := actor.NewBody(actor.NewRectangle(mgl64.Vec2{}, 10, 10), actor.BodyTypeStatic)
	movable := actor.NewBody(actor.NewRectangle(start, 10, 10), actor.BodyTypeDynamic)

	world := feather2d.NewWorld(1)
	world.AddBody(static)
	world.AddBody(movable)
	return world, static, movable
}

var expectedPushOut = `frame=1 pos=(19.00,0.00) vel=(-1.00,0.00) colliding=false correction=(0.00,0.00)
frame=2 pos=(15.00,0.00) vel=(-4.00,0.00) colliding=false correction=(0.00,0.00)
frame=3 pos=(11.00,0.00) vel=(-4.00,0.00) colliding=false correction=(0.00,0.00)
frame=4 pos=(10.01,0.00) vel=(-4.00,0.00) colliding=true correction=(3.01,0.00)
frame=5 pos=(10.01,0.00) vel=(-4.00,0.00) colliding=true correction=(4.00,0.00)
frame=6 pos=(10.01,0.00) vel=(-4.00,0.00) colliding=true correction=(4.00,0.00)
`

var expectedDamping = `frame=1 pos=(21.00,0.00) vel=(1.00,0.00) colliding=false correction=(0.00,0.00)
frame=2 pos=(25.00,0.00) vel=(4.00,0.00) colliding=false correction=(0.00,0.00)
frame=3 pos=(25.80,0.00) vel=(0.80,0.00) colliding=false correction=(0.00,0.00)
frame=4 pos=(25.96,0.00) vel=(0.16,0.00) colliding=false correction=(0.00,0.00)
frame=5 pos=(25.99,0.00) vel=(0.03,0.00) colliding=false correction=(0.00,0.00)
`

func TestRun_Golden(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected string
	}{
		{"push out", "L*6", expectedPushOut},
		{"damping", "R*2,.*3", expectedDamping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Parse(tt.script)
			require.NoError(t, err)

			world, static, movable := boxScene(mgl64.Vec2{20, 0})

			var out bytes.Buffer
			require.NoError(t, Run(world, static, movable, frames, &out))

			if out.String() != tt.expected {
				diff := difflib.UnifiedDiff{
					A:        difflib.SplitLines(tt.expected),
					B:        difflib.SplitLines(out.String()),
					FromFile: "Expected",
					ToFile:   "Current",
					Context:  0,
				}
				text, _ := difflib.GetUnifiedDiffString(diff)
				t.Fatalf("trace mismatch: \n%s", text)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected []Frame
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single key", "L", []Frame{{Movable: actor.Controls{Left: true}}}},
		{"idle", ".*2", []Frame{{}, {}}},
		{
			name:   "combined keys",
			script: "RD*2",
			expected: []Frame{
				{Movable: actor.Controls{Right: true, Down: true}},
				{Movable: actor.Controls{Right: true, Down: true}},
			},
		},
		{
			name:   "rotations",
			script: "I,O,IO",
			expected: []Frame{
				{Movable: actor.Controls{Rotate: true}},
				{Static: actor.Controls{Rotate: true}},
				{Movable: actor.Controls{Rotate: true}, Static: actor.Controls{Rotate: true}},
			},
		},
		{
			name:   "spaces around tokens",
			script: " U , L*1 ",
			expected: []Frame{
				{Movable: actor.Controls{Up: true}},
				{Movable: actor.Controls{Left: true}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Parse(tt.script)
			require.NoError(t, err)
			require.Equal(t, tt.expected, frames)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"unknown key", "X"},
		{"lowercase key", "l"},
		{"empty token", "L,,R"},
		{"missing keys", "*3"},
		{"zero count", "L*0"},
		{"negative count", "L*-2"},
		{"not a number", "L*two"},
		{"idle combined", ".L"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames, err := Parse(tt.script)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidScript), "expected ErrInvalidScript, got %v", err)
			require.Nil(t, frames)
		})
	}
}

func TestDemoScene(t *testing.T) {
	world, static, movable := DemoScene(2)

	require.Len(t, world.Bodies, 2)
	require.Equal(t, actor.BodyTypeStatic, static.BodyType)
	require.Equal(t, actor.BodyTypeDynamic, movable.BodyType)
	require.Equal(t, mgl64.Vec2{300, 300}, static.Position())
	require.Equal(t, mgl64.Vec2{}, movable.Position())
	require.True(t, static.Shape.IsConvex())
	require.True(t, movable.Shape.IsConvex())
}

func TestReplay_DemoSceneNeverOverlaps(t *testing.T) {
	frames, err := Parse("RD*120,O*20,I*20,LU*10,RD*40")
	require.NoError(t, err)

	world, static, movable := DemoScene(2)

	collided := 0
	err = Replay(world, static, movable, frames, func(r Record) error {
		if r.Colliding {
			collided++
		}

		overlapping, _ := gjk.AreColliding(static.Shape, movable.Shape)
		require.False(t, overlapping, "frame %d: shapes still overlap at %v", r.Frame, r.Position)
		return nil
	})
	require.NoError(t, err)
	require.Positive(t, collided, "expected the movable body to reach the static one")
	require.Equal(t, mgl64.Vec2{300, 300}, static.Position())
}

func TestReplay_OverlapWithoutCorrection(t *testing.T) {
	// A 4000 sided polygon is too fine for the penetration search to converge
	vertices := make([]mgl64.Vec2, 4000)
	for i := range vertices {
		angle := 2 * math.Pi * float64(i) / float64(len(vertices))
		vertices[i] = mgl64.Vec2{1e6 * math.Cos(angle), 1e6 * math.Sin(angle)}
	}
	static := actor.NewBody(actor.NewPolygon(actor.NewTransform(), vertices...), actor.BodyTypeStatic)
	movable := actor.NewBody(
		actor.NewPolygon(actor.Transform{Position: mgl64.Vec2{10, 0}}, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}),
		actor.BodyTypeDynamic,
	)

	world := feather2d.NewWorld(1)
	world.AddBody(static)
	world.AddBody(movable)

	var records []Record
	err := Replay(world, static, movable, []Frame{{}}, func(r Record) error {
		records = append(records, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.True(t, records[0].Colliding)
	require.Equal(t, mgl64.Vec2{}, records[0].Correction)
	require.Equal(t, mgl64.Vec2{10, 0}, records[0].Position)
	require.Equal(t, "frame=1 pos=(10.00,0.00) vel=(0.00,0.00) colliding=true correction=(0.00,0.00)", records[0].String())
}

func TestReplay_StopsOnError(t *testing.T) {
	frames, err := Parse(".*10")
	require.NoError(t, err)

	world, static, movable := boxScene(mgl64.Vec2{20, 0})

	stop := errors.New("stop")
	calls := 0
	err = Replay(world, static, movable, frames, func(r Record) error {
		calls++
		if r.Frame == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, calls)
}

func TestRun_OneLinePerFrame(t *testing.T) {
	frames, err := Parse("RD*15,.*5")
	require.NoError(t, err)

	world, static, movable := DemoScene(1)

	var out bytes.Buffer
	require.NoError(t, Run(world, static, movable, frames, &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, len(frames))
	require.True(t, strings.HasPrefix(lines[0], "frame=1 "))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0.00"},
		{-0.0001, "0.00"},
		{1.005e-17, "0.00"},
		{-4, "-4.00"},
		{10.01, "10.01"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, formatFloat(tt.in))
	}
}
