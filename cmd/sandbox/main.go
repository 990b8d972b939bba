// Command sandbox replays a control script against the demo scene and prints
// the movable body state after every frame.
//
//	sandbox -script "RD*70,O*20,L*10" -workers 2 -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/scenario"
	"github.com/go-gl/mathgl/mgl64"
)

const defaultScript = "RD*70,.*5,O*30,I*30,LU*10,R*20"

func main() {
	script := flag.String("script", defaultScript, "comma separated KEYS[*COUNT] tokens, keys in L R U D I O .")
	workers := flag.Int("workers", feather2d.DEFAULT_WORKERS, "narrow phase goroutines per stage")
	verbose := flag.Bool("v", false, "log GJK and EPA diagnostics to stderr")
	start := flag.String("start", "0,0", "start position x,y of the movable body")
	flag.Parse()

	if err := run(*script, *workers, *verbose, *start); err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run(script string, workers int, verbose bool, start string) error {
	if verbose {
		feather2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	position, err := parsePosition(start)
	if err != nil {
		return err
	}

	frames, err := scenario.Parse(script)
	if err != nil {
		return err
	}

	world, static, movable := scenario.DemoScene(workers)
	movable.Shape.Transform = actor.Transform{Position: position}

	feather2d.Logger().Info("replaying", "frames", len(frames), "workers", world.Workers, "start", position)

	return scenario.Run(world, static, movable, frames, os.Stdout)
}

func parsePosition(s string) (mgl64.Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return mgl64.Vec2{}, errors.New("start: expected x,y")
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return mgl64.Vec2{}, fmt.Errorf("start: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return mgl64.Vec2{}, fmt.Errorf("start: %w", err)
	}

	return mgl64.Vec2{x, y}, nil
}
