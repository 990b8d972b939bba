// Package scenario replays scripted controls against a two-body world and
// reports what happened on every frame.
//
// A script is a comma separated list of tokens KEYS[*COUNT]. Each token holds
// the keys pressed during COUNT frames (1 when omitted):
//
//	L R U D   steer the movable body left, right, up, down
//	I         rotate the movable body
//	O         rotate the static body
//	.         no key pressed
//
// For instance "R*10,RD*5,.*3,O*20".
package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/akmonengine/feather2d/actor"
)

var ErrInvalidScript = errors.New("scenario: invalid script")

// Frame is the input of a single tick
type Frame struct {
	Movable actor.Controls
	Static  actor.Controls
}

// Parse turns a script into one Frame per tick. An empty script has no frames.
func Parse(script string) ([]Frame, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var frames []Frame
	for i, token := range strings.Split(script, ",") {
		frame, count, err := parseToken(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q: %v", ErrInvalidScript, i+1, token, err)
		}

		for n := 0; n < count; n++ {
			frames = append(frames, frame)
		}
	}

	return frames, nil
}

func parseToken(token string) (Frame, int, error) {
	keys, repeat, hasCount := strings.Cut(token, "*")

	count := 1
	if hasCount {
		n, err := strconv.Atoi(repeat)
		if err != nil {
			return Frame{}, 0, fmt.Errorf("count %q is not a number", repeat)
		}
		if n < 1 {
			return Frame{}, 0, fmt.Errorf("count %d must be positive", n)
		}
		count = n
	}

	if keys == "" {
		return Frame{}, 0, errors.New("no keys")
	}

	var frame Frame
	for _, key := range keys {
		switch key {
		case 'L':
			frame.Movable.Left = true
		case 'R':
			frame.Movable.Right = true
		case 'U':
			frame.Movable.Up = true
		case 'D':
			frame.Movable.Down = true
		case 'I':
			frame.Movable.Rotate = true
		case 'O':
			frame.Static.Rotate = true
		case '.':
			if len(keys) > 1 {
				return Frame{}, 0, errors.New("'.' cannot be combined with other keys")
			}
		default:
			return Frame{}, 0, fmt.Errorf("unknown key %q", key)
		}
	}

	return frame, count, nil
}
