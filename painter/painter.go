// Package painter runs an Intcode hull painting robot.
//
// The robot reads the colour of the panel under it (0 black, 1 white),
// then outputs the colour to paint and the direction to turn (0 left,
// 1 right) before moving forward one panel. The robot starts facing up on
// a hull whose panels are all black.
package painter

import (
	"errors"
	"strings"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

var f = translate.From

const (
	BLACK = int64(0)
	WHITE = int64(1)

	TURN_LEFT  = int64(0)
	TURN_RIGHT = int64(1)
)

var (
	ErrNoTurn = errors.New(f("colour output without a turn"))
)

// ErrTurnInvalid is an unknown turn direction.
type ErrTurnInvalid int64

func (err ErrTurnInvalid) Error() string {
	return f("turn %d invalid", int64(err))
}

// Point is a panel position. Y grows downwards.
type Point struct {
	X, Y int64
}

// Add returns the sum of two points.
func (pt Point) Add(other Point) Point {
	return Point{X: pt.X + other.X, Y: pt.Y + other.Y}
}

// Left returns the direction rotated a quarter turn anticlockwise.
func (pt Point) Left() Point {
	return Point{X: pt.Y, Y: -pt.X}
}

// Right returns the direction rotated a quarter turn clockwise.
func (pt Point) Right() Point {
	return Point{X: -pt.Y, Y: pt.X}
}

// Hull maps every painted panel to its colour.
type Hull map[Point]int64

// Paint runs the robot program over a hull whose starting panel is start,
// and returns every panel painted at least once.
func Paint(program cpu.Program, start int64) (hull Hull, err error) {
	hull = Hull{}
	robot := cpu.NewCpu(program, start)

	var position Point
	direction := Point{X: 0, Y: -1}

	for {
		var result cpu.StepResult
		result, err = robot.Run()
		if err != nil {
			return
		}

		for !robot.Output.Empty() {
			color, _ := robot.PopOutput()
			turn, ok := robot.PopOutput()
			if !ok {
				err = ErrNoTurn
				return
			}

			hull[position] = color

			switch turn {
			case TURN_LEFT:
				direction = direction.Left()
			case TURN_RIGHT:
				direction = direction.Right()
			default:
				err = ErrTurnInvalid(turn)
				return
			}
			position = position.Add(direction)
		}

		if result == cpu.STEP_HALTED {
			return
		}

		// The camera reports black for unpainted panels.
		robot.PushInput(hull[position])
	}
}

// Bounds returns the top left and bottom right corners of the painted area.
func (hull Hull) Bounds() (lo, hi Point) {
	first := true
	for pt := range hull {
		if first {
			lo, hi = pt, pt
			first = false
			continue
		}
		lo = Point{X: min(lo.X, pt.X), Y: min(lo.Y, pt.Y)}
		hi = Point{X: max(hi.X, pt.X), Y: max(hi.Y, pt.Y)}
	}

	return
}

// String renders the painted area, with '#' for white panels.
func (hull Hull) String() string {
	if len(hull) == 0 {
		return ""
	}

	lo, hi := hull.Bounds()

	var sb strings.Builder
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if hull[Point{X: x, Y: y}] == WHITE {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
