package painter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
)

// robot paints color and turns the same way, count times.
func robot(color, turn, count int64) cpu.Program {
	return cpu.Program{
		3, 100,                // in 100
		104, color,            // out #color
		104, turn,             // out #turn
		1001, 101, 1, 101,     // add 101 #1 101
		1007, 101, count, 102, // lt 101 #count 102
		1005, 102, 0,          // jt 102 #0
		99,
	}
}

func TestPoint(t *testing.T) {
	assert := assert.New(t)

	up := Point{X: 0, Y: -1}
	assert.Equal(Point{X: -1, Y: 0}, up.Left())
	assert.Equal(Point{X: 1, Y: 0}, up.Right())
	assert.Equal(up, up.Left().Left().Left().Left())
	assert.Equal(up.Left(), up.Right().Right().Right())
	assert.Equal(Point{X: 3, Y: -4}, Point{X: 1, Y: -1}.Add(Point{X: 2, Y: -3}))
}

func TestPaint(t *testing.T) {
	assert := assert.New(t)

	hull, err := Paint(robot(WHITE, TURN_LEFT, 4), BLACK)
	assert.NoError(err)
	assert.Equal(Hull{
		{X: 0, Y: 0}:  WHITE,
		{X: -1, Y: 0}: WHITE,
		{X: -1, Y: 1}: WHITE,
		{X: 0, Y: 1}:  WHITE,
	}, hull)
	assert.Equal("##\n##\n", hull.String())

	hull, err = Paint(robot(WHITE, TURN_RIGHT, 2), WHITE)
	assert.NoError(err)
	assert.Equal(Hull{
		{X: 0, Y: 0}: WHITE,
		{X: 1, Y: 0}: WHITE,
	}, hull)
	assert.Equal("##\n", hull.String())

	lo, hi := hull.Bounds()
	assert.Equal(Point{X: 0, Y: 0}, lo)
	assert.Equal(Point{X: 1, Y: 0}, hi)
}

func TestPaint_Camera(t *testing.T) {
	assert := assert.New(t)

	// Paints the opposite of what it sees, turning right, then halts
	// after returning to the start.
	invert := cpu.Program{
		3, 100,            // in 100
		1008, 100, 0, 100, // eq 100 #0 100
		4, 100,            // out 100
		104, 1,            // out #1
		1001, 101, 1, 101, // add 101 #1 101
		1007, 101, 4, 102, // lt 101 #4 102
		1005, 102, 0,      // jt 102 #0
		99,
	}

	hull, err := Paint(invert, WHITE)
	assert.NoError(err)
	assert.Len(hull, 4)
	assert.Equal(BLACK, hull[Point{X: 0, Y: 0}])
	assert.Equal(WHITE, hull[Point{X: 1, Y: 0}])
	assert.Equal(WHITE, hull[Point{X: 1, Y: 1}])
	assert.Equal(WHITE, hull[Point{X: 0, Y: 1}])
	assert.Equal(" #\n##\n", hull.String())
}

func TestPaint_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Paint(cpu.Program{3, 100, 104, 1, 99}, BLACK)
	assert.ErrorIs(err, ErrNoTurn)

	_, err = Paint(robot(WHITE, 2, 1), BLACK)
	assert.Equal(ErrTurnInvalid(2), err)

	_, err = Paint(cpu.Program{3, 100, 42}, BLACK)
	assert.ErrorIs(err, cpu.ErrUnknownOpcode)

	hull, err := Paint(cpu.Program{99}, BLACK)
	assert.NoError(err)
	assert.Empty(hull)
	assert.Equal("", hull.String())
}
