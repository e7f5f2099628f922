// Package arcade runs an Intcode arcade cabinet.
//
// The game outputs triples of words: x, y and a tile. The triple with
// x = -1 and y = 0 carries the score instead of a tile. The game reads the
// joystick position (-1 left, 0 neutral, 1 right) whenever it waits for
// input.
package arcade

import (
	"maps"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/cpu"
)

// Tile is a single screen cell.
type Tile int64

const (
	TILE_EMPTY  = Tile(0)
	TILE_WALL   = Tile(1)
	TILE_BLOCK  = Tile(2)
	TILE_PADDLE = Tile(3)
	TILE_BALL   = Tile(4)
)

const (
	JOYSTICK_LEFT    = int64(-1)
	JOYSTICK_NEUTRAL = int64(0)
	JOYSTICK_RIGHT   = int64(1)
)

const (
	FREE_PLAY     = int64(2) // Quarters value for free play.
	HISTORY_LIMIT = 100      // Maximum number of saved snapshots.
)

// Point is a screen position.
type Point struct {
	X, Y int64
}

// scorePoint is the position that carries the score.
var scorePoint = Point{X: -1, Y: 0}

// snapshot is a saved cabinet state.
type snapshot struct {
	cpu    *cpu.Cpu
	tiles  map[Point]Tile
	score  int64
	width  int64
	height int64
	keys   []int64
}

// Cabinet is an arcade cabinet: the game CPU and its screen.
type Cabinet struct {
	Verbose bool           // If set, logs every joystick move.
	Cpu     *cpu.Cpu       // Game CPU.
	Tiles   map[Point]Tile // Screen contents.
	Score   int64          // Last reported score.
	Width   int64          // Screen width, in tiles.
	Height  int64          // Screen height, in tiles.
	Keys    []int64        // Every joystick position sent to the game.

	history []snapshot
}

// NewCabinet creates a cabinet running program. In free play the quarters
// cell at address 0 is set, so the game runs without coins.
func NewCabinet(program cpu.Program, freePlay bool) (cab *Cabinet) {
	cab = &Cabinet{
		Cpu:   cpu.NewCpu(program),
		Tiles: map[Point]Tile{},
	}

	if freePlay {
		// Address zero is never invalid.
		_ = cab.Cpu.SetMemory(0, FREE_PLAY)
	}

	return
}

// Update runs the game until it waits for the joystick or halts, then
// applies its output to the screen.
func (cab *Cabinet) Update() (result cpu.StepResult, err error) {
	result, err = cab.Cpu.Run()
	if err != nil {
		return
	}

	output := cab.Cpu.OutputDrain()
	if len(output)%3 != 0 {
		err = ErrOutputPartial
		return
	}

	for n := 0; n < len(output); n += 3 {
		pt := Point{X: output[n], Y: output[n+1]}
		if pt == scorePoint {
			cab.Score = output[n+2]
			continue
		}
		cab.Tiles[pt] = Tile(output[n+2])
		cab.Width = max(cab.Width, pt.X+1)
		cab.Height = max(cab.Height, pt.Y+1)
	}

	return
}

// Done returns true once the game has halted.
func (cab *Cabinet) Done() bool {
	return cab.Cpu.IsTerminated()
}

// Blocks returns the number of block tiles on the screen.
func (cab *Cabinet) Blocks() (count int) {
	for _, tile := range cab.Tiles {
		if tile == TILE_BLOCK {
			count++
		}
	}

	return
}

func (cab *Cabinet) find(tile Tile) (pt Point, ok bool) {
	for pt, here := range cab.Tiles {
		if here == tile {
			return pt, true
		}
	}

	return
}

// Ball returns the position of the ball.
func (cab *Cabinet) Ball() (Point, bool) {
	return cab.find(TILE_BALL)
}

// Paddle returns the position of the paddle.
func (cab *Cabinet) Paddle() (Point, bool) {
	return cab.find(TILE_PADDLE)
}

// WillEnd returns true if the ball has reached the bottom row.
func (cab *Cabinet) WillEnd() bool {
	ball, ok := cab.Ball()
	return ok && ball.Y == cab.Height-1
}

// Joystick sends a joystick position to the game.
func (cab *Cabinet) Joystick(position int64) {
	if cab.Verbose {
		logrus.WithFields(logrus.Fields{"score": cab.Score, "blocks": cab.Blocks()}).Debugf("joystick %d", position)
	}

	cab.Cpu.PushInput(position)
	cab.Keys = append(cab.Keys, position)
}

// Save snapshots the cabinet. Only the most recent HISTORY_LIMIT snapshots
// are kept.
func (cab *Cabinet) Save() {
	cab.history = append(cab.history, snapshot{
		cpu:    cab.Cpu.Clone(),
		tiles:  maps.Clone(cab.Tiles),
		score:  cab.Score,
		width:  cab.Width,
		height: cab.Height,
		keys:   slices.Clone(cab.Keys),
	})

	if len(cab.history) > HISTORY_LIMIT {
		cab.history = slices.Delete(cab.history, 0, len(cab.history)-HISTORY_LIMIT)
	}
}

// Rewind restores the most recent snapshot, returning false if there is none.
func (cab *Cabinet) Rewind() (ok bool) {
	if len(cab.history) == 0 {
		return
	}

	last := len(cab.history) - 1
	snap := cab.history[last]
	cab.history = cab.history[:last]

	cab.Cpu = snap.cpu
	cab.Tiles = snap.tiles
	cab.Score = snap.score
	cab.Width = snap.width
	cab.Height = snap.height
	cab.Keys = snap.keys

	return true
}

// History returns the number of saved snapshots.
func (cab *Cabinet) History() int {
	return len(cab.history)
}

// AutoPlay plays the game to the end, keeping the paddle under the ball.
func (cab *Cabinet) AutoPlay() (score int64, err error) {
	for {
		var result cpu.StepResult
		result, err = cab.Update()
		if err != nil {
			return
		}
		if result == cpu.STEP_HALTED {
			break
		}

		position := JOYSTICK_NEUTRAL
		ball, has_ball := cab.Ball()
		paddle, has_paddle := cab.Paddle()
		if has_ball && has_paddle {
			switch {
			case ball.X < paddle.X:
				position = JOYSTICK_LEFT
			case ball.X > paddle.X:
				position = JOYSTICK_RIGHT
			}
		}
		cab.Joystick(position)
	}

	score = cab.Score
	return
}

// Replay plays the game to the end using recorded joystick positions.
func (cab *Cabinet) Replay(keys []int64) (score int64, err error) {
	for {
		var result cpu.StepResult
		result, err = cab.Update()
		if err != nil {
			return
		}
		if result == cpu.STEP_HALTED {
			break
		}

		if len(keys) == 0 {
			err = ErrKeysExhausted
			return
		}
		cab.Joystick(keys[0])
		keys = keys[1:]
	}

	score = cab.Score
	return
}
