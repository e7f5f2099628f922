package arcade

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ezrec/intcode/cpu"
)

var tileStyle = map[Tile]tcell.Style{
	TILE_EMPTY:  tcell.StyleDefault,
	TILE_WALL:   tcell.StyleDefault.Background(tcell.ColorBlack),
	TILE_BLOCK:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed),
	TILE_PADDLE: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGreen),
	TILE_BALL:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true),
}

var tileRune = map[Tile]rune{
	TILE_EMPTY:  ' ',
	TILE_WALL:   '#',
	TILE_BLOCK:  'B',
	TILE_PADDLE: 'P',
	TILE_BALL:   'O',
}

// Rune returns the character drawn for the tile.
func (tile Tile) Rune() rune {
	r, ok := tileRune[tile]
	if !ok {
		return '?'
	}
	return r
}

// Style returns the style the tile is drawn with.
func (tile Tile) Style() tcell.Style {
	return tileStyle[tile]
}

// Draw renders the score on the top line, and the tiles below it.
func (cab *Cabinet) Draw(screen tcell.Screen) {
	screen.Clear()

	for x, r := range fmt.Sprintf("Score: %d", cab.Score) {
		screen.SetContent(x, 0, r, nil, tcell.StyleDefault)
	}

	for pt, tile := range cab.Tiles {
		if pt.X < 0 || pt.Y < 0 {
			continue
		}
		screen.SetContent(int(pt.X), int(pt.Y)+1, tile.Rune(), nil, tile.Style())
	}

	screen.Show()
}

// key waits for the next key press, returning false if the screen is gone.
func key(screen tcell.Screen) (ev *tcell.EventKey, ok bool) {
	for {
		switch event := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			return event, true
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

// rescue undoes the last move, returning false if there is no earlier move.
func (cab *Cabinet) rescue() bool {
	if cab.History() < 2 {
		return false
	}

	cab.Rewind()
	cab.Rewind()
	return true
}

// Play runs the game interactively. 'a' or left moves the joystick left,
// 'd' or right moves it right, 's' or any other key leaves it neutral,
// 'w' undoes the last move, and 'q' or escape quits. A ball about to be
// lost is rescued by undoing the last move.
func (cab *Cabinet) Play(screen tcell.Screen) (score int64, err error) {
	defer func() {
		score = cab.Score
	}()

	for {
		cab.Save()

		var result cpu.StepResult
		result, err = cab.Update()
		if err != nil {
			return
		}

		if result != cpu.STEP_HALTED && cab.WillEnd() && cab.rescue() {
			continue
		}

		cab.Draw(screen)

		if result == cpu.STEP_HALTED {
			return
		}

		ev, ok := key(screen)
		if !ok {
			return
		}

		position := JOYSTICK_NEUTRAL
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
			return
		case ev.Key() == tcell.KeyLeft, ev.Rune() == 'a':
			position = JOYSTICK_LEFT
		case ev.Key() == tcell.KeyRight, ev.Rune() == 'd':
			position = JOYSTICK_RIGHT
		case ev.Rune() == 'w':
			if !cab.rescue() {
				cab.Rewind()
			}
			continue
		}

		cab.Joystick(position)
	}
}
