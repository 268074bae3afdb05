// Package touch lays out the on-screen button strip used on phones and turns
// touches on it into game commands. It knows nothing about the windowing
// library; callers pass touch positions in logical screen pixels.
package touch

import (
	"image"

	"github.com/kyleparisi/ai-playground/tower/internal/game"
)

// Height of the button strip at the bottom of the screen.
const Height = 160

type Button struct {
	Label string
	Cmd   game.Command
}

// Buttons are laid out left to right, equal widths.
var Buttons = [...]Button{
	{"Left", game.CommandLeft},
	{"Right", game.CommandRight},
	{"Rotate", game.CommandRotate},
	{"Drop", game.CommandHardDrop},
}

// Pad is the button strip of a W x H logical screen.
type Pad struct {
	W, H int
}

// Rect is the area of button i.
func (p Pad) Rect(i int) image.Rectangle {
	bw := p.W / len(Buttons)
	return image.Rect(i*bw, p.H-Height, (i+1)*bw, p.H)
}

// ButtonAt returns the index of the button under pt.
func (p Pad) ButtonAt(pt image.Point) (int, bool) {
	for i := range Buttons {
		if pt.In(p.Rect(i)) {
			return i, true
		}
	}
	return 0, false
}

// Command picks this frame's command. A touch that just started on a button
// wins; otherwise a touch held on Left or Right soft drops.
func (p Pad) Command(started, held []image.Point) game.Command {
	for _, pt := range started {
		if i, ok := p.ButtonAt(pt); ok {
			return Buttons[i].Cmd
		}
	}
	for _, pt := range held {
		i, ok := p.ButtonAt(pt)
		if !ok {
			continue
		}
		if c := Buttons[i].Cmd; c == game.CommandLeft || c == game.CommandRight {
			return game.CommandSoftDrop
		}
	}
	return game.CommandNone
}
