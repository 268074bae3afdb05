// Package screen is the Ebitengine frontend: it turns key presses and, on
// phones, touches into game commands and draws the loop's snapshots.
package screen

import (
	"fmt"
	"image"
	"image/color"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/kyleparisi/ai-playground/tower/internal/game"
	"github.com/kyleparisi/ai-playground/tower/internal/grid"
	"github.com/kyleparisi/ai-playground/tower/internal/tetromino"
	"github.com/kyleparisi/ai-playground/tower/internal/touch"
)

const (
	LogicalW = 480
	LogicalH = 640
)

var (
	bgColor    = color.RGBA{18, 18, 24, 255}
	gridColor  = color.RGBA{40, 40, 55, 255}
	emptyColor = color.RGBA{30, 30, 44, 255}

	palette = map[tetromino.Color]color.RGBA{
		tetromino.ColorOrange: {255, 140, 0, 255},
		tetromino.ColorBlue:   {0, 80, 220, 255},
		tetromino.ColorRed:    {220, 0, 0, 255},
		tetromino.ColorGreen:  {0, 200, 0, 255},
		tetromino.ColorYellow: {255, 255, 0, 255},
		tetromino.ColorCyan:   {0, 255, 255, 255},
	}
)

var touchEnabled = runtime.GOOS == "ios" || runtime.GOOS == "android"

// keymap is checked in order; the first pressed key wins the frame.
var keymap = []struct {
	keys []ebiten.Key
	cmd  game.Command
}{
	{[]ebiten.Key{ebiten.KeySpace}, game.CommandHardDrop},
	{[]ebiten.Key{ebiten.KeyUp, ebiten.KeyW, ebiten.KeyX}, game.CommandRotate},
	{[]ebiten.Key{ebiten.KeyLeft, ebiten.KeyA}, game.CommandLeft},
	{[]ebiten.Key{ebiten.KeyRight, ebiten.KeyD}, game.CommandRight},
	{[]ebiten.Key{ebiten.KeyDown, ebiten.KeyS}, game.CommandSoftDrop},
}

// Game implements ebiten.Game on top of a running game.Loop.
type Game struct {
	loop *game.Loop
	pad  touch.Pad
}

func New(loop *game.Loop) *Game {
	return &Game{loop: loop, pad: touch.Pad{W: LogicalW, H: LogicalH}}
}

func pressedCommand() game.Command {
	for _, m := range keymap {
		for _, k := range m.keys {
			if inpututil.IsKeyJustPressed(k) {
				return m.cmd
			}
		}
	}
	return game.CommandNone
}

func touchPoints(ids []ebiten.TouchID) []image.Point {
	pts := make([]image.Point, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		pts = append(pts, image.Pt(x, y))
	}
	return pts
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	cmd := pressedCommand()
	if cmd == game.CommandNone && touchEnabled {
		cmd = g.pad.Command(
			touchPoints(inpututil.AppendJustPressedTouchIDs(nil)),
			touchPoints(ebiten.AppendTouchIDs(nil)),
		)
	}
	if cmd != game.CommandNone {
		g.loop.Submit(cmd)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.loop.Frame()
	screen.Fill(bgColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	rightPanel := float32(150)
	margin := float32(16)
	playWidth := float32(w) - rightPanel - margin*3
	ctrlH := float32(0)
	if touchEnabled {
		ctrlH = touch.Height
	}
	playHeight := float32(h) - margin*2 - ctrlH
	tile := min(playWidth/grid.Cols, playHeight/grid.Rows)
	boardPxW := tile * grid.Cols
	boardPxH := tile * grid.Rows
	originX, originY := margin, margin

	vector.DrawFilledRect(screen, originX-2, originY-2, boardPxW+4, boardPxH+4, gridColor, false)
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			c := emptyColor
			if cell := snap.CellAt(x, y); cell.Filled {
				c = palette[cell.Color]
			}
			drawCell(screen, originX, originY, tile, x, y, c)
		}
	}

	panelX := originX + boardPxW + margin
	text.Draw(screen, "Next", basicfont.Face7x13, int(panelX), int(originY+14), color.White)
	drawNext(screen, panelX, originY+20, tile, snap)

	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Lines: %d", snap.Lines),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Speed: %dms", snap.FallPeriod.Milliseconds()),
	}
	if !touchEnabled {
		lines = append(lines,
			"",
			"Controls:",
			"Left/Right Move",
			"Down Soft Drop",
			"Up/X Rotate",
			"Space Hard Drop",
			"Esc Quit",
		)
	}
	for i, s := range lines {
		text.Draw(screen, s, basicfont.Face7x13, int(panelX), int(originY)+120+i*16, color.White)
	}

	if touchEnabled {
		g.drawTouchControls(screen)
	}

	if snap.GameOver {
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 160}, false)
		msg := "Game Over"
		text.Draw(screen, msg, basicfont.Face7x13, w/2-len(msg)*3, h/2-10, color.White)
		total := fmt.Sprintf("Total Score: %d", snap.Score)
		text.Draw(screen, total, basicfont.Face7x13, w/2-len(total)*3, h/2+8, color.White)
	}
}

func drawCell(screen *ebiten.Image, originX, originY, tile float32, x, y int, c color.RGBA) {
	px := originX + float32(x)*tile
	py := originY + float32(y)*tile
	vector.DrawFilledRect(screen, px+1, py+1, tile-2, tile-2, c, false)
}

func drawNext(screen *ebiten.Image, px, py, tile float32, snap game.Snapshot) {
	scale := tile * 0.7
	offX := px + 8
	offY := py + 8
	c := palette[snap.NextColor]
	for _, o := range snap.Next {
		x := offX + float32(o.X)*scale
		y := offY + float32(o.Y)*scale
		vector.DrawFilledRect(screen, x+1, y+1, scale-2, scale-2, c, false)
	}
}

func (g *Game) drawTouchControls(screen *ebiten.Image) {
	bg := color.RGBA{255, 255, 255, 20}
	lbl := color.RGBA{255, 255, 255, 200}
	for i, b := range touch.Buttons {
		r := g.pad.Rect(i)
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()-2), float32(r.Dy()-2), bg, false)
		tx := r.Min.X + r.Dx()/2 - len(b.Label)*3
		ty := r.Min.Y + r.Dy()/2
		text.Draw(screen, b.Label, basicfont.Face7x13, tx, ty, lbl)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return LogicalW, LogicalH
}

// Run opens the window and blocks until it is closed.
func Run(loop *game.Loop, scale int) error {
	ebiten.SetWindowSize(LogicalW*scale, LogicalH*scale)
	ebiten.SetWindowTitle("Tower")
	return ebiten.RunGame(New(loop))
}
