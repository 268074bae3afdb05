// Package tetromino models the falling piece: its shape table, its four
// blocks and the two-phase rotation used to keep turns transactional.
package tetromino

import "fmt"

const matrixSize = 4

// Tetromino is a live piece: four blocks positioned relative to an anchor.
// Movement is unchecked; callers validate against the grid first.
type Tetromino struct {
	shape  Shape
	color  Color
	X, Y   int
	blocks [4]Block
}

// New builds a piece of the given shape and color anchored at (x, y). It
// panics on a shape outside the table.
func New(shape Shape, c Color, x, y int) *Tetromino {
	if !shape.Valid() {
		panic(fmt.Sprintf("tetromino: unknown shape %d", shape))
	}
	t := &Tetromino{shape: shape, color: c, X: x, Y: y}
	for i, o := range shape.Offsets() {
		t.blocks[i] = NewBlock(o.X, o.Y, c)
	}
	return t
}

func (t *Tetromino) Shape() Shape { return t.shape }
func (t *Tetromino) Color() Color { return t.color }

// Blocks returns a copy of the four local blocks.
func (t *Tetromino) Blocks() [4]Block {
	return t.blocks
}

// Cells returns the absolute grid position of each block.
func (t *Tetromino) Cells() [4]Point {
	var cells [4]Point
	for i, b := range t.blocks {
		cells[i] = Point{X: t.X + b.X, Y: t.Y + b.Y}
	}
	return cells
}

func (t *Tetromino) MoveLeft() { t.X-- }
func (t *Tetromino) MoveRight() { t.X++ }
func (t *Tetromino) MoveDown() { t.Y++ }

// RotatedBlocks returns the block offsets the piece would have after a
// clockwise quarter turn, shifted so the smallest x and y are zero. The live
// piece is not touched and the returned blocks carry ColorNone.
func (t *Tetromino) RotatedBlocks() [4]Block {
	var m [matrixSize][matrixSize]bool
	for _, b := range t.blocks {
		m[b.Y][b.X] = true
	}
	rotateClockwise(&m)

	var out [4]Block
	n := 0
	minX, minY := matrixSize, matrixSize
	for y := 0; y < matrixSize; y++ {
		for x := 0; x < matrixSize; x++ {
			if !m[y][x] || n == len(out) {
				continue
			}
			out[n] = NewBlock(x, y, ColorNone)
			n++
			minX = min(minX, x)
			minY = min(minY, y)
		}
	}
	for i := range out {
		out[i].X -= minX
		out[i].Y -= minY
	}
	return out
}

// CommitRotation copies the offsets of a RotatedBlocks result into the live
// blocks by index. Colors are kept.
func (t *Tetromino) CommitRotation(rotated [4]Block) {
	for i := range t.blocks {
		t.blocks[i].X = rotated[i].X
		t.blocks[i].Y = rotated[i].Y
	}
}

// rotateClockwise turns m a quarter clockwise in place, one ring at a time.
func rotateClockwise(m *[matrixSize][matrixSize]bool) {
	const n = matrixSize
	for i := 0; i < n/2; i++ {
		for j := i; j < n-i-1; j++ {
			tmp := m[i][j]
			m[i][j] = m[n-1-j][i]
			m[n-1-j][i] = m[n-1-i][n-1-j]
			m[n-1-i][n-1-j] = m[j][n-1-i]
			m[j][n-1-i] = tmp
		}
	}
}
