// Package grid holds the board of locked blocks and the line mechanics.
package grid

import "github.com/kyleparisi/ai-playground/tower/internal/tetromino"

const (
	Rows = 20
	Cols = 10
)

// Grid is the Rows x Cols board. A nil cell is empty; a filled cell holds a
// copy of the block that was locked there.
type Grid struct {
	cells [Rows][Cols]*tetromino.Block
}

func New() *Grid {
	return &Grid{}
}

// At returns the block locked at (x, y). ok is false for empty or
// out-of-range cells.
func (g *Grid) At(x, y int) (b tetromino.Block, ok bool) {
	if !inBounds(x, y) || g.cells[y][x] == nil {
		return tetromino.Block{}, false
	}
	return *g.cells[y][x], true
}

// Set stores a copy of b at (x, y), or empties the cell when b is nil.
// Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, b *tetromino.Block) {
	if !inBounds(x, y) {
		return
	}
	if b == nil {
		g.cells[y][x] = nil
		return
	}
	c := b.Copy()
	g.cells[y][x] = &c
}

// IsValid reports whether every block, placed at anchor+offset+(dx, dy), lands
// inside the board on an empty cell.
func (g *Grid) IsValid(blocks [4]tetromino.Block, anchorX, anchorY, dx, dy int) bool {
	for _, b := range blocks {
		x := anchorX + b.X + dx
		y := anchorY + b.Y + dy
		if !inBounds(x, y) || g.cells[y][x] != nil {
			return false
		}
	}
	return true
}

// Fits is IsValid for a live piece at its current position shifted by (dx, dy).
func (g *Grid) Fits(t *tetromino.Tetromino, dx, dy int) bool {
	return g.IsValid(t.Blocks(), t.X, t.Y, dx, dy)
}

// Lock copies the piece's blocks into the board. The caller has already
// checked the placement with IsValid.
func (g *Grid) Lock(t *tetromino.Tetromino) {
	blocks := t.Blocks()
	for i, p := range t.Cells() {
		if !inBounds(p.X, p.Y) {
			continue
		}
		c := blocks[i].Copy()
		g.cells[p.Y][p.X] = &c
	}
}

// IsRowComplete reports whether every cell of row y is filled.
func (g *Grid) IsRowComplete(y int) bool {
	if y < 0 || y >= Rows {
		return false
	}
	for _, c := range g.cells[y] {
		if c == nil {
			return false
		}
	}
	return true
}

// FindCompleteRows returns the indexes of the complete rows, bottom first.
func (g *Grid) FindCompleteRows() []int {
	var rows []int
	for y := Rows - 1; y >= 0; y-- {
		if g.IsRowComplete(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ShiftDown drops every row above index by one, overwriting row index, and
// empties row 0.
func (g *Grid) ShiftDown(index int) {
	if index < 0 || index >= Rows {
		return
	}
	for y := index; y > 0; y-- {
		g.cells[y] = g.cells[y-1]
	}
	g.cells[0] = [Cols]*tetromino.Block{}
}

// ClearCompleteRows removes every complete row and returns how many were
// removed. After a shift the same index is tested again, since the row that
// slid into it may be complete too.
func (g *Grid) ClearCompleteRows() int {
	cleared := 0
	for y := Rows - 1; y >= 0; {
		if g.IsRowComplete(y) {
			g.ShiftDown(y)
			cleared++
			continue
		}
		y--
	}
	return cleared
}

// Occupied counts the filled cells.
func (g *Grid) Occupied() int {
	n := 0
	for y := range g.cells {
		for _, c := range g.cells[y] {
			if c != nil {
				n++
			}
		}
	}
	return n
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}
