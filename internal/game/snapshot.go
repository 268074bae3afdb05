package game

import (
	"time"

	"github.com/kyleparisi/ai-playground/tower/internal/grid"
	"github.com/kyleparisi/ai-playground/tower/internal/tetromino"
)

// Cell is one board cell as seen by a renderer.
type Cell struct {
	Filled bool
	Color  tetromino.Color
}

// Snapshot is a detached, read-only copy of everything a renderer needs.
type Snapshot struct {
	Grid [grid.Rows][grid.Cols]Cell

	HasActive   bool
	Active      [4]tetromino.Point // absolute cells
	ActiveColor tetromino.Color

	Next      [4]tetromino.Offset // local offsets
	NextShape tetromino.Shape
	NextColor tetromino.Color

	Score      int
	Lines      int
	Level      int
	FallPeriod time.Duration
	Phase      Phase
	GameOver   bool
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Score:      s.score,
		Lines:      s.lines,
		Level:      s.Level(),
		FallPeriod: s.fallPeriod,
		Phase:      s.phase,
		GameOver:   s.gameOver,
	}
	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			if b, ok := s.grid.At(x, y); ok {
				snap.Grid[y][x] = Cell{Filled: true, Color: b.Color}
			}
		}
	}
	if s.active != nil {
		snap.HasActive = true
		snap.Active = s.active.Cells()
		snap.ActiveColor = s.active.Color()
	}
	if s.next != nil {
		for i, b := range s.next.Blocks() {
			snap.Next[i] = tetromino.Offset{X: b.X, Y: b.Y}
		}
		snap.NextShape = s.next.Shape()
		snap.NextColor = s.next.Color()
	}
	return snap
}

// CellAt returns what a renderer should draw at (x, y): the active piece
// over the locked cells.
func (s Snapshot) CellAt(x, y int) Cell {
	if s.HasActive {
		for _, p := range s.Active {
			if p.X == x && p.Y == y {
				return Cell{Filled: true, Color: s.ActiveColor}
			}
		}
	}
	if x < 0 || x >= grid.Cols || y < 0 || y >= grid.Rows {
		return Cell{}
	}
	return s.Grid[y][x]
}
