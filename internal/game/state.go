// Package game owns the rules of play: the state machine around the grid and
// the falling piece, and the loop that serializes every mutation of it.
package game

import (
	"math/rand"
	"time"

	"github.com/kyleparisi/ai-playground/tower/internal/grid"
	"github.com/kyleparisi/ai-playground/tower/internal/tetromino"
)

// Phase is the position of the state machine. Lock, clear and spawn all run
// inside a single Tick, so between calls only PhaseFalling and PhaseGameOver
// are observed.
type Phase uint8

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// State is the whole game. It is not safe for concurrent use; Loop is the
// single owner in a running program.
type State struct {
	rules Rules
	rng   *rand.Rand

	grid   *grid.Grid
	active *tetromino.Tetromino
	next   *tetromino.Tetromino

	score      int
	lines      int
	milestone  int // score/SpeedUpEvery already accounted for
	fallPeriod time.Duration
	phase      Phase
	gameOver   bool
}

// NewState deals the first two pieces and makes the first one active.
func NewState(rules Rules, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &State{
		rules:      rules,
		rng:        rng,
		grid:       grid.New(),
		fallPeriod: rules.InitialFallPeriod,
	}
	s.next = s.deal()
	s.spawn()
	return s
}

func (s *State) Score() int { return s.score }
func (s *State) Lines() int { return s.lines }
func (s *State) FallPeriod() time.Duration { return s.fallPeriod }
func (s *State) GameOver() bool { return s.gameOver }
func (s *State) Phase() Phase { return s.phase }

// Level starts at 1 and grows by one for every SpeedUpEvery points.
func (s *State) Level() int { return s.milestone + 1 }

func (s *State) deal() *tetromino.Tetromino {
	shape := tetromino.Shapes[s.rng.Intn(len(tetromino.Shapes))]
	color := tetromino.Colors[s.rng.Intn(len(tetromino.Colors))]
	return tetromino.New(shape, color, s.rules.SpawnX, s.rules.SpawnY)
}

// Spawn promotes the next piece when no piece is active. It reports whether
// a piece is active afterwards.
func (s *State) Spawn() bool {
	if s.gameOver {
		return false
	}
	if s.active == nil {
		s.spawn()
	}
	return s.active != nil
}

func (s *State) spawn() {
	s.phase = PhaseSpawning
	t := s.next
	s.next = s.deal()
	for shift := 0; shift <= s.rules.SpawnShifts; shift++ {
		if s.grid.Fits(t, -shift, 0) {
			t.X -= shift
			s.active = t
			s.phase = PhaseFalling
			return
		}
	}
	s.active = nil
	s.gameOver = true
	s.phase = PhaseGameOver
}

// Tick is one gravity step: the active piece moves down one row, or locks,
// clears rows, updates score and speed, and the next piece spawns.
func (s *State) Tick() Outcome {
	if s.gameOver {
		return Outcome{}
	}
	if s.active == nil {
		s.spawn()
		return Outcome{GameOver: s.gameOver}
	}
	if s.grid.Fits(s.active, 0, 1) {
		s.active.MoveDown()
		return Outcome{Moved: true}
	}
	return s.lock()
}

// SoftDropOnce is a player-requested gravity step.
func (s *State) SoftDropOnce() Outcome {
	return s.Tick()
}

// HardDrop steps the active piece down until it locks. A piece is at least
// one row tall, so it locks within grid.Rows steps.
func (s *State) HardDrop() Outcome {
	var out Outcome
	start := s.active
	if start == nil {
		return out
	}
	for ; out.Steps < grid.Rows && !s.gameOver && s.active == start; out.Steps++ {
		out.merge(s.Tick())
	}
	return out
}

func (s *State) lock() Outcome {
	s.phase = PhaseLocking
	s.grid.Lock(s.active)
	s.active = nil

	s.phase = PhaseClearing
	rows := s.grid.ClearCompleteRows()
	s.lines += rows
	s.score += rows * s.rules.PointsPerRow
	out := Outcome{Locked: true, Rows: rows, SpedUp: s.speedUp()}

	s.spawn()
	out.GameOver = s.gameOver
	return out
}

// speedUp shortens the fall period once for every SpeedUpEvery threshold the
// score has crossed since the last call, never going under MinFallPeriod.
func (s *State) speedUp() bool {
	if s.rules.SpeedUpEvery <= 0 || s.score <= 0 {
		return false
	}
	changed := false
	for s.milestone < s.score/s.rules.SpeedUpEvery {
		s.milestone++
		if s.fallPeriod > s.rules.MinFallPeriod {
			s.fallPeriod = max(s.fallPeriod-s.rules.FallPeriodStep, s.rules.MinFallPeriod)
			changed = true
		}
	}
	return changed
}

func (s *State) MoveLeft() bool {
	return s.shift(-1)
}

func (s *State) MoveRight() bool {
	return s.shift(1)
}

func (s *State) shift(dx int) bool {
	if s.gameOver || s.active == nil || !s.grid.Fits(s.active, dx, 0) {
		return false
	}
	if dx < 0 {
		s.active.MoveLeft()
	} else {
		s.active.MoveRight()
	}
	return true
}

// Rotate turns the active piece clockwise if the turned piece fits where it
// is. Otherwise nothing changes.
func (s *State) Rotate() bool {
	if s.gameOver || s.active == nil {
		return false
	}
	rotated := s.active.RotatedBlocks()
	if !s.grid.IsValid(rotated, s.active.X, s.active.Y, 0, 0) {
		return false
	}
	s.active.CommitRotation(rotated)
	return true
}

// Apply runs c. Unknown commands are ignored.
func (s *State) Apply(c Command) Outcome {
	switch c {
	case CommandLeft:
		return Outcome{Moved: s.MoveLeft()}
	case CommandRight:
		return Outcome{Moved: s.MoveRight()}
	case CommandRotate:
		return Outcome{Moved: s.Rotate()}
	case CommandSoftDrop:
		return s.SoftDropOnce()
	case CommandTick:
		return s.Tick()
	case CommandHardDrop:
		return s.HardDrop()
	default:
		return Outcome{}
	}
}
