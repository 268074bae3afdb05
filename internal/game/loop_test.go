package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleparisi/ai-playground/tower/internal/grid"
	"github.com/kyleparisi/ai-playground/tower/internal/tetromino"
)

type manualTicker struct {
	c chan time.Time

	mu      sync.Mutex
	periods []time.Duration
	stopped bool
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time)}
}

func (m *manualTicker) C() <-chan time.Time { return m.c }

func (m *manualTicker) Reset(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.periods = append(m.periods, d)
	m.stopped = false
}

func (m *manualTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *manualTicker) fire() {
	m.c <- time.Now()
}

func (m *manualTicker) snapshot() ([]time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.periods...), m.stopped
}

func startLoop(t *testing.T, s *State) (*Loop, *manualTicker) {
	t.Helper()
	mt := newManualTicker()
	var first time.Duration
	l := NewLoop(s, WithTicker(func(d time.Duration) Ticker {
		first = d
		return mt
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
		assert.Equal(t, s.rules.InitialFallPeriod, first)
	})
	return l, mt
}

const waitFor = time.Second

func TestLoopSnapshotBeforeRun(t *testing.T) {
	s := newTestState(t)
	l := NewLoop(s)

	snap := l.Snapshot()
	assert.True(t, snap.HasActive)
	assert.Equal(t, time.Second, snap.FallPeriod)
	assert.Equal(t, 1, snap.Level)
}

func TestLoopTickMovesPieceDown(t *testing.T) {
	s := newTestState(t)
	place(s, tetromino.ShapeT, 4, 0)
	l, mt := startLoop(t, s)

	mt.fire()
	require.Eventually(t, func() bool {
		return l.Snapshot().Active[0].Y == 1
	}, waitFor, time.Millisecond)

	mt.fire()
	require.Eventually(t, func() bool {
		return l.Snapshot().Active[0].Y == 2
	}, waitFor, time.Millisecond)
}

func TestLoopOneCommandPerFrame(t *testing.T) {
	s := newTestState(t)
	place(s, tetromino.ShapeT, 4, 0)
	l, _ := startLoop(t, s)

	assert.True(t, l.Submit(CommandLeft))
	assert.False(t, l.Submit(CommandLeft), "second command in the same frame")
	require.Eventually(t, func() bool {
		return l.Snapshot().Active[0].X == 3
	}, waitFor, time.Millisecond)

	l.Frame()
	assert.True(t, l.Submit(CommandLeft))
	require.Eventually(t, func() bool {
		return l.Snapshot().Active[0].X == 2
	}, waitFor, time.Millisecond)
}

func TestLoopIgnoresNonPlayerCommands(t *testing.T) {
	s := newTestState(t)
	l, _ := startLoop(t, s)

	assert.False(t, l.Submit(CommandNone))
	assert.False(t, l.Submit(CommandTick))
	assert.False(t, l.Submit(Command(99)))
	assert.True(t, l.Submit(CommandRight), "ignored commands keep the frame open")
}

func TestLoopHardDropIsOneCommand(t *testing.T) {
	s := newTestState(t)
	place(s, tetromino.ShapeStick, 0, 0)
	l, _ := startLoop(t, s)

	require.True(t, l.Submit(CommandHardDrop))
	require.Eventually(t, func() bool {
		snap := l.Snapshot()
		return snap.Grid[grid.Rows-1][0].Filled && snap.Grid[grid.Rows-4][0].Filled
	}, waitFor, time.Millisecond)
}

func TestLoopReArmsTickerOnSpeedUp(t *testing.T) {
	s := newTestState(t)
	s.score = 400
	fillRow(s, grid.Rows-1, 9)
	place(s, tetromino.ShapeStick, 9, grid.Rows-4)
	l, mt := startLoop(t, s)

	mt.fire()
	require.Eventually(t, func() bool {
		return l.Snapshot().Score == 500
	}, waitFor, time.Millisecond)

	periods, stopped := mt.snapshot()
	assert.Equal(t, []time.Duration{850 * time.Millisecond}, periods)
	assert.False(t, stopped)
	assert.Equal(t, 850*time.Millisecond, l.Snapshot().FallPeriod)
}

func TestLoopStopsTickerOnGameOver(t *testing.T) {
	s := newTestState(t)
	for y := 2; y < grid.Rows; y++ {
		fillRow(s, y, 0)
	}
	place(s, tetromino.ShapeBox, 4, 0)
	s.next = tetromino.New(tetromino.ShapeStick, tetromino.ColorCyan, 4, 0)
	l, mt := startLoop(t, s)

	require.True(t, l.Submit(CommandHardDrop))
	require.Eventually(t, func() bool {
		return l.Snapshot().GameOver
	}, waitFor, time.Millisecond)

	_, stopped := mt.snapshot()
	assert.True(t, stopped)

	l.Frame()
	assert.False(t, l.Submit(CommandLeft))
	snap := l.Snapshot()
	assert.False(t, snap.HasActive)
	assert.Equal(t, PhaseGameOver, snap.Phase)
}

func TestLoopSubmitNeverBlocks(t *testing.T) {
	s := newTestState(t)
	l := NewLoop(s, WithQueueSize(1))

	assert.True(t, l.Submit(CommandLeft))
	l.Frame()
	assert.False(t, l.Submit(CommandLeft), "queue is full and nothing drains it")
}

func TestLoopFullQueueKeepsFrameOpen(t *testing.T) {
	s := newTestState(t)
	l := NewLoop(s, WithQueueSize(1))

	require.True(t, l.Submit(CommandLeft))
	l.Frame()
	require.False(t, l.Submit(CommandRight))

	assert.Equal(t, CommandLeft, <-l.queue)
	assert.True(t, l.Submit(CommandRight), "a dropped command must not use up the frame")
	assert.False(t, l.Submit(CommandRotate))
	assert.Equal(t, CommandRight, <-l.queue)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestState(t)
	p := place(s, tetromino.ShapeBox, 0, 0)
	snap := s.Snapshot()

	s.MoveRight()
	s.Tick()

	assert.Equal(t, [4]tetromino.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}, snap.Active)
	assert.Equal(t, tetromino.ColorRed, snap.CellAt(1, 1).Color)
	assert.False(t, snap.CellAt(2, 2).Filled)
	assert.False(t, snap.CellAt(-1, 0).Filled)
	assert.Equal(t, 1, p.X)
}
