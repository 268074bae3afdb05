package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kyleparisi/ai-playground/tower/internal/log"
)

const defaultQueueSize = 16

// Loop is the single owner of a State. Player commands and gravity ticks go
// through one FIFO queue and are applied one at a time by Run; renderers only
// ever see the snapshot published after each applied command.
type Loop struct {
	state *State
	queue chan Command

	snap atomic.Pointer[Snapshot]
	// accepted is set when a player command got in during the current
	// render frame and cleared by Frame.
	accepted atomic.Bool

	newTicker func(time.Duration) Ticker
	log       *log.Logger
}

type Option func(*Loop)

// WithTicker replaces the gravity ticker factory.
func WithTicker(f func(time.Duration) Ticker) Option {
	return func(l *Loop) { l.newTicker = f }
}

func WithLogger(lg *log.Logger) Option {
	return func(l *Loop) { l.log = lg }
}

func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queue = make(chan Command, n)
		}
	}
}

func NewLoop(s *State, opts ...Option) *Loop {
	l := &Loop{
		state:     s,
		queue:     make(chan Command, defaultQueueSize),
		newTicker: NewTicker,
		log:       log.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.publish()
	return l
}

// Snapshot returns the last published state.
func (l *Loop) Snapshot() Snapshot {
	return *l.snap.Load()
}

// Frame is the read a renderer does once per drawn frame. It also lets the
// next player command in.
func (l *Loop) Frame() Snapshot {
	snap := l.Snapshot()
	l.accepted.Store(false)
	return snap
}

// Submit queues a player command. At most one command is accepted per
// render frame; anything else, including unknown commands, commands after
// game over and commands that find the queue full, is dropped. Submit never
// blocks.
func (l *Loop) Submit(c Command) bool {
	if !c.Player() {
		return false
	}
	if l.snap.Load().GameOver {
		return false
	}
	if !l.accepted.CompareAndSwap(false, true) {
		return false
	}
	select {
	case l.queue <- c:
		return true
	default:
		// Nothing got in, so the frame is still open.
		l.accepted.Store(false)
		l.log.Warnf("command queue full, dropping %s", c)
		return false
	}
}

// Run applies queued commands until ctx is done. The gravity ticker is
// re-armed between commands whenever the fall period changes and stopped on
// game over.
func (l *Loop) Run(ctx context.Context) error {
	period := l.state.FallPeriod()
	ticker := l.newTicker(period)
	defer ticker.Stop()
	if l.state.GameOver() {
		ticker.Stop()
	}

	go l.forwardTicks(ctx, ticker)

	l.log.Infof("game loop started, fall period %s", period)
	for {
		select {
		case <-ctx.Done():
			l.log.Debugf("game loop stopping: %v", ctx.Err())
			return ctx.Err()
		case c := <-l.queue:
			out := l.state.Apply(c)
			l.report(c, out)

			if out.GameOver {
				ticker.Stop()
			} else if p := l.state.FallPeriod(); p != period {
				period = p
				ticker.Reset(period)
				l.log.Infof("fall period now %s", period)
			}
			l.publish()
		}
	}
}

func (l *Loop) forwardTicks(ctx context.Context, t Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			select {
			case l.queue <- CommandTick:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (l *Loop) report(c Command, out Outcome) {
	if c != CommandTick {
		l.log.Debugf("%s moved=%t", c, out.Moved)
	}
	if c == CommandHardDrop {
		l.log.Debugf("hard drop took %d steps", out.Steps)
	}
	if out.Locked {
		l.log.Debugf("piece locked, %d rows cleared", out.Rows)
	}
	if out.Rows > 0 {
		l.log.Infof("cleared %d rows, score %d", out.Rows, l.state.Score())
	}
	if out.GameOver {
		l.log.Infof("game over, score %d lines %d", l.state.Score(), l.state.Lines())
	}
}

func (l *Loop) publish() {
	snap := l.state.Snapshot()
	l.snap.Store(&snap)
}
