package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/kyleparisi/ai-playground/tower/internal/config"
	"github.com/kyleparisi/ai-playground/tower/internal/game"
	"github.com/kyleparisi/ai-playground/tower/internal/log"
	"github.com/kyleparisi/ai-playground/tower/internal/screen"
	"github.com/kyleparisi/ai-playground/tower/internal/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "tower:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	} else if cfg.Frontend == config.FrontendTerminal {
		// The terminal frontend owns the screen.
		out = io.Discard
	}
	logger := log.New(out, cfg.Level())

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Infof("starting %s frontend, seed %d", cfg.Frontend, seed)

	state := game.NewState(game.DefaultRules(), rand.New(rand.NewSource(seed)))
	loop := game.NewLoop(state, game.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	switch cfg.Frontend {
	case config.FrontendTerminal:
		err = term.Run(loop)
	default:
		err = screen.Run(loop, cfg.Scale)
	}
	cancel()
	if lerr := <-loopErr; lerr != nil && !errors.Is(lerr, context.Canceled) {
		logger.Errorf("game loop: %v", lerr)
	}
	if err != nil {
		return err
	}

	snap := loop.Snapshot()
	logger.Infof("bye, score %d lines %d", snap.Score, snap.Lines)
	return nil
}
