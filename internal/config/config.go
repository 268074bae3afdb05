// Package config loads runtime settings from a JSON file, the environment
// and command-line flags, in that order of precedence (flags win).
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kyleparisi/ai-playground/tower/internal/log"
)

const (
	FrontendDesktop  = "desktop"
	FrontendTerminal = "terminal"

	appDir    = "tower"
	envPrefix = "TOWER_"
)

type Config struct {
	Frontend string `json:"frontend"`
	// Scale multiplies the desktop window size.
	Scale int `json:"scale"`
	// Seed fixes the piece sequence; 0 picks one from the clock.
	Seed     int64  `json:"seed"`
	LogLevel string `json:"log_level"`
	// LogFile receives log output instead of stderr when set.
	LogFile string `json:"log_file"`
}

func Default() Config {
	return Config{
		Frontend: FrontendDesktop,
		Scale:    1,
		LogLevel: "info",
	}
}

// Load builds a Config from defaults, the config file, TOWER_* variables and
// args. A missing config file is not an error.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	fset := flag.NewFlagSet(appDir, flag.ContinueOnError)
	path := fset.String("config", "", "path to a JSON config file")
	frontend := fset.String("frontend", "", "frontend to run: desktop or terminal")
	scale := fset.Int("scale", 0, "desktop window scale")
	seed := fset.Int64("seed", 0, "piece sequence seed")
	level := fset.String("log-level", "", "debug, info, warn, error or none")
	logFile := fset.String("log-file", "", "write logs to this file")
	if err := fset.Parse(args); err != nil {
		return cfg, err
	}

	file := *path
	if file == "" {
		file = getenv(envPrefix + "CONFIG")
	}
	if file == "" {
		if p, err := DefaultPath(); err == nil {
			file = p
		}
	}
	if file != "" {
		if err := cfg.readFile(file); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			cfg.Frontend = *frontend
		case "scale":
			cfg.Scale = *scale
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *level
		case "log-file":
			cfg.LogFile = *logFile
		}
	})

	cfg.Frontend = strings.ToLower(strings.TrimSpace(cfg.Frontend))
	return cfg, cfg.Validate()
}

// DefaultPath is config.json under the user config directory.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appDir, "config.json"), nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(envPrefix + "FRONTEND")); v != "" {
		c.Frontend = v
	}
	if v := strings.TrimSpace(getenv(envPrefix + "SCALE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSCALE: %w", envPrefix, err)
		}
		c.Scale = n
	}
	if v := strings.TrimSpace(getenv(envPrefix + "SEED")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		c.Seed = n
	}
	if v := strings.TrimSpace(getenv(envPrefix + "LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(envPrefix + "LOG_FILE")); v != "" {
		c.LogFile = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Frontend != FrontendDesktop && c.Frontend != FrontendTerminal {
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if _, ok := log.LevelFromString(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	l, _ := log.LevelFromString(c.LogLevel)
	return l
}
