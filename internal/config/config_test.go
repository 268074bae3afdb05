package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleparisi/ai-playground/tower/internal/log"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func missingFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.json")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]string{"-config", missingFile(t)}, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, log.LevelInfo, cfg.Level())
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"frontend":"terminal","scale":3,"seed":11,"log_level":"error"}`), 0o644))

	cfg, err := Load([]string{"-config", path}, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, FrontendTerminal, cfg.Frontend)
	assert.Equal(t, 3, cfg.Scale)
	assert.Equal(t, int64(11), cfg.Seed)
	assert.Equal(t, log.LevelError, cfg.Level())

	env := envMap(map[string]string{
		"TOWER_SCALE":     "2",
		"TOWER_SEED":      "5",
		"TOWER_LOG_LEVEL": "debug",
	})
	cfg, err = Load([]string{"-config", path}, env)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Scale)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, log.LevelDebug, cfg.Level())

	cfg, err = Load([]string{"-config", path, "-scale", "4", "-frontend", "Desktop"}, env)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Scale)
	assert.Equal(t, FrontendDesktop, cfg.Frontend)
	assert.Equal(t, int64(5), cfg.Seed)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_file":"/tmp/tower.log"}`), 0o644))

	cfg, err := Load(nil, envMap(map[string]string{"TOWER_CONFIG": path}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tower.log", cfg.LogFile)
}

func TestLoadErrors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"scale":`), 0o644))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"malformed file", []string{"-config", bad}, nil},
		{"unknown frontend", []string{"-config", missingFile(t), "-frontend", "web"}, nil},
		{"zero scale", []string{"-config", missingFile(t), "-scale", "0"}, nil},
		{"bad level", []string{"-config", missingFile(t), "-log-level", "loud"}, nil},
		{"bad env scale", []string{"-config", missingFile(t)}, map[string]string{"TOWER_SCALE": "big"}},
		{"unknown flag", []string{"-config", missingFile(t), "-bogus"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, envMap(tt.env))
			assert.Error(t, err)
		})
	}
}
