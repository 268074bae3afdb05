package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO: shown 2")
	assert.Contains(t, out, "WARN: careful")
	assert.Contains(t, out, "ERROR: broken")

	buf.Reset()
	l.SetLevel(LevelNone)
	l.Errorf("silent")
	assert.Empty(t, buf.String())
	assert.Equal(t, LevelNone, l.Level())
}

func TestWarnHasItsOwnLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Infof("chatter")
	l.Warnf("queue full")
	assert.NotContains(t, buf.String(), "chatter")
	assert.Contains(t, buf.String(), "WARN: queue full")

	buf.Reset()
	l.SetLevel(LevelError)
	l.Warnf("queue full")
	l.Errorf("broken")
	assert.NotContains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "ERROR: broken")
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{" INFO ", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"Warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"none", LevelNone, true},
		{"loud", LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := LevelFromString(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
	assert.Equal(t, "UNKNOWN", Level(-1).String())
}
