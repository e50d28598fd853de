package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", DEBUG, true},
		{"INFO", INFO, true},
		{"", INFO, true},
		{" warn ", WARN, true},
		{"warning", WARN, true},
		{"error", ERROR, true},
		{"fatal", FATAL, true},
		{"verbose", INFO, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "WARN", WARN.String())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("warn", &buf)

	l.Info("hidden")
	l.Debugf("hidden %d", 1)
	l.Warnf("kernel radius %d", 6)
	l.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN ]")
	assert.Contains(t, out, "kernel radius 6")
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "logger_test.go:")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger("debug", &buf)
	gl := root.With("engine").With("shader")

	gl.Debug("compiled")
	assert.Contains(t, buf.String(), "[engine.shader] compiled")

	// children share output but not level
	gl.SetLevel("error")
	buf.Reset()
	gl.Info("quiet")
	root.Info("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestFatalExits(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	var buf bytes.Buffer
	NewWriterLogger("info", &buf).Fatalf("missing %s", "extension")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "[FATAL]")
	assert.Contains(t, buf.String(), "missing extension")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "outline.log")
	l, err := NewFileLogger("info", path)
	require.NoError(t, err)
	l.Info("frame written")
	l.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame written")
	assert.NotContains(t, string(data), "\033[")
}
