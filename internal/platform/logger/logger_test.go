package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "bogus", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFromString(tt.in))
		})
	}
}

func TestNewConsoleOnly(t *testing.T) {
	l := New(Options{Env: "dev", ConsoleLevel: "debug", App: "shelf"})
	require.NotNil(t, l)

	// No file handler registered, Close is a no-op.
	assert.NoError(t, Close(l))
}

func TestNewWithFileHandler(t *testing.T) {
	file := filepath.Join(t.TempDir(), "shelf.log")

	l := New(Options{Env: "prod", File: file, App: "shelf"})
	require.NotNil(t, l)
	l.Info("hello")

	assert.NoError(t, Close(l))
	// Second close must not find a stale closer.
	assert.NoError(t, Close(l))
}

type recordingHandler struct {
	level   slog.Level
	handled int
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h *recordingHandler) Handle(context.Context, slog.Record) error {
	h.handled++
	return nil
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerRespectsLevels(t *testing.T) {
	warnOnly := &recordingHandler{level: slog.LevelWarn}
	all := &recordingHandler{level: slog.LevelDebug}

	l := slog.New(NewMultiHandler(warnOnly, all))
	l.Info("quiet")
	l.Warn("loud")

	assert.Equal(t, 1, warnOnly.handled)
	assert.Equal(t, 2, all.handled)
}
