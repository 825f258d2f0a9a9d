package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	h := LevelFilter{
		pass: func(l slog.Level) bool { return l >= slog.LevelWarn },
		h:    slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}),
	}
	logger := slog.New(h)

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := MultiHandler{hs: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(m).With("class", "kbd")

	logger.Info("created")
	logger.Error("failed")

	assert.Contains(t, a.String(), "created")
	assert.Contains(t, a.String(), "class=kbd")
	assert.Contains(t, a.String(), "failed")
	assert.NotContains(t, b.String(), "created")
	assert.Contains(t, b.String(), "failed")
}

func TestConsoleHandlerPlain(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: LevelTrace}
	slog.New(h).With("socket", "@x").Log(context.Background(), LevelTrace, "frame")

	out := buf.String()
	assert.Contains(t, out, "TRACE frame socket=@x")
	assert.NotContains(t, out, "\033[")
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	NewRaw(&buf).Log("tx", []byte{0x10, 0x00, 0x00, 0x00, 0x00})
	assert.Contains(t, buf.String(), "tx 5 bytes")
	assert.Contains(t, buf.String(), "10 00 00 00 00")

	// nil writer must not panic
	NewRaw(nil).Log("rx", []byte{1})
}
