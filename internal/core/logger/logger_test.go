package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithQuiet())

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestNew_Formats(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithOutput(&buf), WithFormat(FormatText)).Info("opened", "keyway", "HU66")
		assert.Contains(t, buf.String(), "keyway=HU66")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithOutput(&buf), WithFormat(FormatJSON)).Info("opened", "keyway", "HU66")
		assert.Contains(t, buf.String(), `"msg":"opened"`)
		assert.Contains(t, buf.String(), `"keyway":"HU66"`)
	})
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	New(WithOutput(&buf), WithComponent("workbench")).Info("saved")
	assert.Contains(t, buf.String(), "component=workbench")
}

func TestWithAndGroup(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithDebug(), WithFormat(FormatJSON))

	l.With("session", "abc").WithGroup("stats").Debug("enumerated", "found", 3)
	out := buf.String()
	assert.Contains(t, out, `"session":"abc"`)
	assert.Contains(t, out, `"stats":{"found":3}`)
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	l.Info("ignored")
	l.With("k", "v").WithGroup("g").Error("ignored")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), New(WithOutput(&buf)))
	FromContext(ctx).Info("from context")
	assert.Contains(t, buf.String(), "from context")

	assert.NotNil(t, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
