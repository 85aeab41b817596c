package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"info", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"trace", zapcore.Level(-2)},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	require.ErrorIs(t, err, errUnknownLevel)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "info", "xml")
	require.ErrorIs(t, err, errUnknownFormat)
}

func TestJSONLoggerThroughLogr(t *testing.T) {
	var buf bytes.Buffer
	z, err := NewWithWriter(&buf, "info", FormatJSON)
	require.NoError(t, err)
	log := Logr(z)

	log.Info("layer applied", "material", "W", "thicknessMM", 1.0)
	log.V(DEBUG).Info("hidden at info")
	log.Error(errors.New("boom"), "material record degraded", "material", "Pb")
	require.NoError(t, z.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "layer applied", first["msg"])
	assert.Equal(t, "W", first["material"])
	assert.Equal(t, "info", first["level"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "boom", second["error"])
}

func TestDebugLevelEnablesVerbosity(t *testing.T) {
	var buf bytes.Buffer
	z, err := NewWithWriter(&buf, "debug", FormatConsole)
	require.NoError(t, err)
	log := Logr(z)

	assert.True(t, log.V(DEBUG).Enabled())
	assert.False(t, log.V(TRACE).Enabled())

	log.V(DEBUG).Info("stack summary", "layers", 2)
	assert.Contains(t, buf.String(), "stack summary")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestLogrNil(t *testing.T) {
	assert.False(t, Logr(nil).Enabled())
}
