package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_FormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Info("analysis complete: %d matches", 3)
	l.Debug("dropped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "analysis complete: 3 matches", record["msg"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug").With("bot", "telegram").Warn("slow")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "telegram", record["bot"])
	assert.Equal(t, "WARN", record["level"])
}

func TestGetLoggerLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, getLoggerLevel("ERROR"))
	assert.Equal(t, slog.LevelWarn, getLoggerLevel("warn"))
	assert.Equal(t, slog.LevelDebug, getLoggerLevel(""))
}
