package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevHandler_writesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newDevHandler(&buf, slog.LevelInfo)).With("meeting_id", "m1")

	logger.Debug("hidden")
	logger.Warn("reminder failed", "attempt", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "\x1b[33mWARN\x1b[0m reminder failed")
	assert.Contains(t, out, "meeting_id=m1 attempt=2")
}

func TestGCPLoggerAttributeReplacer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: GCPLoggerAttributeReplacer}))

	logger.Warn("slow query")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "slow query", line["message"])
	assert.Equal(t, "WARNING", line["severity"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("loud"))
}
