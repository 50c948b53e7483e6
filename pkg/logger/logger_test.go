package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warning"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel(""))
	assert.Equal(t, slog.LevelInfo, getLogLevel("verbose"))
}

func TestLogPurchaseAppliedWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", true)

	log.LogPurchaseApplied(context.Background(), "p-1", "e-1", "General", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Purchase Applied", entry["msg"])
	assert.Equal(t, "e-1", entry["event_id"])
	assert.Equal(t, float64(42), entry["units_sold"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", false)

	log.LogCacheOperation(context.Background(), "get", "clubly:genres:active:all", true)
	assert.Empty(t, buf.String())

	log.ErrorWithContext(context.Background(), "boom", errors.New("redis down"), map[string]interface{}{"key": "k"})
	assert.Contains(t, buf.String(), "redis down")
}
