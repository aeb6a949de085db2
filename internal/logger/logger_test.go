package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len(), "info should be filtered at warn level")

	l.Warn().Str("query", "senior Bangalore").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "senior Bangalore", line["query"])
}

func TestNewWithWriter_BadLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "loud")

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").Component("cache").Info().Msg("hit")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cache", line["component"])
}

func TestGet_WithoutInit(t *testing.T) {
	Global = nil
	l := Get()
	require.NotNil(t, l)
	l.Info().Msg("discarded")
}

func TestNew_CreatesLogDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l, err := New("debug", path)
	require.NoError(t, err)
	l.Debug().Msg("written")
	assert.FileExists(t, path)
}
