package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden %d", 1)
	log.Warn("booking id=%d not found", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "booking id=42 not found", entry["message"])
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")

	log, err := New(path, "debug")
	require.NoError(t, err)
	log.Debug("written")
	assert.NoError(t, log.Close())
	assert.FileExists(t, path)
}
