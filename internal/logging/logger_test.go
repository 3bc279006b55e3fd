package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithFormat_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithFormat(&buf, slog.LevelInfo, FormatJSON)
	logger.Info("failed", "error", errors.New("boom"))
	logger.Debug("hidden")

	assert.Contains(t, buf.String(), `"err":"boom"`)
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	NewWithFormat(&buf, slog.LevelDebug, FormatText).Debug("shown", "error", "x")
	assert.Contains(t, buf.String(), "err=x")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
