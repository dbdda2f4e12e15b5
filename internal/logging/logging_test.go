package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/noafk/internal/config"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - (INFO|WARN|ERROR|DEBUG) - .+$`)

func TestNewWritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noafk.log")
	var console bytes.Buffer

	logger, err := NewWithConsole(config.LogConfig{File: path, Console: true, Level: "info"}, &console)
	require.NoError(t, err)

	logger.Info("Jump action executed successfully")
	logger.Warn("Game window 'FINAL FANTASY XIV' not found. Retrying...")
	logger.Debug("hidden at info level")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fileLines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, fileLines, 2)
	for _, line := range fileLines {
		assert.Regexp(t, linePattern, line)
	}
	assert.True(t, strings.HasSuffix(fileLines[0], " - INFO - Jump action executed successfully"))
	assert.True(t, strings.HasSuffix(fileLines[1], " - WARN - Game window 'FINAL FANTASY XIV' not found. Retrying..."))

	assert.Equal(t, string(data), console.String(), "console mirrors the file")
}

func TestNewConsoleDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noafk.log")
	var console bytes.Buffer

	logger, err := NewWithConsole(config.LogConfig{File: path, Console: false}, &console)
	require.NoError(t, err)
	logger.Info("only in file")
	require.NoError(t, logger.Sync())

	assert.Empty(t, console.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), " - INFO - only in file")
}

func TestNewDebugLevel(t *testing.T) {
	var console bytes.Buffer
	logger, err := NewWithConsole(config.LogConfig{Console: true, Level: "debug"}, &console)
	require.NoError(t, err)

	logger.Debug("mouse jitter skipped")
	assert.Contains(t, console.String(), " - DEBUG - mouse jitter skipped")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := NewWithConsole(config.LogConfig{Console: true, Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewNoSinks(t *testing.T) {
	logger, err := NewWithConsole(config.LogConfig{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	logger.Info("discarded")
}

func TestRedirectStdLog(t *testing.T) {
	var console bytes.Buffer
	logger, err := NewWithConsole(config.LogConfig{Console: true}, &console)
	require.NoError(t, err)

	restore := RedirectStdLog(logger)
	log.Printf("cleanup: released %s", "space")
	restore()

	assert.Contains(t, console.String(), " - INFO - cleanup: released space")
}
