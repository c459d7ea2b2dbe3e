package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-vchat.log")
	require.NoError(t, Init(logPath))
	t.Cleanup(Reset)
	return logPath
}

func TestInit_WritesToFile(t *testing.T) {
	logPath := setupTestLogger(t)

	Warn("opened %s", "fixture.yaml")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logger initialized")
	assert.Contains(t, string(data), "opened fixture.yaml")
	assert.Equal(t, logPath, Path())
}

func TestDebug_RespectsLevel(t *testing.T) {
	logPath := setupTestLogger(t)

	Debug("hidden %d", 1)
	SetDebug(true)
	Debug("visible %d", 2)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden 1")
	assert.Contains(t, string(data), "visible 2")
}

func TestComponentLogger_AttachesComponent(t *testing.T) {
	logPath := setupTestLogger(t)

	ComponentLogger("pad").Info("selection moved", "to", 3)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=pad")
	assert.Contains(t, string(data), "to=3")
}

func TestComponentLogger_BeforeInitDiscards(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	log := ComponentLogger("screen")
	require.NotNil(t, log)
	log.Error("nowhere")
	assert.Equal(t, "", Path())
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
}
