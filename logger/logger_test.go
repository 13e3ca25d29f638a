package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okabrink/creator-scout/config"
)

func initTestLogger(t *testing.T) string {
	t.Helper()
	cfg := &config.Config{}
	cfg.Options.SaveLocation = t.TempDir()
	require.NoError(t, InitLogger(cfg))
	return filepath.Join(cfg.Options.SaveLocation, ".logs", "creator-scout.log")
}

func TestInitLoggerWritesToFile(t *testing.T) {
	logFile := initTestLogger(t)

	Logger.Printf("hello from test")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
}

func TestRotateIfNeededSkipsSmallFile(t *testing.T) {
	logFile := initTestLogger(t)
	Logger.Printf("small")

	rotateIfNeeded(logFile)

	_, err := os.Stat(logFile + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestRotateIfNeededShiftsBackups(t *testing.T) {
	logFile := initTestLogger(t)
	Logger.Printf("before rotation")

	// Grow the file past the threshold without writing the bytes.
	require.NoError(t, os.Truncate(logFile, rotateThreshold+1))

	rotateIfNeeded(logFile)

	info, err := os.Stat(logFile + ".1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, info.Size(), int64(rotateThreshold))

	fresh, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.Less(t, fresh.Size(), int64(rotateThreshold))

	Logger.Printf("after rotation")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "after rotation")
}
