package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(dir, false)
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	_, err = os.Stat(filepath.Join(dir, "cinema-manager.log"))
	assert.NoError(t, err)
}

func TestInitLoggerWithoutFile(t *testing.T) {
	logger, err := InitLogger("", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
