package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "ctxpack.log")

	logger, err := Setup(Options{AppName: "ctxpack", AppVersion: "test", LogFile: logFile})
	require.NoError(t, err)
	require.Same(t, Logger, logger)

	logger.Debug("debug goes to the file only")
	logger.Info("hello from test")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "debug goes to the file only")
	assert.Contains(t, string(data), `"appName":"ctxpack"`)
}

func TestSetup_Debug(t *testing.T) {
	logger, err := Setup(Options{Debug: true, AppName: "ctxpack", AppVersion: "test"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
