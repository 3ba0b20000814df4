package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ringotrack.log")
	log := New(Config{Level: "debug", File: path})
	log.Debug("probe", zap.Int("pid", 42))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"probe"`)
	assert.Contains(t, string(data), `"pid":42`)
	assert.Contains(t, string(data), `"time":`)
}

func TestNewIgnoresUnknownLevel(t *testing.T) {
	log := New(Config{Level: "chatty"})
	require.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
