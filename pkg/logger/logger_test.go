package logger

import (
	"os"
	"path/filepath"
	"testing"

	"shopcore/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNilLoggerSafety(t *testing.T) {
	log = nil
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// None of these may panic before Init.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	assert.NotNil(t, With(zap.String("key", "value")))
	assert.NotNil(t, WithRequestID("req-1"))
	assert.NoError(t, Sync())
}

func TestInitEncoders(t *testing.T) {
	tests := []struct {
		name   string
		format string
		env    string
	}{
		{"explicit console", "console", "production"},
		{"explicit json", "json", "development"},
		{"default development", "", "development"},
		{"default production", "", "production"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LogConfig{Level: "debug", Format: tt.format, Output: "stdout"}
			require.NoError(t, Init(cfg, tt.env))
			defer Sync()

			require.NotNil(t, Get())
			Info("encoder check", zap.String("format", tt.format), zap.String("env", tt.env))
		})
	}
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.log")

	cfg := &config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path}
	require.NoError(t, Init(cfg, "production"))

	Info("file output check", zap.Int("value", 42))
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file output check")
}

func TestUpdateLevel(t *testing.T) {
	cfg := &config.LogConfig{Level: "info", Format: "console", Output: "stdout"}
	require.NoError(t, Init(cfg, "development"))
	defer Sync()

	assert.False(t, atomLevel.Enabled(zapcore.DebugLevel))

	UpdateLevel("debug")
	assert.True(t, atomLevel.Enabled(zapcore.DebugLevel))

	UpdateLevel("error")
	assert.False(t, atomLevel.Enabled(zapcore.WarnLevel))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("unknown"))
}
