package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"grcat/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LogConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: &config.LogConfig{
				Level:    "info",
				Encoding: "json",
			},
			wantErr: false,
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name: "invalid level",
			cfg: &config.LogConfig{
				Level:    "invalid",
				Encoding: "console",
			},
			wantErr: false, // defaults to info level
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, logger)
			}
		})
	}
}

func TestLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "grcat.log")

	logger, err := NewLogger(&config.LogConfig{
		Level:      "debug",
		Encoding:   "json",
		File:       path,
		MaxSize:    1,
		MaxAge:     1,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	logger.Info("info message", "key", "value")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"info message"`)
	assert.Contains(t, string(data), `"key":"value"`)
	assert.Contains(t, string(data), `"run":`)
}

func TestLoggerMethods(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(core).With("component", "test")

	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message", "key", "value")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "test", entries[3].ContextMap()["component"])
	assert.Equal(t, "value", entries[3].ContextMap()["key"])
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("discarded")
	assert.NoError(t, logger.Sync())
}
