package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/go-observe/pkg/settings"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"default_info", "", zapcore.InfoLevel, false},
		{"debug", "debug", zapcore.DebugLevel, false},
		{"error", "error", zapcore.ErrorLevel, false},
		{"invalid", "loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(settings.Logger{LogLevel: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNew_FileRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "observe.log")

	log, err := New(settings.Logger{LogLevel: "info", FileLogName: path})
	require.NoError(t, err)

	log.Info("transaction committed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"transaction committed"`)
}

func TestNewRotator_Defaults(t *testing.T) {
	r := newRotator(settings.Logger{FileLogName: "x.log"})

	assert.Equal(t, defaultMaxSize, r.MaxSize)
	assert.Equal(t, defaultMaxBackups, r.MaxBackups)
	assert.Equal(t, defaultMaxAge, r.MaxAge)
}
