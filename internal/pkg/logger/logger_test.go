package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ForwardsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core))

	log.Debug("sync.start", map[string]interface{}{"dir": "/tmp/app"})
	log.Warn("sync.type_mismatch", map[string]interface{}{"key": "DEBUG"})
	log.Error("sync.failed", errors.New("boom"), nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "/tmp/app", entries[0].ContextMap()["dir"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestNew_QuietByDefault(t *testing.T) {
	log, err := New(false)
	require.NoError(t, err)
	log.Info("ignored", nil)
	assert.False(t, log.z.Core().Enabled(zapcore.ErrorLevel))
}
