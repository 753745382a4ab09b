package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	original := Log
	t.Cleanup(func() { Log = original })

	t.Run("Development", func(t *testing.T) {
		require.NoError(t, Initialize(Config{Level: "debug", Environment: "development"}))
		assert.True(t, Log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("ProductionWithLogDir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Initialize(Config{Level: "warn", Environment: "production", LogDir: dir}))
		assert.False(t, Log.Core().Enabled(zap.InfoLevel))
		assert.True(t, Log.Core().Enabled(zap.WarnLevel))
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		err := Initialize(Config{Level: "loud"})
		assert.ErrorContains(t, err, "invalid log level")
	})
}
