package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_BeforeInit(t *testing.T) {
	Set(nil)
	l := Get()
	require.NotNil(t, l)
	l.Info("dropped") // Should not panic
}

func TestInit(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			require.NoError(t, Init(env))
			assert.NotNil(t, Get())
			Sync()
		})
	}
	Set(nil)
}

func TestInit_Levels(t *testing.T) {
	require.NoError(t, Init("production"))
	assert.False(t, Get().Core().Enabled(zap.DebugLevel))

	require.NoError(t, Init("development"))
	assert.True(t, Get().Core().Enabled(zap.DebugLevel))
	Set(nil)
}

func TestSet(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	Get().Debug("stored record", zap.String("key", "k1"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "stored record", entries[0].Message)
	assert.Equal(t, "k1", entries[0].ContextMap()["key"])
}
