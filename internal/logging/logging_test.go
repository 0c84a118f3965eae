package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestVerbosity(Te *testing.T) {
	core, logs := observer.New(zapcore.Level(-DEBUG))
	log := FromCore(core)
	log.Info("shown")
	log.V(DEBUG).Info("also shown", "volume", 32.0)
	log.V(TRACE).Info("hidden")
	require.Equal(Te, 2, logs.Len())
	entries := logs.All()
	assert.Equal(Te, "shown", entries[0].Message)
	assert.Equal(Te, 32.0, entries[1].ContextMap()["volume"])
}

func TestNew(Te *testing.T) {
	for _, dev := range []bool{false, true} {
		log, flush, err := New(TRACE, dev)
		require.NoError(Te, err)
		assert.True(Te, log.V(TRACE).Enabled())
		assert.False(Te, log.V(TRACE+1).Enabled())
		flush()
	}
	log, flush, err := New(-3, false)
	require.NoError(Te, err)
	assert.False(Te, log.V(DEBUG).Enabled())
	flush()
}
