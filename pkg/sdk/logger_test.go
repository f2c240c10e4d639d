package sdk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

func TestNewZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := sdk.NewZapLogger(zap.New(core))

	logger.Debug("dropped", nil)
	logger.Info("Registered API", map[string]interface{}{"type": "*api.SQLExecutionClient", "interface": "api.SQLExecutionAPI"})
	logger.Warn("slow", nil)
	logger.Error("failed", map[string]interface{}{"status": 500})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "Registered API", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "interface", entries[0].Context[0].Key)
	assert.Equal(t, map[string]interface{}{
		"type":      "*api.SQLExecutionClient",
		"interface": "api.SQLExecutionAPI",
	}, entries[0].ContextMap())

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(500), entries[2].ContextMap()["status"])
}
