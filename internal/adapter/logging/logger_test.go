package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerKeyValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).Named("judge")

	l.Info("submission judged", "status", "accepted", "runtime", 12.5)
	l.Warn("progress update failed", "error", "boom")
	l.Debug("case", "index", 0)

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, "judge", entries[0].LoggerName)
	assert.Equal(t, "accepted", entries[0].ContextMap()["status"])
	assert.Equal(t, 12.5, entries[0].ContextMap()["runtime"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(0), entries[2].ContextMap()["index"])
}
