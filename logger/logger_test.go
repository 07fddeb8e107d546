package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bptree"
)

func TestZapAdapter(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZap(zap.New(core))

	log.Info("root split", "height", 2, "keys", 4)
	log.Warn("lookup cache disabled", "entries", 64)
	log.Error("tree verification failed", "error", "boom")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "root split", entries[0].Message)
	assert.Equal(t, int64(2), entries[0].ContextMap()["height"])
	assert.Equal(t, int64(4), entries[0].ContextMap()["keys"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestLogrusAdapter(t *testing.T) {
	t.Parallel()

	base, hook := logrustest.NewNullLogger()
	log := NewLogrus(base)

	log.Info("root collapsed", "height", 1, "keys", 1)
	log.Warn("lookup cache disabled", "entries", 64)
	log.Error("tree verification failed", "error", "boom")

	entries := hook.AllEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "root collapsed", entries[0].Message)
	assert.Equal(t, logrus.Fields{"height": 1, "keys": 1}, entries[0].Data)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, logrus.ErrorLevel, entries[2].Level)
}

func TestArgsToFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []any
		want logrus.Fields
	}{
		{"empty", nil, logrus.Fields{}},
		{"pairs", []any{"a", 1, "b", "two"}, logrus.Fields{"a": 1, "b": "two"}},
		{"dangling key", []any{"a", 1, "b"}, logrus.Fields{"a": 1}},
		{"non-string key", []any{3, 1, "b", 2}, logrus.Fields{"b": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, argsToFields(tt.args))
		})
	}
}

func TestAdaptersDriveTree(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	tree, err := bptree.New[int, int](3, bptree.WithLogger(NewZap(zap.New(core))))
	require.NoError(t, err)

	// Degree 3 leaves hold two keys, so the third insert grows the root
	for i := 1; i <= 3; i++ {
		tree.Insert(i, i)
	}

	splits := logs.FilterMessage("root split").AllUntimed()
	require.Len(t, splits, 1)
	assert.Equal(t, int64(2), splits[0].ContextMap()["height"])
}
