package xlog_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/internal/xlog"
)

func TestWithComponent_TagsEntries(t *testing.T) {
	base := logrus.New()
	hook := logrustest.NewLocal(base)

	tagged := xlog.WithComponent(base, "emit")
	tagged.Info("hello")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "emit", hook.Entries[0].Data["component"])
	assert.Equal(t, "hello", hook.Entries[0].Message)
}

func TestTrace_NilLoggerIsNoOp(t *testing.T) {
	trace := xlog.Trace(nil)
	assert.NotPanics(t, func() { trace("parse", "done") })
}

func TestTrace_LogsAtDebugLevel(t *testing.T) {
	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	hook := logrustest.NewLocal(base)

	trace := xlog.Trace(base)
	trace("emit", "emitted 12 tokens")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.DebugLevel, hook.Entries[0].Level)
	assert.Equal(t, "emit", hook.Entries[0].Data["stage"])
}
