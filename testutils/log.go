package testutils

import (
	"testing"

	"github.com/edaniels/golog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger directs logs to the go test logger and also keeps them in an in memory observer,
// debug level included.
func NewObservedLogger(t *testing.T) (golog.Logger, *observer.ObservedLogs) {
	logger := zaptest.NewLogger(t)
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, observerCore)
	}))
	return logger.Sugar(), observedLogs
}

// ContextValue returns the value of a structured field of an observed log entry.
func ContextValue(entry observer.LoggedEntry, key string) (interface{}, bool) {
	v, ok := entry.ContextMap()[key]
	return v, ok
}
