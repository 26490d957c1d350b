// Package xlog is a thin logrus wrapper shared by the CLI boundary and
// the parser/emitter trace hook. Library packages never log on their
// own -- the same division vippsas/sqlcode draws between its library
// code and its cli/cmd package, which takes a logrus.FieldLogger as a
// parameter rather than reaching for a global logger.
package xlog

import "github.com/sirupsen/logrus"

// New returns the process-wide standard logrus logger, the way
// vippsas/sqlcode's up.go command grabs logrus.StandardLogger() at its
// own boundary rather than plumbing a constructed logger through.
func New() logrus.FieldLogger {
	return logrus.StandardLogger()
}

// WithComponent tags every entry logged through the returned logger
// with a component field, so CLI output can be filtered by stage.
func WithComponent(logger logrus.FieldLogger, component string) logrus.FieldLogger {
	return logger.WithField("component", component)
}

// TraceFunc is called with a stage name and a detail message. A nil
// TraceFunc is never produced by Trace; callers that don't want tracing
// simply never invoke the hook.
type TraceFunc func(stage, detail string)

// Trace builds a TraceFunc that logs at debug level through logger. A
// nil logger yields a no-op hook, so parser/emitter call sites can
// invoke the hook unconditionally.
func Trace(logger logrus.FieldLogger) TraceFunc {
	if logger == nil {
		return func(string, string) {}
	}
	return func(stage, detail string) {
		logger.WithField("stage", stage).Debug(detail)
	}
}
