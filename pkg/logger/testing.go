package logger

import (
	"testing"
)

// TestLogger routes log output through the test runner so messages show up
// alongside failing assertions.
type TestLogger struct {
	T *testing.T
}

func NewTestLogger(t *testing.T) Logger {
	return &TestLogger{T: t}
}

func (l *TestLogger) Debug(msg string) { l.logf("DEBUG", msg) }
func (l *TestLogger) Info(msg string)  { l.logf("INFO", msg) }
func (l *TestLogger) Warn(msg string)  { l.logf("WARN", msg) }
func (l *TestLogger) Error(msg string) { l.logf("ERROR", msg) }
func (l *TestLogger) Fatal(msg string) { l.logf("FATAL", msg) }

func (l *TestLogger) logf(level, msg string) {
	if l.T != nil {
		l.T.Logf("[%s] %s", level, msg)
	}
}

func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return l
}

// NewMockLogger returns a logger that discards everything, for tests that
// do not care about output.
func NewMockLogger() Logger {
	return &TestLogger{}
}
