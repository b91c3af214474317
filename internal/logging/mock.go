package logging

import (
	"fmt"
	"strings"
	"sync"
)

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Err     error
}

// logSink collects entries from a MockLogger and every logger derived
// from it, so context added via With* is still observable on the root.
type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// MockLogger is a Logger that records messages instead of writing them,
// for asserting on log output in tests.
type MockLogger struct {
	sink   *logSink
	fields []Field
	err    error
}

var _ Logger = (*MockLogger)(nil)

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &logSink{}}
}

func (m *MockLogger) log(level, msg string, fields []Field) {
	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]Field(nil), m.fields...), fields...),
		Err:     m.err,
	}
	m.sink.mu.Lock()
	m.sink.entries = append(m.sink.entries, entry)
	m.sink.mu.Unlock()
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.log("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.log("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.log("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.log("ERROR", msg, fields) }

// Fatal records the entry without terminating the test binary.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.log("FATAL", msg, fields) }

// Fatalf records the formatted entry without terminating the test binary.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.log("FATAL", fmt.Sprintf(msg, args...), nil)
}

// WithError returns a derived logger whose entries carry err.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{sink: m.sink, fields: m.fields, err: err}
}

// WithField returns a derived logger carrying one extra field.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a derived logger carrying extra fields.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	return &MockLogger{
		sink:   m.sink,
		fields: append(append([]Field(nil), m.fields...), fields...),
		err:    m.err,
	}
}

// Entries returns a snapshot of everything recorded so far, including
// entries written through derived loggers.
func (m *MockLogger) Entries() []LogEntry {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	return append([]LogEntry(nil), m.sink.entries...)
}

// HasEntry reports whether a message at the given level contains substr.
func (m *MockLogger) HasEntry(level, substr string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
