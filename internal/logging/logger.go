// Package logging decouples the rest of the application from the logging
// backend. Components receive a Logger through their constructors and fall
// back to the package default when given nil.
package logging

// Field is one key-value pair of structured log context.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the structured logging contract used throughout kuenta.
// With* methods return derived loggers carrying the extra context; the
// receiver is never mutated.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger

	// Fatal and Fatalf log at fatal level and terminate the program.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})
}
