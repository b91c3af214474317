package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Environment variables consulted when level or format are not configured
// explicitly. They let early package-init logging respect the requested
// verbosity before viper config is loaded.
const (
	EnvLogLevel  = "KUENTA_LOG_LEVEL"
	EnvLogFormat = "KUENTA_LOG_FORMAT"
)

// LogrusAdapter backs the Logger interface with logrus.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

var _ Logger = (*LogrusAdapter)(nil)

// NewLogrusAdapter builds a Logger at the given level ("debug", "info",
// "warn", "error") and format ("text" or "json"). An empty level or format
// falls back to KUENTA_LOG_LEVEL / KUENTA_LOG_FORMAT, then to info/text.
// An unparseable level logs a warning and uses info.
func NewLogrusAdapter(level, format string) Logger {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if format == "" {
		format = os.Getenv(EnvLogFormat)
	}

	logger := logrus.New()

	logLevel := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			logger.Warnf("Invalid log level '%s', using 'info'", level)
		} else {
			logLevel = parsed
		}
	}
	logger.SetLevel(logLevel)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &LogrusAdapter{logger: logger, entry: logrus.NewEntry(logger)}
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) *LogrusAdapter {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

func convertFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Debug(msg)
}

func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Info(msg)
}

func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Warn(msg)
}

func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Error(msg)
}

// WithError attaches an error field to a derived logger.
func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

// WithField attaches a single field to a derived logger.
func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

// WithFields attaches several fields to a derived logger.
func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.entry.WithFields(convertFields(fields)))
}

func (l *LogrusAdapter) Fatal(msg string, fields ...Field) {
	l.entry.WithFields(convertFields(fields)).Fatal(msg)
}

func (l *LogrusAdapter) Fatalf(msg string, args ...interface{}) {
	l.entry.Fatalf(msg, args...)
}
