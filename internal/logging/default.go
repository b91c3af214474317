package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// GetLogger returns the package default logger, created lazily from the
// KUENTA_LOG_LEVEL and KUENTA_LOG_FORMAT environment variables.
func GetLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogrusAdapter("", "")
	})
	return defaultLogger
}

// SetAllLogLevels forces the given level on the standard logrus logger and on
// the package default, so loggers created before configuration pick it up.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	if adapter, ok := GetLogger().(*LogrusAdapter); ok {
		adapter.logger.SetLevel(level)
	}
}
