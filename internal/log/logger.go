// Package log is a thin package-level facade over logrus.
//
// The terminal belongs to the UI while the browser runs, so output normally
// goes to a file configured with SetOutput.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	return l
}

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetDebug enables or disables debug level output.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// IsDebug reports whether debug output is enabled.
func IsDebug() bool {
	return logger.IsLevelEnabled(logrus.DebugLevel)
}

// LogWithFields returns an entry carrying the given fields.
func LogWithFields(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return logger.WithFields(lf)
}

func Info(args ...interface{})  { logger.Info(args...) }
func Debug(args ...interface{}) { logger.Debug(args...) }
func Warn(args ...interface{})  { logger.Warn(args...) }
func Error(args ...interface{}) { logger.Error(args...) }

func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
