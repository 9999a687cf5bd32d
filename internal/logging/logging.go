package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

type Logger struct {
	enableInfo  bool
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
}

func NewLogger(stderr io.Writer) *Logger {
	return &Logger{
		enableInfo:  true,
		infoLogger:  log.NewWithOptions(stderr, log.Options{Prefix: "info"}),
		warnLogger:  log.NewWithOptions(stderr, log.Options{Prefix: "warn"}),
		errorLogger: log.NewWithOptions(stderr, log.Options{Prefix: "error"}),
		debugLogger: log.NewWithOptions(stderr, log.Options{Prefix: "debug"}),
	}
}

// Quiet suppresses informational output; warnings and errors still print.
func (l *Logger) Quiet() {
	l.enableInfo = false
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.enableInfo {
		l.infoLogger.Printf(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warnLogger.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.errorLogger.Printf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.debugLogger.Printf(format, args...)
}
