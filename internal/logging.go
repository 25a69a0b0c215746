package internal

import (
	"fmt"
	"io"
	"log"
	"os"
)

// InitLogging configures the standard logger used by the command entry points.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// Logger wraps the standard logger with an optional debug channel.
type Logger struct {
	*log.Logger
	debug bool
}

type LoggerOption struct {
	f func(*Logger)
}

// NewLogger returns a Logger writing to stdout with microsecond timestamps.
// Debugf output is dropped unless LoggerSetDebug(true) is given.
func NewLogger(options ...LoggerOption) *Logger {
	l := &Logger{Logger: log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)}

	for _, option := range options {
		option.f(l)
	}

	return l
}

// Discard returns a Logger that writes nowhere. Tests use it.
func Discard() *Logger {
	return NewLogger(LoggerSetOutput(io.Discard))
}

func LoggerSetOutput(w io.Writer) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetOutput(w)
		},
	}
}

func LoggerSetPrefix(p string) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetPrefix(p)
		},
	}
}

func LoggerSetFlags(flag int) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetFlags(flag)
		},
	}
}

func LoggerSetDebug(enabled bool) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.debug = enabled
		},
	}
}

// Debugf prints like Printf when debug output is enabled.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if !l.debug {
		return
	}
	_ = l.Output(2, "DEBUG "+fmt.Sprintf(format, v...))
}
