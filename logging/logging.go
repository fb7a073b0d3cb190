package logging

import (
	"io"
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// Logger filters log messages by level before handing them to the standard log package
type Logger struct {
	level int
	l     *log.Logger
}

// CreateLogger is a factory for Loggers which emit messages at or above level to out
func CreateLogger(level int, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{level: level, l: log.New(out, "", log.LstdFlags)}
}

// Logf logs a message at the given level
func (lg *Logger) Logf(level int, format string, args ...interface{}) {
	if lg == nil || level < lg.level {
		return
	}
	lg.l.Printf(LogLevelToString(level)+" "+format, args...)
}

// Debugf logs a message at DebugLevel
func (lg *Logger) Debugf(format string, args ...interface{}) {
	lg.Logf(DebugLevel, format, args...)
}

// Infof logs a message at InfoLevel
func (lg *Logger) Infof(format string, args ...interface{}) {
	lg.Logf(InfoLevel, format, args...)
}

// Errorf logs a message at ErrorLevel
func (lg *Logger) Errorf(format string, args ...interface{}) {
	lg.Logf(ErrorLevel, format, args...)
}
