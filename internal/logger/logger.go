package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// String returns string representation of log level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses log level from string, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger provides leveled logging with key/value fields
type Logger struct {
	level Level
	out   *log.Logger
}

// New creates a new logger writing to stdout
func New(level Level) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a new logger with the given writer
func NewWithWriter(level Level, w io.Writer) *Logger {
	return &Logger{
		level: level,
		out:   log.New(w, "", 0),
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) write(level Level, msg string, fields ...interface{}) {
	if level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	sb.WriteString(msg)

	// Fields come in key, value pairs; a trailing odd key is dropped
	for i := 0; i+1 < len(fields); i += 2 {
		sb.WriteString(fmt.Sprintf(" %v=%v", fields[i], fields[i+1]))
	}

	l.out.Print(sb.String())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.write(DEBUG, msg, fields...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...interface{}) {
	l.write(INFO, msg, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.write(WARN, msg, fields...)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.write(ERROR, msg, fields...)
}
