// Package logger provides the leveled console logger used across filescout.
//
// Messages carry a topic tag (the component emitting them) and optional
// structured key=value fields. The logger is safe for concurrent use and
// colorizes output automatically when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// Logger writes timestamped, level-filtered log lines to a single writer.
// A nil writer silently discards everything.
type Logger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// New creates a Logger writing to w at the given minimum level.
// Valid levels: debug, info, warn, error (case-insensitive); anything else
// defaults to info. Color is enabled only for os.Stdout/os.Stderr TTYs.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		writer:      w,
		level:       parseLevel(level),
		colorOutput: isTerminal(w),
	}
}

// Discard returns a logger that drops all output. Handy for tests and for
// components that want logging to be optional.
func Discard() *Logger {
	return New(nil, "error")
}

func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		// color.NoColor already folds in TTY detection and NO_COLOR
		return !color.NoColor
	}
	return false
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debug logs a debug-level message with the given topic and fields.
func (l *Logger) Debug(topic, message string, fields ...any) {
	l.log(levelDebug, "DEBUG", topic, message, fields)
}

// Info logs an info-level message with the given topic and fields.
func (l *Logger) Info(topic, message string, fields ...any) {
	l.log(levelInfo, "INFO", topic, message, fields)
}

// Warn logs a warn-level message with the given topic and fields.
func (l *Logger) Warn(topic, message string, fields ...any) {
	l.log(levelWarn, "WARN", topic, message, fields)
}

// Error logs an error-level message with the given topic and fields.
func (l *Logger) Error(topic, message string, fields ...any) {
	l.log(levelError, "ERROR", topic, message, fields)
}

// log formats and writes one line: "[HH:MM:SS] [LEVEL] [topic] message k=v".
// Fields are alternating key/value pairs; a trailing odd key is rendered
// with a missing-value placeholder rather than dropped.
func (l *Logger) log(level int, label, topic, message string, fields []any) {
	if l.writer == nil || level < l.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] [%s] %s", time.Now().Format("15:04:05"), l.formatLabel(label), topic, message)
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
		} else {
			fmt.Fprintf(&b, " %v=(missing)", fields[i])
		}
	}
	b.WriteByte('\n')

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.writer.Write([]byte(b.String()))
}

func (l *Logger) formatLabel(label string) string {
	if !l.colorOutput {
		return label
	}
	switch label {
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(label)
	case "INFO":
		return color.New(color.FgBlue).Sprint(label)
	case "WARN":
		return color.New(color.FgYellow).Sprint(label)
	case "ERROR":
		return color.New(color.FgRed).Sprint(label)
	}
	return label
}
