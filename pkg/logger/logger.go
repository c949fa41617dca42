// Package logger provides leveled, structured logging for codegen.
//
// Library packages default to a silent logger and accept one through
// WithLogger; the CLI installs a stderr logger at the configured level.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config value ("debug", "info", "warn", "error",
// "silent") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "off", "none":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// Logger provides structured logging with configurable levels
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	WithFields(fields ...Field) Logger
	SetLevel(level Level)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value any
}

// F is a convenience function for creating fields
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// standardLogger implements Logger. Loggers derived with WithFields share
// the parent's writer lock.
type standardLogger struct {
	level  Level
	out    io.Writer
	mu     *sync.Mutex
	fields []Field
	now    func() time.Time
}

// NewLogger creates a new logger with the specified level and output
func NewLogger(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &standardLogger{
		level: level,
		out:   out,
		mu:    &sync.Mutex{},
		now:   time.Now,
	}
}

// NewSilentLogger creates a logger that outputs nothing
func NewSilentLogger() Logger {
	return NewLogger(LevelSilent, io.Discard)
}

func (l *standardLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *standardLogger) WithFields(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)

	return &standardLogger{
		level:  l.level,
		out:    l.out,
		mu:     l.mu,
		fields: merged,
		now:    l.now,
	}
}

func (l *standardLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *standardLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *standardLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *standardLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *standardLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(l.now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(levelStyles[level].Render(fmt.Sprintf("%-5s", level.String())))
	b.WriteByte(' ')
	b.WriteString(msg)

	all := append(append([]Field{}, l.fields...), fields...)
	if len(all) > 0 {
		b.WriteString(" |")
		for _, f := range all {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.out, b.String())
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewLogger(LevelInfo, os.Stderr)
)

// SetDefault sets the global default logger
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the global default logger
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }
