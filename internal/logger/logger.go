package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

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
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel accepts a level name or any prefix of it, ignoring case.
// Unknown text yields LevelInfo and false.
func ParseLevel(text string) (Level, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return LevelInfo, false
	}
	for l := LevelDebug; l <= LevelOff; l++ {
		if strings.HasPrefix(strings.ToLower(l.String()), text) {
			return l, true
		}
	}
	return LevelInfo, false
}

// Logger writes leveled, timestamped lines. Sub-loggers share the writer
// and its lock.
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	minLevel Level
	prefix   string
	now      func() time.Time
}

func New(out io.Writer, minLevel Level, prefix string) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		mu:       &sync.Mutex{},
		out:      out,
		minLevel: minLevel,
		prefix:   prefix,
		now:      time.Now,
	}
}

// Default logs INFO and above to stderr.
func Default() *Logger {
	return New(os.Stderr, LevelInfo, "")
}

// Discard drops everything. Used where no log is wanted, mostly tests.
func Discard() *Logger {
	return New(io.Discard, LevelOff, "")
}

// WithPrefix creates a sub-logger with an additional prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	newPrefix := prefix
	if l.prefix != "" {
		newPrefix = l.prefix + "/" + prefix
	}
	return &Logger{
		mu:       l.mu,
		out:      l.out,
		minLevel: l.minLevel,
		prefix:   newPrefix,
		now:      l.now,
	}
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.minLevel && l.minLevel != LevelOff
}

func (l *Logger) log(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := ""
	if l.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", l.prefix)
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "%s %s %s%s\n", l.now().Format("15:04:05.000"), level, prefix, msg)
}

func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Step logs the start of a named step and returns a func logging its end
// with the elapsed time.
func (l *Logger) Step(name string) func() {
	start := l.now()
	l.Debug("start %s", name)
	return func() {
		l.Info("%s took %v", name, l.now().Sub(start).Round(time.Millisecond))
	}
}

// Writer adapts the logger to an io.Writer at the given level, one line per
// Write. Library loggers that want a writer (fiber's) go through this.
func (l *Logger) Writer(level Level) io.Writer {
	return lineWriter{l: l, level: level}
}

type lineWriter struct {
	l     *Logger
	level Level
}

func (w lineWriter) Write(p []byte) (int, error) {
	for _, ln := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if ln != "" {
			w.l.log(w.level, "%s", ln)
		}
	}
	return len(p), nil
}
