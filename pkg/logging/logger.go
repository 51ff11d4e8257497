package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// core is the state shared by a JSONLogger and all of its children.
type core struct {
	mu    sync.Mutex
	out   io.Writer
	level atomic.Int32
	now   func() time.Time
}

// JSONLogger writes one JSON object per line.
type JSONLogger struct {
	core   *core
	fields []Field
}

// NewJSONLogger returns a logger writing to w that drops entries below level.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	c := &core{out: w, now: time.Now}
	c.level.Store(int32(level))
	return &JSONLogger{core: c}
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.write(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.write(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.write(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.write(ErrorLevel, msg, fields) }

func (l *JSONLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &JSONLogger{core: l.core, fields: append(l.fields[:len(l.fields):len(l.fields)], fields...)}
}

// SetLevel changes the level of this logger, its parent and every child.
func (l *JSONLogger) SetLevel(level Level) {
	l.core.level.Store(int32(level))
}

func (l *JSONLogger) Level() Level {
	return Level(l.core.level.Load())
}

func (l *JSONLogger) write(level Level, msg string, fields []Field) {
	if level < l.Level() {
		return
	}

	entry := LogEntry{
		Time:    l.core.now().UTC().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		entry.Fields = make(map[string]any, n)
		// Call-site fields override preset ones with the same key
		for _, f := range l.fields {
			entry.Fields[f.Key] = f.Value
		}
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		line, _ = json.Marshal(LogEntry{
			Time:    entry.Time,
			Level:   ErrorLevel.String(),
			Message: "unencodable log entry",
			Fields:  map[string]any{"msg": msg, "error": err.Error()},
		})
	}
	line = append(line, '\n')

	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	l.core.out.Write(line)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// DefaultLogger returns the process-wide logger. Until SetDefaultLogger is
// called it writes to stderr at the level named by LOG_LEVEL.
func DefaultLogger() Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewJSONLogger(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")))
	}
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger. A nil logger restores
// the lazily built stderr one.
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}
