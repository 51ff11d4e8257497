package logging

import (
	"fmt"
	"strings"
)

// Level orders log severities; a logger drops entries below its level.
type Level int32

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
	return levelNames[l]
}

// ParseLevel maps a level name to a Level, ignoring case and surrounding
// space. "warning" is accepted for WarnLevel. Unknown names yield
// InfoLevel; use LookupLevel to detect them.
func ParseLevel(s string) Level {
	l, _ := LookupLevel(s)
	return l
}

// LookupLevel is ParseLevel with an ok flag for unknown names.
func LookupLevel(s string) (Level, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return WarnLevel, true
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), true
		}
	}
	return InfoLevel, false
}

// Field is one structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logger every package writes through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child carrying fields on every entry. Children share
	// their parent's output and level.
	With(fields ...Field) Logger

	SetLevel(level Level)
	Level() Level
}

// LogEntry is the JSON shape of one log line.
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// NopLogger drops every entry.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (n NopLogger) With(...Field) Logger { return n }
func (NopLogger) SetLevel(Level)         {}
func (NopLogger) Level() Level           { return ErrorLevel + 1 }

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return NopLogger{}
}
