package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// NewJSONLogger wraps writer in a JSONLogger at the given minimum level.
// cmd/numagraph-run and cmd/numagraph-convert reach it once at startup
// through NewDefaultLogger; internal/engine's EdgeMap takes the
// resulting concrete *JSONLogger as its logger parameter.
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		writer: writer,
		level:  level,
		fields: make([]Field, 0),
	}
}

// NewDefaultLogger returns a logger writing JSON lines to stdout at
// InfoLevel — the driver binaries' starting point before attaching a
// run's RunID field via With.
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stdout, InfoLevel)
}

// log renders one entry: partition/round/mode fields set via With are
// merged under the call-site fields (a per-round Round/Latency always
// wins over a stale pre-set value of the same key).
func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fieldMap := make(map[string]any)

	for _, f := range l.fields {
		fieldMap[f.Key] = f.Value
	}

	for _, f := range fields {
		fieldMap[f.Key] = f.Value
	}

	entry := LogEntry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}

	if len(fieldMap) > 0 {
		entry.Fields = fieldMap
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] Failed to marshal log entry: %v\n", err)
		return
	}

	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// Debug logs per-round frontier transitions (SPEC_FULL.md §2): edge_map
// mode selection, frontier size before/after a round, and similar
// detail too noisy for Info on a multi-round benchmark run.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs partitioner and VEBO summaries and round-complete lines —
// the level cmd/numagraph-run runs at by default.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs recoverable conditions, e.g. a metrics server that exited.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs a failed load, partition build, or algorithm round before
// the driver exits non-zero.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With returns a child logger carrying fields on every subsequent call —
// cmd/numagraph-run attaches a RunID this way once at startup so every
// round's log line for that invocation carries the same run id.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		writer: l.writer,
		level:  l.level,
		fields: newFields,
	}
}

// SetLevel changes the minimum level a running logger emits at.
func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel reports the current minimum level.
func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

var (
	defaultLogger Logger
	once          sync.Once
)

// DefaultLogger returns the package-level logger, reading LOG_LEVEL
// from the environment on first use — the fallback for code that runs
// ahead of a driver binary wiring up its own *JSONLogger (library
// packages under internal/ generally take a Logger parameter instead).
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultLogger = NewJSONLogger(os.Stdout, level)
	})
	return defaultLogger
}

// SetDefaultLogger replaces the package-level logger, e.g. with a
// NopLogger in a test that doesn't want engine log lines on stdout.
func SetDefaultLogger(logger Logger) {
	once.Do(func() {}) // keep a later first DefaultLogger call from overwriting logger
	defaultLogger = logger
}

// Debug logs through the package-level default logger.
func Debug(msg string, fields ...Field) {
	DefaultLogger().Debug(msg, fields...)
}

// Info logs through the package-level default logger.
func Info(msg string, fields ...Field) {
	DefaultLogger().Info(msg, fields...)
}

// Warn logs through the package-level default logger.
func Warn(msg string, fields ...Field) {
	DefaultLogger().Warn(msg, fields...)
}

// ErrorLog logs through the package-level default logger. Named
// ErrorLog, not Error, so it doesn't collide with the Error field
// constructor callers also import from this package.
func ErrorLog(msg string, fields ...Field) {
	DefaultLogger().Error(msg, fields...)
}

// With attaches fields to the package-level default logger.
func With(fields ...Field) Logger {
	return DefaultLogger().With(fields...)
}

// StartTimer begins timing a step worth reporting on its own, e.g. a
// VEBO recompute or a partition.Build call outside the per-round
// edge_map timing edge_map.go's Options.Metrics already covers.
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs msg at Info with the elapsed duration appended as a Latency
// field.
func (t *TimedOperation) End() {
	elapsed := time.Since(t.start)
	t.logger.Info(t.msg, append(t.fields, Latency(elapsed))...)
}

// EndWithLevel logs at the given level instead of Info, replacing the
// timer's original message.
func (t *TimedOperation) EndWithLevel(level Level, msg string) {
	elapsed := time.Since(t.start)
	fields := append(t.fields, Latency(elapsed))
	switch level {
	case DebugLevel:
		t.logger.Debug(msg, fields...)
	case InfoLevel:
		t.logger.Info(msg, fields...)
	case WarnLevel:
		t.logger.Warn(msg, fields...)
	case ErrorLevel:
		t.logger.Error(msg, fields...)
	}
}

// EndError logs the timed step as a failure, e.g. a partition build
// that returned an error partway through.
func (t *TimedOperation) EndError(err error) {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, append(t.fields, Latency(elapsed), Error(err))...)
}
