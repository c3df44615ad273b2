package diskdb

import (
	"fmt"
	"log"
	"time"
)

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// Logger interface for custom logging implementations.
//
// The client logs connection lifecycle events only; it never logs on the
// caller's behalf for command failures, which are always returned as errors.
type Logger interface {
	// Debug logs a debug message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info message with optional fields
	Info(msg string, fields ...Field)

	// Error logs an error message with optional fields
	Error(msg string, fields ...Field)
}

// MetricsCollector interface for metrics collection
type MetricsCollector interface {
	// RecordCommand records a completed command with its duration
	RecordCommand(cmd string, duration time.Duration)

	// RecordNetworkBytes records network bytes received
	RecordNetworkBytes(bytes int64)

	// RecordReconnection records a dial event
	RecordReconnection()

	// RecordError records an error event by kind
	RecordError(errorType string)
}

// defaultLogger is a simple logger implementation using the standard log package
type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, fields ...Field) {
	// Suppressed by default; supply a Logger to capture debug output.
}

func (l *defaultLogger) Info(msg string, fields ...Field) {
	l.logWithFields("INFO", msg, fields...)
}

func (l *defaultLogger) Error(msg string, fields ...Field) {
	l.logWithFields("ERROR", msg, fields...)
}

func (l *defaultLogger) logWithFields(level, msg string, fields ...Field) {
	logMsg := level + ": " + msg
	for _, field := range fields {
		logMsg += " " + field.Key + "=" + formatValue(field.Value)
	}
	log.Println(logMsg)
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case error:
		return val.Error()
	default:
		return fmt.Sprintf("%v", val)
	}
}
