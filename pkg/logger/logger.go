package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines the severity of a log message
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

// ParseLevel разбирает уровень логирования из строки ("debug", "info", ...).
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a thin wrapper around zap.SugaredLogger that keeps both
// printf-style (Info, Error) and key-value (Infow, Errorw) call sites.
type Logger struct {
	s *zap.SugaredLogger
}

// New creates a new Logger instance
func New(level Level) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Конфигурация статическая, сюда попадать не должны
		panic(err)
	}

	return &Logger{s: zl.Sugar()}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) { l.s.Debugf(format, v...) }

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) { l.s.Infof(format, v...) }

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) { l.s.Warnf(format, v...) }

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) { l.s.Errorf(format, v...) }

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, v ...interface{}) { l.s.Fatalf(format, v...) }

// Debugw logs a debug message with key-value pairs
func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) { l.s.Debugw(msg, keysAndValues...) }

// Infow logs an info message with key-value pairs
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) { l.s.Infow(msg, keysAndValues...) }

// Warnw logs a warning message with key-value pairs
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) { l.s.Warnw(msg, keysAndValues...) }

// Errorw logs an error message with key-value pairs
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) { l.s.Errorw(msg, keysAndValues...) }

// Fatalw logs a fatal message with key-value pairs and exits
func (l *Logger) Fatalw(msg string, keysAndValues ...interface{}) { l.s.Fatalw(msg, keysAndValues...) }

// Sync flushes any buffered log entries
func (l *Logger) Sync() error { return l.s.Sync() }
