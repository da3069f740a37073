package util

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	baseMu     sync.RWMutex
	baseLogger = zap.NewNop()
)

// InitLogger builds the process-wide zap logger. Until it is called every
// Logger writes to a no-op core.
func InitLogger(env, level string) error {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	baseMu.Lock()
	baseLogger = built
	baseMu.Unlock()
	return nil
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	baseMu.RLock()
	defer baseMu.RUnlock()
	_ = baseLogger.Sync()
}

// Logger provides consistent logging across services
type Logger struct {
	prefix string
}

// NewLogger creates a new logger with a prefix
func NewLogger(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

func (l *Logger) sugar() *zap.SugaredLogger {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return baseLogger.Named(l.prefix).Sugar()
}

// Start logs the start of a process
func (l *Logger) Start(name string) {
	l.sugar().Debugf(LogStart, name)
}

// End logs the end of a process
func (l *Logger) End(name string) {
	l.sugar().Debugf(LogEnd, name)
}

// Section logs a section header
func (l *Logger) Section(name string) {
	l.sugar().Debugf(LogSection, name)
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar().Debugw(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar().Infow(msg, keysAndValues...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, err error, keysAndValues ...interface{}) {
	l.sugar().Warnw(msg, withError(keysAndValues, err)...)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, keysAndValues ...interface{}) {
	l.sugar().Errorw(msg, withError(keysAndValues, err)...)
}

// Success logs a success message
func (l *Logger) Success(msg string, keysAndValues ...interface{}) {
	l.sugar().Infow("✓ "+msg, keysAndValues...)
}

func withError(keysAndValues []interface{}, err error) []interface{} {
	if err == nil {
		return keysAndValues
	}
	return append(keysAndValues, "error", err)
}
