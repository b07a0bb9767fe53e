package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap to provide structured logging behind a small surface.
type Logger struct {
	logger *zap.Logger
}

// Field holds a key-value pair to be written to the log.
type Field struct {
	Key   string
	Value any
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a production logger at the given level ("debug", "info",
// "warn", "error"; anything else falls back to info).
func New(level string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.MessageKey = "message"

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger: l}, nil
}

// NewNop returns a logger that discards everything. Handy in tests.
func NewNop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

func zapFields(fields []Field) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		zf = append(zf, zap.Any(f.Key, f.Value))
	}
	return zf
}

func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, zapFields(fields)...)
}

func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, zapFields(fields)...)
}

func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, zapFields(fields)...)
}

func (l *Logger) Error(err error, fields ...Field) {
	l.logger.Error(err.Error(), zapFields(fields)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}
