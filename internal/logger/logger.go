package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger with additional functionality
type Logger struct {
	*zap.Logger
}

// NewLogger creates a new logger instance with production configuration
func NewLogger() (*Logger, error) {
	config := zap.NewProductionConfig()

	// Set the output to stdout
	config.OutputPaths = []string{"stdout"}

	// Set the error output to stderr
	config.ErrorOutputPaths = []string{"stderr"}

	// Set the log level
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	// Create the logger
	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// NewNopLogger creates a logger that discards all output. Useful in tests
// and anywhere a *Logger is required but output is unwanted.
func NewNopLogger() *Logger {
	return &Logger{
		Logger: zap.NewNop(),
	}
}

// With returns a child logger with the given fields attached.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
	}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}
	return nil
}
