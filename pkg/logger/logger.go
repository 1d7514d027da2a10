package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger key/value logger used by the API side
type Logger interface {
	Info(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Debug(msg string, kv ...interface{})

	InfoContext(ctx context.Context, msg string, kv ...interface{})
	ErrorContext(ctx context.Context, msg string, kv ...interface{})
	WarnContext(ctx context.Context, msg string, kv ...interface{})
	DebugContext(ctx context.Context, msg string, kv ...interface{})

	Sync() error
}

// FormatLogger printf style logger used by the queue worker
type FormatLogger interface {
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
	Sync() error
}

// ZapLogger implements both Logger and FormatLogger
type ZapLogger struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// NewZapLogger builds a JSON zap logger at the given level
func NewZapLogger(level string) (*ZapLogger, error) {
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return wrap(l), nil
}

// NewNop returns a logger that discards everything
func NewNop() *ZapLogger {
	return wrap(zap.NewNop())
}

func wrap(l *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: l, sugar: l.Sugar()}
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

// extractFields pulls the well-known request fields out of ctx
func extractFields(ctx context.Context) []interface{} {
	if ctx == nil {
		return nil
	}
	fields := make([]interface{}, 0, 8)
	for _, key := range []ctxKey{keyTraceID, keyCustomerID, keyRetailerID, keyActionType} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			fields = append(fields, string(key), v)
		}
	}
	if workerID, ok := ctx.Value(keyWorkerID).(int); ok {
		fields = append(fields, string(keyWorkerID), workerID)
	}
	return fields
}

func (l *ZapLogger) Info(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *ZapLogger) Error(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }
func (l *ZapLogger) Warn(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *ZapLogger) Debug(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }

func (l *ZapLogger) InfoContext(ctx context.Context, msg string, kv ...interface{}) {
	l.sugar.Infow(msg, append(extractFields(ctx), kv...)...)
}

func (l *ZapLogger) ErrorContext(ctx context.Context, msg string, kv ...interface{}) {
	l.sugar.Errorw(msg, append(extractFields(ctx), kv...)...)
}

func (l *ZapLogger) WarnContext(ctx context.Context, msg string, kv ...interface{}) {
	l.sugar.Warnw(msg, append(extractFields(ctx), kv...)...)
}

func (l *ZapLogger) DebugContext(ctx context.Context, msg string, kv ...interface{}) {
	l.sugar.Debugw(msg, append(extractFields(ctx), kv...)...)
}

func (l *ZapLogger) Debugf(ctx context.Context, format string, args ...interface{}) {
	l.sugar.Debugw(fmt.Sprintf(format, args...), extractFields(ctx)...)
}

func (l *ZapLogger) Infof(ctx context.Context, format string, args ...interface{}) {
	l.sugar.Infow(fmt.Sprintf(format, args...), extractFields(ctx)...)
}

func (l *ZapLogger) Warnf(ctx context.Context, format string, args ...interface{}) {
	l.sugar.Warnw(fmt.Sprintf(format, args...), extractFields(ctx)...)
}

func (l *ZapLogger) Errorf(ctx context.Context, format string, args ...interface{}) {
	l.sugar.Errorw(fmt.Sprintf(format, args...), extractFields(ctx)...)
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
