// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level sets the minimum severity a Logger emits.
type Level int8

const (
	LevelDebug = Level(zapcore.DebugLevel)
	LevelInfo  = Level(zapcore.InfoLevel)
	LevelWarn  = Level(zapcore.WarnLevel)
	LevelError = Level(zapcore.ErrorLevel)
)

// TraceIDFn returns the trace id carried by the given context. The logger
// calls it for every entry so log lines can be joined with traces.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON log entries tagged with the service name.
type Logger struct {
	z         *zap.SugaredLogger
	traceIDFn TraceIDFn
}

// New constructs a Logger writing to w at the given minimum level.
// traceIDFn may be nil, in which case entries carry no trace id.
func New(w io.Writer, level Level, service string, traceIDFn TraceIDFn) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), zapcore.Level(level))
	z := zap.New(core).Sugar().With("service", service)

	return &Logger{z: z, traceIDFn: traceIDFn}
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Debugw, msg, args)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Infow, msg, args)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Warnw, msg, args)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.write(ctx, l.z.Errorw, msg, args)
}

// Sync flushes any buffered entries. Call it before the process exits.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) write(ctx context.Context, fn func(string, ...any), msg string, args []any) {
	if l.traceIDFn != nil {
		args = append(args, "trace_id", l.traceIDFn(ctx))
	}
	fn(msg, args...)
}
