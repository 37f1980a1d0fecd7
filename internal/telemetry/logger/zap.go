package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zapLogger implements Logger on a zap.SugaredLogger.
type zapLogger struct {
	s *zap.SugaredLogger
}

// New creates a new logger with the given configuration.
// It also sets the global level to cfg.Level.
func New(cfg Config) (Logger, error) {
	globalLevel.SetLevel(parseLevel(cfg.Level))

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default: // json
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, sink(cfg), globalLevel)

	opts := []zap.Option{zap.AddStacktrace(zapcore.DPanicLevel)}
	if cfg.AddSource {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &zapLogger{s: zap.New(core, opts...).Sugar()}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func sink(cfg Config) zapcore.WriteSyncer {
	if cfg.File.Path != "" {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}
	var out io.Writer = cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return zapcore.Lock(zapcore.AddSync(out))
}

func (l *zapLogger) Debug(msg string, args ...any) {
	l.s.Debugw(msg, args...)
}

func (l *zapLogger) Info(msg string, args ...any) {
	l.s.Infow(msg, args...)
}

func (l *zapLogger) Warn(msg string, args ...any) {
	l.s.Warnw(msg, args...)
}

func (l *zapLogger) Error(msg string, args ...any) {
	l.s.Errorw(msg, args...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{s: l.s.With(args...)}
}

// WithContext returns a logger carrying the ids stored in ctx.
func (l *zapLogger) WithContext(ctx context.Context) Logger {
	if id := ConnIDFromContext(ctx); id != "" {
		return l.With("conn_id", id)
	}
	return l
}

// Sync flushes buffered entries.
func (l *zapLogger) Sync() error {
	return l.s.Sync()
}
