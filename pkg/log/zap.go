package log

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	adspendErrors "github.com/YuminosukeSato/adspend/pkg/errors"
)

// ZapOptions selects the zap configuration used by NewZapProvider.
type ZapOptions struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string // optional, defaults to stderr
}

// zapProvider hands out loggers backed by a single *zap.Logger.
type zapProvider struct {
	base  *zap.Logger
	level zap.AtomicLevel
}

// NewZapProvider builds a zap logger from opts. The caller should call the
// returned sync function before exiting.
func NewZapProvider(opts ZapOptions) (LoggerProvider, func() error, error) {
	zapLevel, err := toZapLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var config zap.Config
	switch opts.Format {
	case "console", "text":
		config = zap.NewDevelopmentConfig()
	case "json", "":
		config = zap.NewProductionConfig()
	default:
		return nil, nil, adspendErrors.NewValidationError("logging.format", "must be json or console", opts.Format)
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if opts.OutputFile != "" {
		if dir := filepath.Dir(opts.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, adspendErrors.Wrapf(err, "failed to create log directory %s", dir)
			}
		}
		config.OutputPaths = []string{opts.OutputFile}
		config.ErrorOutputPaths = []string{opts.OutputFile}
	}

	base, err := config.Build()
	if err != nil {
		return nil, nil, adspendErrors.Wrap(err, "failed to build zap logger")
	}
	return &zapProvider{base: base, level: config.Level}, base.Sync, nil
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{s: l.Sugar(), core: l.Core()}
}

func (p *zapProvider) GetLogger() Logger { return NewZapLogger(p.base) }

func (p *zapProvider) GetLoggerWithName(name string) Logger {
	return NewZapLogger(p.base.Named(name).With(zap.String(ComponentKey, name)))
}

func (p *zapProvider) SetLevel(level Level) {
	p.level.SetLevel(zapLevelOf(level))
}

type zapLogger struct {
	s    *zap.SugaredLogger
	core zapcore.Core
}

func (z *zapLogger) Debug(msg string, fields ...any) { z.s.Debugw(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...any)  { z.s.Infow(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...any)  { z.s.Warnw(msg, fields...) }

func (z *zapLogger) Error(msg string, fields ...any) {
	rest, err := splitErr(fields)
	if err != nil {
		extra := []any{zap.Error(err)}
		if kind := adspendErrors.KindOf(err); kind != adspendErrors.KindUnknown {
			extra = append(extra, ErrorKindKey, kind.String())
		}
		rest = append(extra, rest...)
	}
	z.s.Errorw(msg, rest...)
}

func (z *zapLogger) With(fields ...any) Logger {
	s := z.s.With(fields...)
	return &zapLogger{s: s, core: s.Desugar().Core()}
}

func (z *zapLogger) Enabled(_ context.Context, level Level) bool {
	return z.core.Enabled(zapLevelOf(level))
}

func zapLevelOf(level Level) zapcore.Level {
	switch {
	case level <= LevelDebug:
		return zapcore.DebugLevel
	case level <= LevelInfo:
		return zapcore.InfoLevel
	case level <= LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func toZapLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, adspendErrors.NewValidationError("logging.level", "must be one of debug, info, warn, error", level)
	}
}
