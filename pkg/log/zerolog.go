package log

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	adspendErrors "github.com/YuminosukeSato/adspend/pkg/errors"
)

// RouteWarningsToZerolog sends every pkg/errors warning to zl. Warnings that
// implement zerolog.LogObjectMarshaler are embedded as structured fields.
func RouteWarningsToZerolog(zl zerolog.Logger) {
	adspendErrors.SetZerologWarnFunc(func(w error) {
		ev := zl.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}

// NewZerolog returns a zerolog logger writing JSON (or console text) to w.
func NewZerolog(w io.Writer, format, level string) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := zerolog.InfoLevel
	switch level {
	case "", "info":
	case "warning":
		lvl = zerolog.WarnLevel
	default:
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), adspendErrors.NewValidationError("logging.level", "must be one of debug, info, warn, error", level)
		}
		lvl = parsed
	}
	if format == "console" || format == "text" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// zerologProvider hands out loggers backed by zerolog.
type zerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider wraps a zerolog logger as a provider.
func NewZerologProvider(zl zerolog.Logger) LoggerProvider {
	return &zerologProvider{base: zl}
}

func (p *zerologProvider) GetLogger() Logger { return &zerologLogger{l: p.base} }

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{l: p.base.With().Str(ComponentKey, name).Logger()}
}

func (p *zerologProvider) SetLevel(level Level) {
	p.base = p.base.Level(zerologLevelOf(level))
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.l.Debug().Fields(fields).Msg(msg) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.l.Info().Fields(fields).Msg(msg) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.l.Warn().Fields(fields).Msg(msg) }

func (z *zerologLogger) Error(msg string, fields ...any) {
	rest, err := splitErr(fields)
	ev := z.l.Error()
	if err != nil {
		ev = ev.Err(err)
		if m, ok := asMarshaler(err); ok {
			ev = ev.Object("error_detail", m)
		}
		if kind := adspendErrors.KindOf(err); kind != adspendErrors.KindUnknown {
			ev = ev.Str(ErrorKindKey, kind.String())
		}
	}
	ev.Fields(rest).Msg(msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{l: z.l.With().Fields(fields).Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return zerologLevelOf(level) >= z.l.GetLevel()
}

// asMarshaler finds the first error in the chain that knows how to
// describe itself to zerolog.
func asMarshaler(err error) (zerolog.LogObjectMarshaler, bool) {
	var m zerolog.LogObjectMarshaler
	if adspendErrors.As(err, &m) {
		return m, true
	}
	return nil, false
}

func zerologLevelOf(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
