package log

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps a slog logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }

func (s *slogLogger) Error(msg string, fields ...any) {
	rest, err := splitErr(fields)
	if err != nil {
		rest = append([]any{ErrAttr(err)}, rest...)
	}
	s.l.Error(msg, rest...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// slogProvider hands out slog-backed loggers. SetLevel is a no-op unless
// the provider was built by SetupLogger, which owns the handler's LevelVar.
type slogProvider struct {
	base  *slog.Logger
	level *slog.LevelVar
}

// NewSlogProvider creates a provider around an existing slog logger.
func NewSlogProvider(l *slog.Logger) LoggerProvider {
	return &slogProvider{base: l}
}

func (p *slogProvider) GetLogger() Logger { return NewSlogLogger(p.base) }

func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return NewSlogLogger(p.base.With(ComponentKey, name))
}

func (p *slogProvider) SetLevel(level Level) {
	if p.level != nil {
		p.level.Set(slog.Level(level))
	}
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider
)

func defaultProvider() LoggerProvider {
	return &slogProvider{base: slog.Default()}
}

// SetProvider replaces the package-wide provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

func currentProvider() LoggerProvider {
	providerMu.RLock()
	p := provider
	providerMu.RUnlock()
	if p != nil {
		return p
	}
	return defaultProvider()
}

// GetLogger returns a logger from the current provider.
func GetLogger() Logger {
	return currentProvider().GetLogger()
}

// GetLoggerWithName returns a component-tagged logger from the current provider.
func GetLoggerWithName(name string) Logger {
	return currentProvider().GetLoggerWithName(name)
}

// NewNopLogger returns a Logger that discards every record.
func NewNopLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(LevelError + 1)})))
}
