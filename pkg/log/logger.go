package log

import (
	"io"
	"log/slog"
	"os"

	adspendErrors "github.com/YuminosukeSato/adspend/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// SetupLogger installs a slog handler as the process default and points the
// package provider at it. format is "json" or "text"; w defaults to stderr
// so the console report on stdout stays clean.
func SetupLogger(loglevel, format string, w io.Writer) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	if w == nil {
		w = os.Stderr
	}

	lv := new(slog.LevelVar)
	lv.Set(level)

	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     lv,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}

	var handler slog.Handler
	switch format {
	case "", "json":
		handler = slog.NewJSONHandler(w, &ops)
	case "text", "console":
		handler = slog.NewTextHandler(w, &ops)
	default:
		return adspendErrors.NewValidationError("logging.format", "must be json or text", format)
	}

	l := slog.New(WrapByErrFmtHandler(handler))
	slog.SetDefault(l)
	SetProvider(&slogProvider{base: l, level: lv})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, adspendErrors.NewValidationError("logging.level", "must be one of debug, info, warn, error", level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
