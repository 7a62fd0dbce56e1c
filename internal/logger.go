package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// NewLogger builds the process-wide logger. Production gets JSON with
// RFC 3339 timestamps for the log pipeline; everything else gets the
// human-readable text handler.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "info", "":
		lvl.Set(slog.LevelInfo)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		slog.Default().Warn("unknown log level, defaulting to info", slog.String("value", level))
	}

	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("time", a.Value.Time().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	return slog.New(h)
}
