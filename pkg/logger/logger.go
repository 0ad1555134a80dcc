// Package logger configures the engine's structured logging and carries a
// per-unit-of-work identifier through a context.Context. "Unit of work" is
// deliberately generic: the crawler tags it with the location being
// fetched, the query processor tags it with a canonicalized query string —
// there is no HTTP request in this engine for the label to name literally.
package logger

import (
	"context"
	"log/slog"
	"os"
)

type contextKey struct{}

// Setup installs a slog handler at the given level ("debug", "info", "warn",
// "error") and format ("json" or anything else, which yields text) as the
// process-wide default logger.
func Setup(level string, format string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// WithUnitID attaches unitID — the location a crawl worker is fetching, or
// the canonical form of a query being answered — to ctx, so every log line
// emitted while handling that unit of work can be correlated by it.
func WithUnitID(ctx context.Context, unitID string) context.Context {
	return context.WithValue(ctx, contextKey{}, unitID)
}

// FromContext returns a logger tagged with ctx's unit ID, if WithUnitID was
// ever called on it or an ancestor context; otherwise it returns the plain
// default logger.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if unitID, ok := ctx.Value(contextKey{}).(string); ok {
		logger = logger.With("unit_id", unitID)
	}
	return logger
}

// WithComponent returns the default logger tagged with a component name,
// for collaborators that log outside of any per-unit-of-work context (the
// CLI entrypoint, the metrics server).
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
