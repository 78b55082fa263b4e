package logger

import (
	"log/slog"
	"os"
)

// New creates a preconfigured slog.Logger. Output is JSON on stdout at info
// level, tagged with the service name so settlement events are attributable
// in shared log pipelines.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "refmart"))
}
