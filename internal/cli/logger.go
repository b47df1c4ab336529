package cli

import (
	"io"
	"log/slog"

	"github.com/benoitkugler/pixscene/internal/config"
)

// newLogger creates the logger of a run from its configuration. It does not
// set the global logger, allowing for isolated logger instances.
func newLogger(cfg config.Config, outW io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
