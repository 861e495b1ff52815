package observability

import (
	"log/slog"
	"os"

	"github.com/blairify/interview-engine/internal/config"
)

// SetupLogger configures the process logger: debug-level text output in dev,
// info-level JSON elsewhere.
func SetupLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{}
	var h slog.Handler
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(h).With(
		slog.String("service", cfg.OTELServiceName),
		slog.String("env", cfg.AppEnv),
	)
}
