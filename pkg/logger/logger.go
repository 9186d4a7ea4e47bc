package logger

import (
	"log/slog"
	"os"
)

// serviceName tags every line so aggregated output still traces back to this
// deployable once the route groups are split across instances.
const serviceName = "condo-management"

var defaultLogger *slog.Logger

func Init(env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler).With(slog.String("service", serviceName))
	slog.SetDefault(defaultLogger)
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}
