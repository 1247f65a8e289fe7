package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/dimsheet/dimsheet/internal/config"
)

// New builds the application logger: a colored tint handler for dev, JSON
// for prod
func New(cfg *config.Config, version string) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	if cfg.Env == config.EnvDev {
		h := tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			AddSource:  cfg.IsDebug(),
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", cfg.AppName)
	}

	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h).With(
		"app", cfg.AppName,
		"version", version,
		"env", cfg.Env,
	)
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
