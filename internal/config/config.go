package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Settings are the externally-configured defaults that are not part of
// the schedule itself. All values come from the environment.
type Settings struct {
	// WindowDurationHours is how long each maintenance window stays open (default 3).
	WindowDurationHours int
	// WindowCutoffHours is how long before the end of the window new task
	// invocations stop being scheduled (default 1).
	WindowCutoffHours int

	// TaskMaxConcurrency and TaskMaxErrors use the control plane's
	// count-or-percent form, e.g. "10" or "50%".
	TaskMaxConcurrency string
	TaskMaxErrors      string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string
}

func Load() Settings {
	return Settings{
		WindowDurationHours: getEnvInt("WINDOW_DURATION_HOURS", 3),
		WindowCutoffHours:   getEnvInt("WINDOW_CUTOFF_HOURS", 1),

		TaskMaxConcurrency: getEnv("TASK_MAX_CONCURRENCY", "50%"),
		TaskMaxErrors:      getEnv("TASK_MAX_ERRORS", "25%"),

		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// SetupLogging installs the default slog handler. format is "text" or
// "json"; level is one of debug, info, warn, error (default info).
func SetupLogging(format, level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
