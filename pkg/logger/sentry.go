package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel raises the Sentry threshold above the default Warn.
	MinLevel slog.Level
}

// withSentry tees records at or above Warn (or cfg.MinLevel, if higher) to Sentry.
// Errors become issues, warnings are stored as Sentry logs. If the SDK fails
// to initialize, base is returned alone.
func withSentry(base slog.Handler, cfg SentryConfig) slog.Handler {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(base).Error("failed to initialize Sentry", slog.Any("error", err))
		return base
	}

	minLevel := max(cfg.MinLevel, slog.LevelWarn)
	return &teeHandler{
		primary:   base,
		secondary: sentryHandler(minLevel),
		minLevel:  minLevel,
	}
}

func sentryHandler(minLevel slog.Level) slog.Handler {
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if minLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}
