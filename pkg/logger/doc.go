// Package logger builds the process-wide *slog.Logger.
//
// Output is JSON on stdout unless LOG_FORMAT=text. Every record passes through
// the registered ContextExtractor functions, so request-scoped values such as
// the request ID land on each line without being threaded through call sites:
//
//	log := logger.NewFromConfig(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
//	log.InfoContext(c.Context(), "vehicle viewed", slog.Int("inv_id", id))
//
// When SENTRY_DSN is set, error records also become Sentry issues and warnings
// are shipped as Sentry logs. A missing DSN, or an SDK that fails to start,
// leaves plain stdout logging in place.
//
// NewNope discards everything and is meant for tests.
package logger
