package web

import (
	"log/slog"
	"net/http"

	"github.com/cse340/motors/pkg/cookie"
)

// Option configures the application.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieManager sets the cookie manager shared by every request.
func WithCookieManager(m *cookie.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.cookieManager = m
		}
	}
}

// WithStages appends stages to the request pipeline, in order.
func WithStages(stages ...Stage) Option {
	return func(a *App) {
		a.pipeline = append(a.pipeline, stages...)
	}
}

// WithDispatcher sets the route dispatcher.
func WithDispatcher(d *Dispatcher) Option {
	return func(a *App) {
		if d != nil {
			a.dispatcher = d
		}
	}
}

// WithErrorHandler sets the terminal error handler.
func WithErrorHandler(h *ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithStatic serves static assets ahead of the pipeline.
func WithStatic(s StaticServer) Option {
	return func(a *App) {
		a.static = s
	}
}

// WithReadiness serves h at ReadinessPath.
func WithReadiness(h http.Handler) Option {
	return func(a *App) {
		a.readiness = h
	}
}
