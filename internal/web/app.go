package web

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/cse340/motors/pkg/cookie"
	"github.com/cse340/motors/pkg/health"
	"github.com/cse340/motors/pkg/logger"
)

// Health probe paths. Both bypass static files, stages and routes.
const (
	LivenessPath  = "/health"
	ReadinessPath = "/health/ready"
)

const panicStackSize = 4096

// StaticServer serves a request from static assets when it can.
// It returns false, without writing, when no asset matches.
type StaticServer interface {
	ServeStatic(w http.ResponseWriter, r *http.Request) bool
}

// App is the root http.Handler. Request order: health probes, static assets,
// stage pipeline, dispatcher, and the error handler for anything that failed.
// App is immutable after creation; all configuration is done via New().
type App struct {
	logger        *slog.Logger
	cookieManager *cookie.Manager
	static        StaticServer
	dispatcher    *Dispatcher
	errorHandler  *ErrorHandler
	liveness      http.Handler
	readiness     http.Handler
	pipeline      Pipeline
}

// New creates an application with the given options.
func New(opts ...Option) *App {
	a := &App{
		logger:        logger.NewNope(),
		cookieManager: cookie.New(),
		dispatcher:    NewDispatcher(),
		liveness:      health.LivenessHandler(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.errorHandler == nil {
		a.errorHandler = NewErrorHandler(nil, nil, a.logger)
	}
	return a
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case LivenessPath:
		a.liveness.ServeHTTP(w, r)
		return
	case ReadinessPath:
		if a.readiness != nil {
			a.readiness.ServeHTTP(w, r)
			return
		}
	}

	start := time.Now()
	rw := NewResponseWriter(w)
	c := newContext(rw, r, a.logger, a.cookieManager)

	defer func() {
		if rec := recover(); rec != nil {
			// The error handler itself panicked; answer with a bare 500.
			a.logger.ErrorContext(c, "panic while handling error", slog.Any("panic", rec))
			if !rw.Written() {
				http.Error(rw, GenericMessage, http.StatusInternalServerError)
			}
		}
		a.logger.InfoContext(c, "request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rw.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}()

	if err := a.serve(c); err != nil {
		a.errorHandler.Handle(c, err)
	}
}

// serve runs the request to completion and returns the error to render, if any.
func (a *App) serve(c *requestContext) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := make([]byte, panicStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			err = &PanicError{Value: rec, Stack: stack}
		}
	}()

	if a.static != nil && isRead(c.request.Method) && a.static.ServeStatic(c.responseWriter, c.request) {
		return nil
	}

	res := a.pipeline.Run(c)
	switch res.Outcome {
	case OutcomeRespond:
		return nil
	case OutcomeFail:
		return res.Err
	}

	if err := a.dispatcher.Dispatch(c); err != nil {
		if errors.Is(err, ErrNoRoute) {
			return ErrNotFound(NotFoundMessage)
		}
		return err
	}

	// A handler that wrote nothing still flushes before-write hooks.
	if !c.responseWriter.Written() {
		c.responseWriter.WriteHeader(http.StatusNoContent)
	}
	return nil
}

func isRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}
