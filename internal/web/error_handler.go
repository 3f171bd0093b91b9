package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// NavLink is one entry of the site navigation.
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
	Title string `json:"title"`
}

// NavFunc loads the site navigation.
type NavFunc func(ctx context.Context) ([]NavLink, error)

// ErrorView is everything an error page needs.
type ErrorView struct {
	Title   string
	Message string
	Nav     []NavLink
	Status  int
}

// ErrorRenderer turns an ErrorView into a component.
type ErrorRenderer func(v ErrorView) Component

// ErrorHandler is the single terminal handler for every failed request.
type ErrorHandler struct {
	nav    NavFunc
	render ErrorRenderer
	logger *slog.Logger
}

// NewErrorHandler creates an error handler. A nil nav renders pages without navigation;
// a nil render writes plain text.
func NewErrorHandler(nav NavFunc, render ErrorRenderer, logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ErrorHandler{nav: nav, render: render, logger: logger}
}

// View builds the error page model for err. A failing navigation lookup is
// logged and replaced with an empty navigation, so the error page itself never fails on it.
func (h *ErrorHandler) View(ctx context.Context, path string, err error) ErrorView {
	status := StatusOf(err)

	var links []NavLink
	if h.nav != nil {
		var navErr error
		links, navErr = h.nav(ctx)
		if navErr != nil {
			h.logger.ErrorContext(ctx, "navigation lookup failed while rendering error page",
				slog.String("path", path),
				slog.Any("error", navErr),
			)
			links = nil
		}
	}

	message := GenericMessage
	if status == http.StatusNotFound {
		message = notFoundMessage(err)
	}

	title := ServerErrorTitle
	var sc statusCoder
	if errors.As(err, &sc) {
		title = strconv.Itoa(status)
	}

	return ErrorView{
		Title:   title,
		Message: message,
		Nav:     links,
		Status:  status,
	}
}

// Handle logs err and renders the error page, unless a response already started.
func (h *ErrorHandler) Handle(c Context, err error) {
	path := c.Request().URL.Path
	h.logger.ErrorContext(c, "request failed",
		slog.String("path", path),
		slog.Int("status", StatusOf(err)),
		slog.Any("error", err),
	)

	if c.Written() {
		return
	}

	v := h.View(c, path, err)
	if h.render == nil {
		_ = c.String(v.Status, v.Message)
		return
	}
	if rerr := c.Render(v.Status, h.render(v)); rerr != nil {
		h.logger.ErrorContext(c, "failed to render error page", slog.Any("error", rerr))
	}
}

// notFoundMessage returns the 404 error's own text: an HTTPError's Message,
// otherwise the Error() of whatever carried the status.
func notFoundMessage(err error) string {
	if he := AsHTTPError(err); he != nil && he.Code == http.StatusNotFound {
		if he.Message != "" {
			return he.Message
		}
		return NotFoundMessage
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		if e, ok := sc.(error); ok && e.Error() != "" {
			return e.Error()
		}
	}
	return NotFoundMessage
}
