package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cse340/motors/pkg/cookie"
	"github.com/cse340/motors/pkg/session"
	"github.com/cse340/motors/pkg/token"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access plus the state attached by the stages.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the wrapped response writer.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapper, for registering before-write hooks.
	ResponseWriter() *ResponseWriter

	// Param returns a route parameter of the matched leaf route, or "".
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// Form returns a decoded body field by name.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Body returns the payload decoded by the body stage.
	Body() Body

	// SetBody records the decoded payload.
	SetBody(b Body)

	// Cookies returns the request cookies parsed by the cookie stage.
	Cookies() map[string]string

	// SetCookies records the parsed cookie jar.
	SetCookies(m map[string]string)

	// CookieManager returns the manager used to write cookies.
	CookieManager() *cookie.Manager

	// Session returns the attached session, or nil before the session stage ran.
	Session() *session.Session

	// SetSession attaches the session.
	SetSession(s *session.Session)

	// Flashes returns pending flash messages, consuming them on first call.
	// Later calls in the same request return the same messages.
	Flashes() []session.Flash

	// SetFlashSource installs the projection that yields pending messages.
	SetFlashSource(fn func() []session.Flash)

	// AddFlash queues a message for the next rendered page.
	AddFlash(kind, text string)

	// Identity returns the authenticated account, if any.
	Identity() (token.Identity, bool)

	// SetIdentity attaches the authenticated account.
	SetIdentity(id token.Identity)

	// ClearIdentity drops the authenticated account.
	ClearIdentity()

	// Render writes a component as HTML with the given status code.
	Render(code int, component Component) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Written reports whether the response has started.
	Written() bool

	// Logger returns the application logger.
	Logger() *slog.Logger

	// LogError logs at error level with the request context.
	LogError(msg string, attrs ...any)

	// LogDebug logs at debug level with the request context.
	LogDebug(msg string, attrs ...any)

	// Set stores a request-scoped value.
	Set(key, value any)

	// Get returns a request-scoped value.
	Get(key any) any
}

// requestState is shared by every Context view of one request.
type requestState struct {
	body        Body
	cookies     map[string]string
	session     *session.Session
	flashSource func() []session.Flash
	flashes     []session.Flash
	identity    *token.Identity
	flashesRead bool
}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	cookieManager  *cookie.Manager
	state          *requestState
}

type stateKey struct{}

// newContext creates a context for one request and links it into the request's context.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, cm *cookie.Manager) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	c := &requestContext{
		responseWriter: rw,
		logger:         logger,
		cookieManager:  cm,
		state:          &requestState{},
	}
	c.request = r.WithContext(context.WithValue(r.Context(), stateKey{}, c))
	return c
}

// contextFrom recovers the request's Context inside a chi handler, adopting r
// so route parameters resolve.
func contextFrom(r *http.Request) (*requestContext, bool) {
	c, ok := r.Context().Value(stateKey{}).(*requestContext)
	if !ok {
		return nil, false
	}
	return &requestContext{
		request:        r,
		responseWriter: c.responseWriter,
		logger:         c.logger,
		cookieManager:  c.cookieManager,
		state:          c.state,
	}, true
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.state.body.Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) Body() Body {
	return c.state.body
}

func (c *requestContext) SetBody(b Body) {
	c.state.body = b
}

func (c *requestContext) Cookies() map[string]string {
	return c.state.cookies
}

func (c *requestContext) SetCookies(m map[string]string) {
	c.state.cookies = m
}

func (c *requestContext) CookieManager() *cookie.Manager {
	return c.cookieManager
}

func (c *requestContext) Session() *session.Session {
	return c.state.session
}

func (c *requestContext) SetSession(s *session.Session) {
	c.state.session = s
}

func (c *requestContext) Flashes() []session.Flash {
	if !c.state.flashesRead {
		c.state.flashesRead = true
		if c.state.flashSource != nil {
			c.state.flashes = c.state.flashSource()
		}
	}
	return c.state.flashes
}

func (c *requestContext) SetFlashSource(fn func() []session.Flash) {
	c.state.flashSource = fn
}

func (c *requestContext) AddFlash(kind, text string) {
	if c.state.session != nil {
		c.state.session.AddFlash(kind, text)
	}
}

func (c *requestContext) Identity() (token.Identity, bool) {
	if c.state.identity == nil {
		return token.Identity{}, false
	}
	return *c.state.identity, true
}

func (c *requestContext) SetIdentity(id token.Identity) {
	c.state.identity = &id
}

func (c *requestContext) ClearIdentity() {
	c.state.identity = nil
}

func (c *requestContext) Render(code int, component Component) error {
	c.responseWriter.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return component.Render(c, c.responseWriter)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := c.responseWriter.Write([]byte(s))
	return err
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.responseWriter, c.request, url, code)
	return nil
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
