package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ErrNoRoute is returned by Dispatch when no registration handled the path.
var ErrNoRoute = errors.New("web: no matching route")

type (
	errSlotKey     struct{}
	fallthroughKey struct{}
)

// route receives control for a matched prefix. rest is the path with the prefix removed.
type route interface {
	serve(c *requestContext, rest string) error
}

type registration struct {
	target route
	prefix string
}

// Dispatcher routes requests to an ordered list of prefix registrations.
// The first registration whose prefix matches on a segment boundary receives
// the request; a leaf with no route for the remaining path passes it to the
// next matching registration.
type Dispatcher struct {
	routes []registration
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Handle registers a leaf router at prefix. fn declares routes relative to the prefix.
func (d *Dispatcher) Handle(prefix string, fn func(r Router)) {
	mux := chi.NewRouter()
	mux.NotFound(markFallthrough)
	mux.MethodNotAllowed(markFallthrough)
	fn(&routerAdapter{router: mux})
	d.routes = append(d.routes, registration{prefix: normalizePrefix(prefix), target: leaf{mux: mux}})
}

// Mount registers a nested dispatcher at prefix. It sees the path with the prefix removed.
func (d *Dispatcher) Mount(prefix string, sub *Dispatcher) {
	d.routes = append(d.routes, registration{prefix: normalizePrefix(prefix), target: sub})
}

// Dispatch routes c's request. It never renders: unmatched paths return ErrNoRoute,
// handler failures are returned as is.
func (d *Dispatcher) Dispatch(c Context) error {
	rc, ok := c.(*requestContext)
	if !ok {
		return errors.New("web: dispatcher requires the app context")
	}
	return d.serve(rc, requestPath(rc.request))
}

func (d *Dispatcher) serve(c *requestContext, path string) error {
	for _, reg := range d.routes {
		rest, ok := matchPrefix(reg.prefix, path)
		if !ok {
			continue
		}
		err := reg.target.serve(c, rest)
		if errors.Is(err, ErrNoRoute) {
			continue
		}
		return err
	}
	return ErrNoRoute
}

// leaf adapts a chi router to the dispatcher.
type leaf struct {
	mux *chi.Mux
}

func (l leaf) serve(c *requestContext, rest string) error {
	var (
		handlerErr error
		missed     bool
	)

	// A fresh chi route context with RoutePath makes chi route on the suffix,
	// the same way chi.Mount does for sub-routers.
	rctx := chi.NewRouteContext()
	rctx.RoutePath = rest

	ctx := context.WithValue(c.request.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, errSlotKey{}, &handlerErr)
	ctx = context.WithValue(ctx, fallthroughKey{}, &missed)

	l.mux.ServeHTTP(c.responseWriter, c.request.WithContext(ctx))

	if missed {
		return ErrNoRoute
	}
	return handlerErr
}

func markFallthrough(_ http.ResponseWriter, r *http.Request) {
	if missed, ok := r.Context().Value(fallthroughKey{}).(*bool); ok {
		*missed = true
	}
}

// matchPrefix reports whether prefix matches path on a segment boundary and
// returns the remaining path, always starting with "/".
func matchPrefix(prefix, path string) (string, bool) {
	if prefix == "/" {
		return path, true
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	switch {
	case rest == "":
		return "/", true
	case rest[0] == '/':
		return rest, true
	default:
		return "", false
	}
}

func normalizePrefix(p string) string {
	return "/" + strings.Trim(p, "/")
}

func requestPath(r *http.Request) string {
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}
