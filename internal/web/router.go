package web

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error forwards it to the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc with route-local behavior, such as requiring a login.
type Middleware func(next HandlerFunc) HandlerFunc

// Router is the interface leaf registrations use to declare routes.
// Paths are relative to the registration prefix.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	PUT(path string, h HandlerFunc, mw ...Middleware)
	PATCH(path string, h HandlerFunc, mw ...Middleware)
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group sharing middleware.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to every route declared afterwards in this router.
	Use(mw ...Middleware)
}

// routerAdapter wraps chi.Router to implement the Router interface.
type routerAdapter struct {
	router chi.Router
	mw     []Middleware
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Get(path, r.wrap(h, mw...))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Post(path, r.wrap(h, mw...))
}

func (r *routerAdapter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Put(path, r.wrap(h, mw...))
}

func (r *routerAdapter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Patch(path, r.wrap(h, mw...))
}

func (r *routerAdapter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.router.Delete(path, r.wrap(h, mw...))
}

func (r *routerAdapter) Group(fn func(Router)) {
	r.router.Group(func(cr chi.Router) {
		fn(&routerAdapter{router: cr, mw: slices.Clone(r.mw)})
	})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.router.Route(pattern, func(cr chi.Router) {
		fn(&routerAdapter{router: cr, mw: slices.Clone(r.mw)})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	r.mw = append(r.mw, mw...)
}

func (r *routerAdapter) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	// Router middleware runs before route middleware; first registered runs first.
	chain := append(slices.Clone(r.mw), mw...)
	for _, m := range slices.Backward(chain) {
		h = m(h)
	}
	return adaptHandler(h)
}

// adaptHandler runs h with the request's Context and reports its error
// through the slot installed by the leaf that invoked it.
func adaptHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		c, ok := contextFrom(req)
		if !ok {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		err := h(c)
		if slot, ok := req.Context().Value(errSlotKey{}).(*error); ok {
			*slot = err
		}
	}
}
