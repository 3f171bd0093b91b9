package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/internal/web"
)

func text(s string) web.HandlerFunc {
	return func(c web.Context) error {
		return c.String(http.StatusOK, s)
	}
}

func TestDispatcher_FirstMatchWins(t *testing.T) {
	t.Parallel()

	d := web.NewDispatcher()
	d.Handle("/inv", func(r web.Router) {
		r.GET("/", text("first"))
	})
	d.Handle("/inv", func(r web.Router) {
		r.GET("/", text("second"))
	})
	app := newApp(d)

	require.Equal(t, "first", do(t, app, http.MethodGet, "/inv").Body.String())
}

func TestDispatcher_SegmentAligned(t *testing.T) {
	t.Parallel()

	d := web.NewDispatcher()
	d.Handle("/inv", func(r web.Router) {
		r.GET("/", text("inventory root"))
		r.GET("/type/{id}", func(c web.Context) error {
			return c.String(http.StatusOK, "type "+c.Param("id"))
		})
	})
	app := newApp(d)

	require.Equal(t, "inventory root", do(t, app, http.MethodGet, "/inv").Body.String())
	require.Equal(t, "inventory root", do(t, app, http.MethodGet, "/inv/").Body.String())
	require.Equal(t, "type 3", do(t, app, http.MethodGet, "/inv/type/3").Body.String())
	require.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/inventory").Code)
}

func TestDispatcher_FallsThroughUnhandledLeaf(t *testing.T) {
	t.Parallel()

	d := web.NewDispatcher()
	d.Handle("/", func(r web.Router) {
		r.GET("/", text("home"))
	})
	d.Handle("/account", func(r web.Router) {
		r.GET("/login", text("login"))
	})
	app := newApp(d)

	require.Equal(t, "home", do(t, app, http.MethodGet, "/").Body.String())
	require.Equal(t, "login", do(t, app, http.MethodGet, "/account/login").Body.String())

	rec := do(t, app, http.MethodPost, "/account/login")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDispatcher_Nested(t *testing.T) {
	t.Parallel()

	admin := web.NewDispatcher()
	admin.Handle("/reports", func(r web.Router) {
		r.GET("/{year}", func(c web.Context) error {
			return c.String(http.StatusOK, "report "+c.Param("year")+" at "+c.Request().URL.Path)
		})
	})

	d := web.NewDispatcher()
	d.Mount("/admin", admin)
	d.Handle("/admin", func(r web.Router) {
		r.GET("/other", text("sibling"))
	})
	app := newApp(d)

	require.Equal(t, "report 2024 at /admin/reports/2024", do(t, app, http.MethodGet, "/admin/reports/2024").Body.String())
	require.Equal(t, "sibling", do(t, app, http.MethodGet, "/admin/other").Body.String())
	require.Equal(t, http.StatusNotFound, do(t, app, http.MethodGet, "/admin/reports").Code)
}

func TestDispatcher_RouteMiddleware(t *testing.T) {
	t.Parallel()

	requireHeader := func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			if c.Header("X-Allowed") == "" {
				return web.ErrUnauthorized("not allowed")
			}
			return next(c)
		}
	}

	d := web.NewDispatcher()
	d.Handle("/message", func(r web.Router) {
		r.Use(requireHeader)
		r.GET("/", text("inbox"))
	})
	app := newApp(d)

	rec := do(t, app, http.MethodGet, "/message")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptestRequest(http.MethodGet, "/message")
	req.Header.Set("X-Allowed", "1")
	rec = serve(app, req)
	require.Equal(t, "inbox", rec.Body.String())
}
