package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/pkg/cookie"
)

const testSecret = "test-session-secret"

func newCookieManager() *cookie.Manager {
	return cookie.New(cookie.WithSecret(testSecret))
}

// newApp serves h at every path behind the given stages.
func newApp(h web.HandlerFunc, stages ...web.Stage) *web.App {
	d := web.NewDispatcher()
	d.Handle("/", func(r web.Router) {
		r.GET("/*", h)
		r.POST("/*", h)
	})
	return web.New(
		web.WithCookieManager(newCookieManager()),
		web.WithStages(stages...),
		web.WithDispatcher(d),
	)
}

func do(t *testing.T, h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func postBody(contentType, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	return r
}

// findCookie returns the last Set-Cookie for name.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
