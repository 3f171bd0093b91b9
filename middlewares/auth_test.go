package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/middlewares"
	"github.com/cse340/motors/pkg/session"
	"github.com/cse340/motors/pkg/token"
)

func newTokens(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.New("access-secret")
	require.NoError(t, err)
	return svc
}

func whoAmI(c web.Context) error {
	id, ok := c.Identity()
	if !ok {
		return c.String(http.StatusOK, "anonymous")
	}
	return c.String(http.StatusOK, id.Email)
}

func TestCookies(t *testing.T) {
	t.Parallel()

	app := newApp(func(c web.Context) error {
		return c.String(http.StatusOK, c.Cookies()["theme"])
	}, middlewares.Cookies())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	require.Equal(t, "dark", do(t, app, req).Body.String())
}

func TestAuthToken(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	valid, err := tokens.Issue(token.Identity{AccountID: 7, FirstName: "Basic", Email: "basic@340.edu", Type: "Client"})
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id":    7,
		"account_email": "basic@340.edu",
		"exp":           time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	otherKey, err := token.New("other-secret")
	require.NoError(t, err)
	forged, err := otherKey.Issue(token.Identity{AccountID: 1, Email: "admin@340.edu", Type: "Admin"})
	require.NoError(t, err)

	app := newApp(whoAmI, middlewares.Cookies(), middlewares.AuthToken(tokens))

	t.Run("no token", func(t *testing.T) {
		t.Parallel()
		rec := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("valid cookie", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultTokenCookie, Value: valid})
		rec := do(t, app, req)
		require.Equal(t, "basic@340.edu", rec.Body.String())
		require.Nil(t, findCookie(rec, middlewares.DefaultTokenCookie))
	})

	t.Run("valid bearer header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		require.Equal(t, "basic@340.edu", do(t, app, req).Body.String())
	})

	for name, raw := range map[string]string{"expired": expired, "forged": forged, "garbage": "not-a-token"} {
		t.Run(name+" cookie degrades to anonymous", func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: middlewares.DefaultTokenCookie, Value: raw})
			rec := do(t, app, req)

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "anonymous", rec.Body.String())

			cleared := findCookie(rec, middlewares.DefaultTokenCookie)
			require.NotNil(t, cleared)
			require.Negative(t, cleared.MaxAge)
		})
	}
}

func TestRequireLogin(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t)
	store := session.NewMemoryStore()

	d := web.NewDispatcher()
	d.Handle("/account", func(r web.Router) {
		r.GET("/", func(c web.Context) error {
			return c.String(http.StatusOK, "management")
		}, middlewares.RequireLogin("/account/login"))
	})
	app := web.New(
		web.WithCookieManager(newCookieManager()),
		web.WithStages(
			middlewares.Session(store),
			middlewares.Flash(),
			middlewares.Cookies(),
			middlewares.AuthToken(tokens),
		),
		web.WithDispatcher(d),
	)

	rec := do(t, app, httptest.NewRequest(http.MethodGet, "/account", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/account/login", rec.Header().Get("Location"))

	ck := findCookie(rec, middlewares.DefaultSessionCookie)
	require.NotNil(t, ck)
	id, err := newCookieManager().Verify(ck.Value)
	require.NoError(t, err)
	sess, err := store.Load(t.Context(), id)
	require.NoError(t, err)
	require.Equal(t, []session.Flash{{Kind: session.FlashNotice, Text: middlewares.LoginMessage}}, sess.PendingFlashes())

	raw, err := tokens.Issue(token.Identity{AccountID: 3, Email: "employee@340.edu", Type: "Employee"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.DefaultTokenCookie, Value: raw})
	rec = do(t, app, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "management", rec.Body.String())
}
