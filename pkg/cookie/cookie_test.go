package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cse340/motors/pkg/cookie"
)

const testSecret = "dev-secret"

func TestPlainCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("get non-existent cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "missing")
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("set and get cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 3600)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "name", cookies[0].Name)
		require.Equal(t, "value", cookies[0].Value)
		require.Equal(t, 3600, cookies[0].MaxAge)
		require.True(t, cookies[0].HttpOnly)
		require.Equal(t, "/", cookies[0].Path)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(cookies[0])
		got, err := m.Get(r, "name")
		require.NoError(t, err)
		require.Equal(t, "value", got)
	})

	t.Run("delete cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Delete(w, "name")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Negative(t, cookies[0].MaxAge)
	})
}

func TestAll(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Cookie", "a=1; b=2; a=3")

	require.Equal(t, map[string]string{"a": "1", "b": "2"}, m.All(r))

	empty := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, m.All(empty))
}

func TestSignedCookies(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecret(testSecret), cookie.WithSecure(true))

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "sessionId", "abc-123", 60))

		c := w.Result().Cookies()[0]
		require.True(t, c.Secure)
		require.NotEqual(t, "abc-123", c.Value)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		got, err := m.GetSigned(r, "sessionId")
		require.NoError(t, err)
		require.Equal(t, "abc-123", got)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		signed, err := m.Sign("abc-123")
		require.NoError(t, err)

		_, err = m.Verify("X" + signed)
		require.ErrorIs(t, err, cookie.ErrBadSig)

		_, err = m.Verify("no-dot")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("different secret", func(t *testing.T) {
		t.Parallel()
		signed, err := m.Sign("abc-123")
		require.NoError(t, err)

		other := cookie.New(cookie.WithSecret("another-secret"))
		_, err = other.Verify(signed)
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("no secret", func(t *testing.T) {
		t.Parallel()
		plain := cookie.New()
		w := httptest.NewRecorder()
		require.ErrorIs(t, plain.SetSigned(w, "x", "y", 0), cookie.ErrNoSecret)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := plain.GetSigned(r, "x")
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}
