package middlewares

import (
	"net/http"
	"strings"

	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/pkg/session"
	"github.com/cse340/motors/pkg/token"
)

// DefaultTokenCookie is the cookie the login flow stores the access token in.
const DefaultTokenCookie = "jwt"

// Verifier checks an access token and returns the identity it carries.
type Verifier interface {
	Verify(raw string) (token.Identity, error)
}

type authConfig struct {
	cookieName string
}

// AuthOption configures the auth token stage.
type AuthOption func(*authConfig)

// WithTokenCookie sets the cookie the token is read from.
func WithTokenCookie(name string) AuthOption {
	return func(cfg *authConfig) {
		if name != "" {
			cfg.cookieName = name
		}
	}
}

// AuthToken returns the stage that verifies the access token, read from a
// Bearer Authorization header or the token cookie.
//
// A valid token attaches its identity to the request. An invalid or expired
// token is dropped, its cookie cleared, and the request continues anonymously.
func AuthToken(v Verifier, opts ...AuthOption) web.Stage {
	cfg := &authConfig{cookieName: DefaultTokenCookie}
	for _, opt := range opts {
		opt(cfg)
	}

	return web.NewStage("auth_token", func(c web.Context) web.Result {
		c.ClearIdentity()

		raw, fromCookie := extractToken(c, cfg.cookieName)
		if raw == "" || v == nil {
			return web.Continue()
		}

		identity, err := v.Verify(raw)
		if err != nil {
			c.LogDebug("access token rejected", "error", err)
			if fromCookie {
				c.CookieManager().Delete(c.Response(), cfg.cookieName)
			}
			return web.Continue()
		}

		c.SetIdentity(identity)
		return web.Continue()
	})
}

// extractToken prefers the Authorization header over the cookie.
func extractToken(c web.Context, cookieName string) (string, bool) {
	if h := c.Header("Authorization"); h != "" {
		if scheme, value, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			if value = strings.TrimSpace(value); value != "" {
				return value, false
			}
		}
	}
	if v := c.Cookies()[cookieName]; v != "" {
		return v, true
	}
	if v, err := c.CookieManager().Get(c.Request(), cookieName); err == nil && v != "" {
		return v, true
	}
	return "", false
}

// LoginMessage is flashed when an anonymous visitor reaches a protected page.
const LoginMessage = "Please log in."

// RequireLogin returns route middleware that redirects anonymous visitors to loginPath.
func RequireLogin(loginPath string) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			if _, ok := c.Identity(); ok {
				return next(c)
			}
			c.AddFlash(session.FlashNotice, LoginMessage)
			return c.Redirect(http.StatusSeeOther, loginPath)
		}
	}
}
