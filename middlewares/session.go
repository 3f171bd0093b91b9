package middlewares

import (
	"errors"
	"log/slog"
	"time"

	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/pkg/cookie"
	"github.com/cse340/motors/pkg/session"
)

// Session defaults.
const (
	DefaultSessionCookie = "sessionId"
	DefaultSessionMaxAge = 24 * time.Hour
)

type sessionConfig struct {
	cookieName string
	maxAge     time.Duration
}

// SessionOption configures the session stage.
type SessionOption func(*sessionConfig)

// WithSessionCookie sets the session cookie name.
func WithSessionCookie(name string) SessionOption {
	return func(cfg *sessionConfig) {
		if name != "" {
			cfg.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the idle lifetime of a session.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(cfg *sessionConfig) {
		if d > 0 {
			cfg.maxAge = d
		}
	}
}

// Session returns the stage that attaches exactly one session to every request.
//
// The session id travels in a cookie signed by the app's cookie manager.
// A missing, tampered or expired cookie starts a new session, which is saved
// before the request continues. Any store failure fails the request; the
// stage never falls back to a session that was not persisted.
//
// The session is saved again right before the response is written so handler
// changes, consumed flashes and the extended expiry reach the store.
func Session(store session.Store, opts ...SessionOption) web.Stage {
	cfg := &sessionConfig{
		cookieName: DefaultSessionCookie,
		maxAge:     DefaultSessionMaxAge,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return web.NewStage("session", func(c web.Context) web.Result {
		if store == nil {
			return web.Fail(session.ErrNotConfigured)
		}
		cm := c.CookieManager()

		sess, err := resolveSession(c, store, cm, cfg)
		if err != nil {
			return web.Fail(err)
		}

		if sess.IsNew() {
			if err := store.Save(c, sess); err != nil {
				return web.Fail(err)
			}
			sess.ClearNew()
			sess.ClearDirty()
		}

		if err := cm.SetSigned(c.Response(), cfg.cookieName, sess.ID, int(cfg.maxAge.Seconds())); err != nil {
			return web.Fail(err)
		}

		// Saves whichever session is attached when the response starts,
		// so a renewed session is the one persisted.
		c.ResponseWriter().OnBeforeWrite(func() {
			current := c.Session()
			if current == nil {
				return
			}
			if err := store.Save(c, current); err != nil {
				c.LogError("failed to save session",
					slog.String("session_id", current.ID),
					slog.Any("error", err),
				)
				return
			}
			current.ClearDirty()
		})

		c.Set(sessionRenewerKey{}, func() error {
			return renewSession(c, store, cm, cfg)
		})
		c.SetSession(sess)
		return web.Continue()
	})
}

type sessionRenewerKey struct{}

// RenewSession destroys the current session and attaches a fresh, saved one
// under a new id. Call it on logout or any privilege change.
func RenewSession(c web.Context) error {
	renew, ok := c.Get(sessionRenewerKey{}).(func() error)
	if !ok {
		return session.ErrNotConfigured
	}
	return renew()
}

func renewSession(c web.Context, store session.Store, cm *cookie.Manager, cfg *sessionConfig) error {
	if old := c.Session(); old != nil {
		if err := store.Destroy(c, old.ID); err != nil {
			return err
		}
	}

	sess := newSession(cfg)
	if err := store.Save(c, sess); err != nil {
		return err
	}
	sess.ClearNew()
	sess.ClearDirty()

	if err := cm.SetSigned(c.Response(), cfg.cookieName, sess.ID, int(cfg.maxAge.Seconds())); err != nil {
		return err
	}
	c.SetSession(sess)
	return nil
}

// resolveSession loads the session named by the request cookie, or starts a new one.
func resolveSession(c web.Context, store session.Store, cm *cookie.Manager, cfg *sessionConfig) (*session.Session, error) {
	sid, err := cm.GetSigned(c.Request(), cfg.cookieName)
	switch {
	case err == nil:
	case errors.Is(err, cookie.ErrNotFound), errors.Is(err, cookie.ErrBadSig):
		return newSession(cfg), nil
	default:
		return nil, err
	}

	sess, err := store.Load(c, sid)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return newSession(cfg), nil
	case err != nil:
		return nil, err
	}

	sess.Touch(cfg.maxAge)
	return sess, nil
}

func newSession(cfg *sessionConfig) *session.Session {
	return session.New(session.NewID(), time.Now().Add(cfg.maxAge))
}
