package handlers

import (
	"errors"
	"net/http"

	"github.com/cse340/motors/internal/account"
	"github.com/cse340/motors/internal/views"
	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/middlewares"
	"github.com/cse340/motors/pkg/session"
)

// Account flash messages.
const (
	LoginFailedMessage = "Please check your credentials and try again."
	LoggedOutMessage   = "You have been logged out."
)

// LoginPath is where anonymous visitors are sent.
const LoginPath = "/account/login"

func (h *Handlers) accountRoutes(r web.Router) {
	r.GET("/login", h.loginView)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
	r.GET("/", h.management, middlewares.RequireLogin(LoginPath))
}

func (h *Handlers) loginView(c web.Context) error {
	p, err := h.page(c, "Login")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Login(p, ""))
}

func (h *Handlers) login(c web.Context) error {
	email := c.Body().Get("account_email")
	password := c.Body().Get("account_password")

	id, err := h.deps.Accounts.Authenticate(c, email, password)
	if errors.Is(err, account.ErrInvalidCredentials) {
		c.AddFlash(session.FlashError, LoginFailedMessage)
		p, err := h.page(c, "Login")
		if err != nil {
			return err
		}
		return c.Render(http.StatusBadRequest, views.Login(p, email))
	}
	if err != nil {
		return err
	}

	raw, err := h.deps.Tokens.Issue(id)
	if err != nil {
		return err
	}
	c.CookieManager().Set(c.Response(), middlewares.DefaultTokenCookie, raw, int(h.deps.TokenTTL.Seconds()))
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// logout drops the token and replaces the session so nothing from the
// signed-in visit survives. The flash lands in the new session.
func (h *Handlers) logout(c web.Context) error {
	c.CookieManager().Delete(c.Response(), middlewares.DefaultTokenCookie)
	c.ClearIdentity()
	if err := middlewares.RenewSession(c); err != nil {
		return err
	}
	c.AddFlash(session.FlashNotice, LoggedOutMessage)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) management(c web.Context) error {
	p, err := h.page(c, "Account Management")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Management(p))
}
