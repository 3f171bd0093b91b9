// Package handlers registers the site's routes on the dispatcher.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/cse340/motors/internal/inventory"
	"github.com/cse340/motors/internal/message"
	"github.com/cse340/motors/internal/views"
	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/pkg/token"
)

// Inventory reads vehicles.
type Inventory interface {
	ByClassification(ctx context.Context, classificationID int) ([]inventory.Vehicle, error)
	ByID(ctx context.Context, id int) (inventory.Vehicle, error)
}

// Accounts checks login credentials.
type Accounts interface {
	Authenticate(ctx context.Context, email, password string) (token.Identity, error)
}

// Messages reads inboxes.
type Messages interface {
	Inbox(ctx context.Context, accountID int) ([]message.Summary, error)
	ByID(ctx context.Context, id, accountID int) (message.Message, error)
	MarkRead(ctx context.Context, id, accountID int) error
}

// Issuer signs access tokens after login.
type Issuer interface {
	Issue(id token.Identity) (string, error)
}

// Deps are the collaborators of the route handlers.
type Deps struct {
	Nav       web.NavFunc
	Inventory Inventory
	Accounts  Accounts
	Messages  Messages
	Tokens    Issuer
	TokenTTL  time.Duration
}

// Handlers holds the route handlers.
type Handlers struct {
	deps Deps
}

// New creates the handlers.
func New(deps Deps) *Handlers {
	if deps.TokenTTL <= 0 {
		deps.TokenTTL = token.DefaultTTL
	}
	return &Handlers{deps: deps}
}

// Register adds every route group to d in dispatch order.
func (h *Handlers) Register(d *web.Dispatcher) {
	d.Handle("/", func(r web.Router) {
		r.GET("/", h.home)
	})
	d.Handle("/inv", h.inventoryRoutes)
	d.Handle("/account", h.accountRoutes)
	d.Handle("/message", h.messageRoutes)
	d.Handle("/ierror", h.intentionalErrorRoutes)
}

// page collects the layout data for the current request.
func (h *Handlers) page(c web.Context, title string) (views.Page, error) {
	p := views.Page{Title: title}
	if h.deps.Nav != nil {
		links, err := h.deps.Nav(c)
		if err != nil {
			return views.Page{}, err
		}
		p.Nav = links
	}
	if id, ok := c.Identity(); ok {
		p.Account = &id
	}
	p.Flashes = c.Flashes()
	return p, nil
}

func (h *Handlers) home(c web.Context) error {
	p, err := h.page(c, "Home")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Home(p))
}

// intParam parses a numeric route parameter. Anything else is a missing page.
func intParam(c web.Context, name string) (int, error) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		return 0, web.ErrNotFound("")
	}
	return n, nil
}
