package handlers

import (
	"errors"
	"net/http"

	"github.com/cse340/motors/internal/message"
	"github.com/cse340/motors/internal/views"
	"github.com/cse340/motors/internal/web"
	"github.com/cse340/motors/middlewares"
)

// MessageNotFoundMessage is shown for a missing or foreign message.
const MessageNotFoundMessage = "Sorry, that message could not be found."

func (h *Handlers) messageRoutes(r web.Router) {
	r.Use(middlewares.RequireLogin(LoginPath))
	r.GET("/", h.inbox)
	r.GET("/view/{messageId}", h.viewMessage)
}

func (h *Handlers) inbox(c web.Context) error {
	id, _ := c.Identity()
	list, err := h.deps.Messages.Inbox(c, id.AccountID)
	if err != nil {
		return err
	}

	p, err := h.page(c, id.FirstName+" "+id.LastName+" Inbox")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Inbox(p, list))
}

func (h *Handlers) viewMessage(c web.Context) error {
	msgID, err := intParam(c, "messageId")
	if err != nil {
		return err
	}
	id, _ := c.Identity()

	m, err := h.deps.Messages.ByID(c, msgID, id.AccountID)
	if errors.Is(err, message.ErrNotFound) {
		return web.ErrNotFound(MessageNotFoundMessage)
	}
	if err != nil {
		return err
	}
	if !m.Read {
		if err := h.deps.Messages.MarkRead(c, msgID, id.AccountID); err != nil {
			return err
		}
	}

	p, err := h.page(c, m.Subject)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Message(p, m))
}
