package handlers

import (
	"errors"

	"github.com/cse340/motors/internal/web"
)

// ErrIntentional is raised by /ierror to exercise the error page.
var ErrIntentional = errors.New("intentional server error")

func (h *Handlers) intentionalErrorRoutes(r web.Router) {
	r.GET("/", func(web.Context) error {
		return ErrIntentional
	})
}
