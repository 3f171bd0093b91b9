package handlers

import (
	"errors"
	"net/http"

	"github.com/cse340/motors/internal/inventory"
	"github.com/cse340/motors/internal/views"
	"github.com/cse340/motors/internal/web"
)

// Not-found messages for inventory pages.
const (
	NoVehiclesMessage      = "Sorry, no matching vehicles could be found."
	VehicleNotFoundMessage = "Sorry, that vehicle could not be found."
)

func (h *Handlers) inventoryRoutes(r web.Router) {
	r.GET("/type/{classificationId}", h.byClassification)
	r.GET("/detail/{invId}", h.vehicleDetail)
}

func (h *Handlers) byClassification(c web.Context) error {
	id, err := intParam(c, "classificationId")
	if err != nil {
		return err
	}
	vehicles, err := h.deps.Inventory.ByClassification(c, id)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		return web.ErrNotFound(NoVehiclesMessage)
	}

	p, err := h.page(c, vehicles[0].Classification+" vehicles")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Classification(p, vehicles))
}

func (h *Handlers) vehicleDetail(c web.Context) error {
	id, err := intParam(c, "invId")
	if err != nil {
		return err
	}
	v, err := h.deps.Inventory.ByID(c, id)
	if errors.Is(err, inventory.ErrNotFound) {
		return web.ErrNotFound(VehicleNotFoundMessage)
	}
	if err != nil {
		return err
	}

	p, err := h.page(c, v.Title())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Detail(p, v))
}
