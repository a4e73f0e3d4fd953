package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
	"flatguide/internal/pkg/response"
)

// reservationChecker verifies a rid belongs to a live reservation before a
// socket joins its room.
type reservationChecker interface {
	Fetch(ctx context.Context, rid string) (*domain.GuestConfig, error)
}

type Handler struct {
	hub          *Hub
	reservations reservationChecker
}

func NewHandler(hub *Hub, reservations reservationChecker) *Handler {
	return &Handler{hub: hub, reservations: reservations}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/chat/ws", h.ServeWS)
}

func (h *Handler) ServeWS(c *gin.Context) {
	rid := c.Query("rid")
	if rid == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing rid parameter")
		return
	}

	cfg, err := h.reservations.Fetch(c.Request.Context(), rid)
	if err != nil {
		if errors.Is(err, guestconfig.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No reservation for this id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to open chat")
		return
	}
	if cfg.ManualDeactivation {
		response.Error(c, http.StatusForbidden, "REVOKED", "Reservation has been deactivated")
		return
	}

	sender := c.Query("role")
	if sender != "host" {
		sender = "guest"
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	h.hub.ServeWS(conn, rid, sender)
}
