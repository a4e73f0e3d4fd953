package guide

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
	"flatguide/internal/pkg/response"
	"flatguide/internal/session"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/get-guest-config", h.GetGuestConfig)
	rg.POST("/resolve-session", h.ResolveSession)
	rg.POST("/resolve-manual", h.ResolveManual)
	rg.GET("/stay-status", h.StayStatus)
	rg.GET("/alerts", h.Alerts)
	rg.POST("/alerts/dismiss", h.DismissAlert)
}

// clientID identifies the calling browser/app instance for per-client state.
func clientID(c *gin.Context) string {
	if id := c.GetHeader("X-Client-ID"); id != "" {
		return id
	}
	return c.ClientIP()
}

func (h *Handler) GetGuestConfig(c *gin.Context) {
	cfg, err := h.service.GetGuestConfig(c.Request.Context(), c.Query("rid"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing rid parameter")
		case errors.Is(err, guestconfig.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No reservation for this id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load guest config")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

func (h *Handler) ResolveSession(c *gin.Context) {
	var req ResolveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ResolveSession(c.Request.Context(), clientID(c), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve session")
		return
	}

	response.Success(c, http.StatusOK, toResolveResponse(res))
}

func (h *Handler) ResolveManual(c *gin.Context) {
	var req ResolveManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ResolveManual(c.Request.Context(), clientID(c), req.Input)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve code")
		return
	}

	response.Success(c, http.StatusOK, toResolveResponse(res))
}

func (h *Handler) StayStatus(c *gin.Context) {
	status, err := h.service.StayStatus(c.Request.Context(), c.Query("rid"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing rid parameter")
		case errors.Is(err, guestconfig.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No reservation for this id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to derive stay status")
		}
		return
	}

	response.Success(c, http.StatusOK, status)
}

func (h *Handler) Alerts(c *gin.Context) {
	alerts, err := h.service.Alerts(c.Request.Context(), clientID(c), c.Query("rid"))
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing rid parameter")
		case errors.Is(err, guestconfig.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No reservation for this id")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load alerts")
		}
		return
	}

	response.Success(c, http.StatusOK, alerts)
}

func (h *Handler) DismissAlert(c *gin.Context) {
	var req DismissAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.DismissAlert(c.Request.Context(), clientID(c), req); err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid dismiss request")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to dismiss alert")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"dismissed": true})
}

func toResolveResponse(res session.Resolution) ResolveSessionResponse {
	out := ResolveSessionResponse{
		Mode:     res.State.Mode,
		StripURL: res.StripURL,
	}
	if res.State.Mode == domain.ModeGuest {
		cfg := res.State.Config
		out.Config = &cfg
	}
	return out
}
