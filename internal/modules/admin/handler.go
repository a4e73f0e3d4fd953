package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flatguide/internal/guestconfig"
	"flatguide/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.Login)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.PUT("/admin/reservations", h.UpsertReservation)
	rg.GET("/admin/reservations/:rid", h.GetReservation)
	rg.POST("/admin/reservations/:rid/deactivate", h.DeactivateReservation)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password")
		case errors.Is(err, ErrLoginDisabled):
			response.Error(c, http.StatusForbidden, "LOGIN_DISABLED", "Admin login is not configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

func (h *Handler) UpsertReservation(c *gin.Context) {
	var req UpsertReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cfg, err := h.service.UpsertReservation(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Checkout date must be on or after check-in date")
		case errors.Is(err, guestconfig.ErrDuplicateRID):
			response.Error(c, http.StatusConflict, "DUPLICATE_RID", "Reservation id already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

func (h *Handler) GetReservation(c *gin.Context) {
	cfg, err := h.service.GetReservation(c.Request.Context(), c.Param("rid"))
	if err != nil {
		if errors.Is(err, guestconfig.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No reservation for this id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

func (h *Handler) DeactivateReservation(c *gin.Context) {
	if err := h.service.DeactivateReservation(c.Request.Context(), c.Param("rid")); err != nil {
		if errors.Is(err, guestconfig.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No reservation for this id")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}
