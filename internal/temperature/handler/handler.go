package handler

import (
	"net/http"

	"salesdesk_backend/internal/temperature/service"
	"salesdesk_backend/internal/temperature/transport"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for sale temperature scoring.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new temperature handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Calculate scores a visit.
// POST /api/v1/temperature
func (h *Handler) Calculate(c *gin.Context) {
	var req transport.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	httpkit.OK(c, h.svc.Calculate(req))
}
