package handler

import (
	"net/http"

	"salesdesk_backend/internal/buyout/service"
	"salesdesk_backend/internal/buyout/transport"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the buyout calculator.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new buyout handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Breakdown computes a buyout breakdown.
// POST /api/v1/buyout/breakdown
func (h *Handler) Breakdown(c *gin.Context) {
	var req transport.BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	httpkit.OK(c, h.svc.Breakdown(req))
}

// Discounted computes the 80%-of-remaining-value buyout.
// POST /api/v1/buyout/discounted
func (h *Handler) Discounted(c *gin.Context) {
	var req transport.DiscountedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	httpkit.OK(c, h.svc.Discounted(req))
}

// Providers lists recognised providers and calculator settings.
// GET /api/v1/buyout/providers
func (h *Handler) Providers(c *gin.Context) {
	httpkit.OK(c, h.svc.Providers())
}
