package handler

import (
	"net/http"

	"salesdesk_backend/internal/catalog/service"
	"salesdesk_backend/internal/catalog/transport"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListPackages retrieves broadband packages, cheapest first.
// GET /api/v1/catalog/packages
func (h *Handler) ListPackages(c *gin.Context) {
	httpkit.OK(c, h.svc.ListPackages())
}

// ListAddons retrieves add-ons, optionally filtered by package speed.
// GET /api/v1/catalog/addons?speed=
func (h *Handler) ListAddons(c *gin.Context) {
	var req transport.ListAddonsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	httpkit.OK(c, h.svc.ListAddons(req))
}

// ListTVPackages retrieves TV bundles grouped by type.
// GET /api/v1/catalog/tv-packages
func (h *Handler) ListTVPackages(c *gin.Context) {
	httpkit.OK(c, h.svc.ListTVPackages())
}

// Recommend returns the package closest to the customer's current price.
// POST /api/v1/catalog/recommend
func (h *Handler) Recommend(c *gin.Context) {
	var req transport.PriceRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.Recommend(req))
}

// Compare annotates every package against the customer's current price.
// POST /api/v1/catalog/compare
func (h *Handler) Compare(c *gin.Context) {
	var req transport.PriceRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.Compare(req))
}

// Quote totals a package plus add-ons.
// POST /api/v1/catalog/quote
func (h *Handler) Quote(c *gin.Context) {
	var req transport.QuoteRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.Quote(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SpeedCheck compares estimated and measured speed.
// POST /api/v1/catalog/speed-check
func (h *Handler) SpeedCheck(c *gin.Context) {
	var req transport.SpeedCheckRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, h.svc.SpeedCheck(req))
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}
