package handler

import (
	"net/http"

	"salesdesk_backend/internal/intake/domain"
	"salesdesk_backend/internal/intake/service"
	"salesdesk_backend/internal/intake/transport"
	"salesdesk_backend/internal/shared/profile"
	tempsvc "salesdesk_backend/internal/temperature/service"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/money"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid session id"
)

// Handler handles intake wizard requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new intake handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Discard)
	rg.PATCH("/:id/customer", h.MergeCustomer)
	rg.PATCH("/:id/provider", h.MergeProvider)
	rg.PUT("/:id/package", h.SelectPackage)
	rg.POST("/:id/addons/:addonId/toggle", h.ToggleAddon)
	rg.POST("/:id/pain-points/:painPoint/toggle", h.TogglePainPoint)
	rg.PUT("/:id/schedule", h.SetSchedule)
	rg.PUT("/:id/monthly-price", h.SetMonthlyPrice)
	rg.GET("/:id/temperature", h.PreviewTemperature)
	rg.POST("/:id/submit", h.Submit)
}

// Create handles POST /api/v1/intake/sessions
func (h *Handler) Create(c *gin.Context) {
	session, err := h.svc.Create(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, h.toResponse(session))
}

// Get handles GET /api/v1/intake/sessions/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session, err := h.svc.Get(c.Request.Context(), id)
	h.respond(c, session, err)
}

// Discard handles DELETE /api/v1/intake/sessions/:id
func (h *Handler) Discard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Discard(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// MergeCustomer handles PATCH /api/v1/intake/sessions/:id/customer
func (h *Handler) MergeCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.CustomerPatchRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.svc.MergeCustomer(c.Request.Context(), id, profile.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ContactType:  profile.ContactType(req.ContactType),
		ContactValue: req.ContactValue,
		Address:      req.Address,
		Postcode:     req.Postcode,
	})
	h.respond(c, session, err)
}

// MergeProvider handles PATCH /api/v1/intake/sessions/:id/provider
func (h *Handler) MergeProvider(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.ProviderPatchRequest
	if !h.bind(c, &req) {
		return
	}

	patch := profile.ProviderPatch{
		Name:           req.Name,
		Speed:          req.Speed,
		EstimatedSpeed: req.EstimatedSpeed,
		ContractEnd:    req.ContractEnd,
		ClearEnd:       req.ClearContractEnd,
		Products:       req.Products,
	}
	if req.Price != nil {
		price := req.Price.Decimal
		patch.Price = &price
	}

	session, err := h.svc.MergeProvider(c.Request.Context(), id, patch)
	h.respond(c, session, err)
}

// SelectPackage handles PUT /api/v1/intake/sessions/:id/package
func (h *Handler) SelectPackage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.SelectPackageRequest
	if !h.bind(c, &req) {
		return
	}
	session, err := h.svc.SelectPackage(c.Request.Context(), id, req.PackageID)
	h.respond(c, session, err)
}

// ToggleAddon handles POST /api/v1/intake/sessions/:id/addons/:addonId/toggle
func (h *Handler) ToggleAddon(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session, err := h.svc.ToggleAddon(c.Request.Context(), id, c.Param("addonId"))
	h.respond(c, session, err)
}

// TogglePainPoint handles POST /api/v1/intake/sessions/:id/pain-points/:painPoint/toggle
func (h *Handler) TogglePainPoint(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session, err := h.svc.TogglePainPoint(c.Request.Context(), id, c.Param("painPoint"))
	h.respond(c, session, err)
}

// SetSchedule handles PUT /api/v1/intake/sessions/:id/schedule
func (h *Handler) SetSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.ScheduleRequest
	if !h.bind(c, &req) {
		return
	}
	session, err := h.svc.SetSchedule(c.Request.Context(), id, req.ScheduledFor)
	h.respond(c, session, err)
}

// SetMonthlyPrice handles PUT /api/v1/intake/sessions/:id/monthly-price
func (h *Handler) SetMonthlyPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.MonthlyPriceRequest
	if !h.bind(c, &req) {
		return
	}
	session, err := h.svc.SetMonthlyPrice(c.Request.Context(), id, req.Value)
	h.respond(c, session, err)
}

// PreviewTemperature handles GET /api/v1/intake/sessions/:id/temperature
func (h *Handler) PreviewTemperature(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.TypeQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	res, err := h.svc.PreviewTemperature(c.Request.Context(), id, profile.AppointmentType(req.Type))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, tempsvc.ToResponse(res))
}

// Submit handles POST /api/v1/intake/sessions/:id/submit
func (h *Handler) Submit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req transport.SubmitRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), id, profile.AppointmentType(req.Type))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.SubmitResponse{
		AppointmentID: result.AppointmentID.String(),
		Temperature:   tempsvc.ToResponse(result.Result),
		Session:       h.toResponse(result.Session),
	})
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

func (h *Handler) respond(c *gin.Context, session *domain.Session, err error) {
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, h.toResponse(session))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *Handler) toResponse(s *domain.Session) transport.SessionResponse {
	return transport.SessionResponse{
		ID:       s.ID.String(),
		Customer: s.Customer,
		Provider: transport.ProviderResponse{
			Name:           s.Provider.Name,
			Price:          money.Float(s.Provider.Price),
			Speed:          s.Provider.Speed,
			EstimatedSpeed: s.Provider.EstimatedSpeed,
			ContractEnd:    s.Provider.ContractEnd,
			Products:       s.Provider.Products,
		},
		SelectedPackageID: s.SelectedPackageID,
		SelectedAddons:    s.SelectedAddons,
		PainPoints:        s.PainPoints,
		ScheduledFor:      s.ScheduledFor,
		MonthlyPrice:      s.MonthlyPrice,
		MonthlyAmount:     money.Float(h.svc.MonthlyPrice(s)),
		SelectionTotal:    money.Float(h.svc.SelectionTotal(s)),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
