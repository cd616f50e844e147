package handler

import (
	"net/http"

	"salesdesk_backend/internal/appointments/domain"
	"salesdesk_backend/internal/appointments/repository"
	"salesdesk_backend/internal/appointments/service"
	"salesdesk_backend/internal/appointments/transport"
	"salesdesk_backend/platform/httpkit"
	"salesdesk_backend/platform/money"
	"salesdesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid appointment id"
)

// Handler handles HTTP requests for appointments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new appointments handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the appointment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

// List handles GET /api/v1/appointments
func (h *Handler) List(c *gin.Context) {
	var req transport.ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.List(c.Request.Context(), service.ListFilter{
		Type:     req.Type,
		Status:   req.Status,
		From:     req.From,
		To:       req.To,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toListResponse(result))
}

// GetByID handles GET /api/v1/appointments/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	appt, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ToResponse(*appt))
}

// UpdateStatus handles PATCH /api/v1/appointments/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	appt, err := h.svc.UpdateStatus(c.Request.Context(), id, domain.Status(req.Status), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, ToResponse(*appt))
}

func toListResponse(result *repository.ListResult) transport.AppointmentListResponse {
	items := make([]transport.AppointmentResponse, 0, len(result.Items))
	for _, appt := range result.Items {
		items = append(items, ToResponse(appt))
	}
	return transport.AppointmentListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
}

// ToResponse maps an appointment to its wire form.
func ToResponse(appt domain.Appointment) transport.AppointmentResponse {
	resp := transport.AppointmentResponse{
		ID:           appt.ID.String(),
		Type:         string(appt.Type),
		Status:       string(appt.Status),
		ScheduledFor: appt.ScheduledFor,
		Customer:     appt.Customer,
		Provider: transport.ProviderResponse{
			Name:           appt.Provider.Name,
			Price:          money.Float(appt.Provider.Price),
			Speed:          appt.Provider.Speed,
			EstimatedSpeed: appt.Provider.EstimatedSpeed,
			ContractEnd:    appt.Provider.ContractEnd,
			Products:       appt.Provider.Products,
		},
		SelectedAddons: make([]transport.AddonResponse, 0, len(appt.SelectedAddons)),
		MonthlyTotal:   money.Float(appt.MonthlyTotal()),
		PainPoints:     appt.PainPoints,
		Temperature:    appt.Temperature,
		Score:          appt.Score,
		MaxScore:       appt.MaxScore,
		CreatedAt:      appt.CreatedAt,
		UpdatedAt:      appt.UpdatedAt,
	}
	if resp.PainPoints == nil {
		resp.PainPoints = []string{}
	}
	if p := appt.SelectedPackage; p != nil {
		pkg := &transport.PackageResponse{
			ID:    p.ID,
			Name:  p.Name,
			Speed: p.Speed,
			Price: money.Float(p.Price),
		}
		if p.SalePrice != nil {
			sale := money.Float(*p.SalePrice)
			pkg.SalePrice = &sale
		}
		resp.SelectedPackage = pkg
	}
	for _, a := range appt.SelectedAddons {
		resp.SelectedAddons = append(resp.SelectedAddons, transport.AddonResponse{
			ID:    a.ID,
			Name:  a.Name,
			Price: money.Float(a.Price),
		})
	}
	return resp
}
