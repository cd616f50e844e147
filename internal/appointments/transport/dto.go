package transport

import (
	"time"

	"salesdesk_backend/internal/shared/profile"
)

// ListAppointmentsRequest is the query string for listing appointments.
type ListAppointmentsRequest struct {
	Type     string     `form:"type" validate:"omitempty,oneof=lead revisit"`
	Status   string     `form:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page     int        `form:"page" validate:"omitempty,min=1"`
	PageSize int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// UpdateStatusRequest is the body of PATCH /appointments/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// PackageResponse is the package captured at booking.
type PackageResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Speed     int      `json:"speed"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice,omitempty"`
}

// AddonResponse is an add-on captured at booking.
type AddonResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProviderResponse is the customer's provider at booking.
type ProviderResponse struct {
	Name           string           `json:"name,omitempty"`
	Price          float64          `json:"price"`
	Speed          float64          `json:"speed,omitempty"`
	EstimatedSpeed float64          `json:"estimatedSpeed,omitempty"`
	ContractEnd    *time.Time       `json:"contractEnd,omitempty"`
	Products       profile.Products `json:"products"`
}

// AppointmentResponse is the wire form of an appointment.
type AppointmentResponse struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	Status          string           `json:"status"`
	ScheduledFor    time.Time        `json:"scheduledFor"`
	Customer        profile.Customer `json:"customer"`
	Provider        ProviderResponse `json:"provider"`
	SelectedPackage *PackageResponse `json:"selectedPackage,omitempty"`
	SelectedAddons  []AddonResponse  `json:"selectedAddons"`
	MonthlyTotal    float64          `json:"monthlyTotal"`
	PainPoints      []string         `json:"painPoints"`
	Temperature     string           `json:"temperature"`
	Score           int              `json:"score"`
	MaxScore        int              `json:"maxScore"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// AppointmentListResponse is a page of appointments.
type AppointmentListResponse struct {
	Items      []AppointmentResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}
