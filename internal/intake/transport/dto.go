package transport

import (
	"time"

	"salesdesk_backend/internal/shared/profile"
	temperature "salesdesk_backend/internal/temperature/transport"
	"salesdesk_backend/platform/money"
)

// CustomerPatchRequest updates the customer step. Empty fields are left as
// they are.
type CustomerPatchRequest struct {
	FirstName    string `json:"firstName" validate:"max=100"`
	LastName     string `json:"lastName" validate:"max=100"`
	ContactType  string `json:"contactType" validate:"omitempty,oneof=phone email"`
	ContactValue string `json:"contactValue" validate:"max=254"`
	Address      string `json:"address" validate:"max=300"`
	Postcode     string `json:"postcode" validate:"max=10"`
}

// ProviderPatchRequest updates the provider step. Nil fields are left as
// they are.
type ProviderPatchRequest struct {
	Name             *string           `json:"name" validate:"omitempty,max=100"`
	Price            *money.Amount     `json:"price"`
	Speed            *float64          `json:"speed" validate:"omitempty,min=0,max=100000"`
	EstimatedSpeed   *float64          `json:"estimatedSpeed" validate:"omitempty,min=0,max=100000"`
	ContractEnd      *time.Time        `json:"contractEnd"`
	ClearContractEnd bool              `json:"clearContractEnd"`
	Products         *profile.Products `json:"products"`
}

// SelectPackageRequest picks a package; an empty id clears the choice.
type SelectPackageRequest struct {
	PackageID string `json:"packageId" validate:"max=50"`
}

// ScheduleRequest sets the visit time.
type ScheduleRequest struct {
	ScheduledFor time.Time `json:"scheduledFor" validate:"required"`
}

// MonthlyPriceRequest carries the raw keypad string.
type MonthlyPriceRequest struct {
	Value string `json:"value" validate:"max=32"`
}

// TypeQuery selects the appointment type for previews.
type TypeQuery struct {
	Type string `form:"type" validate:"omitempty,oneof=lead revisit"`
}

// SubmitRequest books the session.
type SubmitRequest struct {
	Type string `json:"type" validate:"omitempty,oneof=lead revisit"`
}

// ProviderResponse is the provider step as stored.
type ProviderResponse struct {
	Name           string           `json:"name,omitempty"`
	Price          float64          `json:"price"`
	Speed          float64          `json:"speed"`
	EstimatedSpeed float64          `json:"estimatedSpeed"`
	ContractEnd    *time.Time       `json:"contractEnd,omitempty"`
	Products       profile.Products `json:"products"`
}

// SessionResponse is the wire form of a session.
type SessionResponse struct {
	ID                string           `json:"id"`
	Customer          profile.Customer `json:"customer"`
	Provider          ProviderResponse `json:"provider"`
	SelectedPackageID string           `json:"selectedPackageId,omitempty"`
	SelectedAddons    []string         `json:"selectedAddons"`
	PainPoints        []string         `json:"painPoints"`
	ScheduledFor      time.Time        `json:"scheduledFor"`
	MonthlyPrice      string           `json:"monthlyPrice"`
	MonthlyAmount     float64          `json:"monthlyAmount"`
	SelectionTotal    float64          `json:"selectionTotal"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// SubmitResponse reports the booked appointment and the reset session.
type SubmitResponse struct {
	AppointmentID string                          `json:"appointmentId"`
	Temperature   temperature.TemperatureResponse `json:"temperature"`
	Session       SessionResponse                 `json:"session"`
}
