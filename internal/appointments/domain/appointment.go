// Package domain defines booked sales appointments and their lifecycle.
package domain

import (
	"time"

	"salesdesk_backend/internal/shared/profile"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an appointment may move from s to next.
// Completed is terminal; a cancelled visit can be rebooked.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusScheduled:
		return next == StatusCompleted || next == StatusCancelled
	case StatusCancelled:
		return next == StatusScheduled
	default:
		return false
	}
}

// PackageSnapshot freezes the chosen package at booking time so later
// catalog changes do not rewrite history.
type PackageSnapshot struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Speed     int              `json:"speed"`
	Price     decimal.Decimal  `json:"price"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"`
}

// EffectivePrice is the sale price when set, otherwise the list price.
func (p PackageSnapshot) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// AddonSnapshot freezes a chosen add-on at booking time.
type AddonSnapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Appointment is a booked visit with everything captured during intake.
type Appointment struct {
	ID              uuid.UUID
	Type            profile.AppointmentType
	Status          Status
	ScheduledFor    time.Time
	Customer        profile.Customer
	Provider        profile.Provider
	SelectedPackage *PackageSnapshot
	SelectedAddons  []AddonSnapshot
	PainPoints      []string
	Temperature     string
	Score           int
	MaxScore        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MonthlyTotal is the package price plus add-ons.
func (a Appointment) MonthlyTotal() decimal.Decimal {
	total := decimal.Zero
	if a.SelectedPackage != nil {
		total = a.SelectedPackage.EffectivePrice()
	}
	for _, addon := range a.SelectedAddons {
		total = total.Add(addon.Price)
	}
	return total
}

// NewAppointment holds the values captured at booking.
type NewAppointment struct {
	Type            profile.AppointmentType
	ScheduledFor    time.Time
	Customer        profile.Customer
	Provider        profile.Provider
	SelectedPackage *PackageSnapshot
	SelectedAddons  []AddonSnapshot
	PainPoints      []string
	Temperature     string
	Score           int
	MaxScore        int
}

// New creates a scheduled appointment stamped with now.
func New(in NewAppointment, now time.Time) *Appointment {
	now = now.UTC()
	return &Appointment{
		ID:              uuid.New(),
		Type:            in.Type.OrDefault(),
		Status:          StatusScheduled,
		ScheduledFor:    in.ScheduledFor.UTC(),
		Customer:        in.Customer,
		Provider:        in.Provider,
		SelectedPackage: in.SelectedPackage,
		SelectedAddons:  append([]AddonSnapshot{}, in.SelectedAddons...),
		PainPoints:      append([]string{}, in.PainPoints...),
		Temperature:     in.Temperature,
		Score:           in.Score,
		MaxScore:        in.MaxScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
