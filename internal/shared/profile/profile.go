// Package profile holds the customer and current-provider value types shared
// by the intake, scoring and appointment modules.
package profile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ContactType selects which channel ContactValue holds.
type ContactType string

const (
	ContactPhone ContactType = "phone"
	ContactEmail ContactType = "email"
)

// Valid reports whether t is a known contact type.
func (t ContactType) Valid() bool {
	return t == ContactPhone || t == ContactEmail
}

// AppointmentType distinguishes a first visit from a follow-up.
type AppointmentType string

const (
	AppointmentLead    AppointmentType = "lead"
	AppointmentRevisit AppointmentType = "revisit"
)

// Valid reports whether t is a known appointment type.
func (t AppointmentType) Valid() bool {
	return t == AppointmentLead || t == AppointmentRevisit
}

// OrDefault returns t, or revisit when t is empty.
func (t AppointmentType) OrDefault() AppointmentType {
	if t == "" {
		return AppointmentRevisit
	}
	return t
}

// Landline describes which landline calls the customer uses.
type Landline string

const (
	LandlineNone     Landline = "none"
	LandlineIncoming Landline = "incoming"
	LandlineOutgoing Landline = "outgoing"
	LandlineBoth     Landline = "both"
)

// Valid reports whether l is empty or a known option.
func (l Landline) Valid() bool {
	switch l {
	case "", LandlineNone, LandlineIncoming, LandlineOutgoing, LandlineBoth:
		return true
	}
	return false
}

// Customer is what the agent knows about the householder. Every field is
// optional until the intake is submitted.
type Customer struct {
	FirstName    string      `json:"firstName,omitempty"`
	LastName     string      `json:"lastName,omitempty"`
	ContactType  ContactType `json:"contactType,omitempty"`
	ContactValue string      `json:"contactValue,omitempty"`
	Address      string      `json:"address,omitempty"`
	Postcode     string      `json:"postcode,omitempty"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Merge overlays the non-empty fields of patch onto c.
func (c Customer) Merge(patch Customer) Customer {
	if patch.FirstName != "" {
		c.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		c.LastName = patch.LastName
	}
	if patch.ContactType != "" {
		c.ContactType = patch.ContactType
	}
	if patch.ContactValue != "" {
		c.ContactValue = patch.ContactValue
	}
	if patch.Address != "" {
		c.Address = patch.Address
	}
	if patch.Postcode != "" {
		c.Postcode = patch.Postcode
	}
	return c
}

// Products are the extra services bundled with the current contract.
type Products struct {
	TV           bool     `json:"tv"`
	TVPackages   []string `json:"tvPackages,omitempty"`
	UsesServices *bool    `json:"usesServices,omitempty"`
	Mobile       bool     `json:"mobile"`
	Landline     Landline `json:"landline,omitempty"`
}

// Provider is the customer's current broadband contract. Speeds are in Mbps;
// Speed is what was promised and EstimatedSpeed what was measured.
type Provider struct {
	Name           string          `json:"name,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Speed          float64         `json:"speed,omitempty"`
	EstimatedSpeed float64         `json:"estimatedSpeed,omitempty"`
	ContractEnd    *time.Time      `json:"contractEnd,omitempty"`
	Products       Products        `json:"products"`
}

// ProviderPatch carries optional updates to a Provider.
type ProviderPatch struct {
	Name           *string
	Price          *decimal.Decimal
	Speed          *float64
	EstimatedSpeed *float64
	ContractEnd    *time.Time
	ClearEnd       bool
	Products       *Products
}

// Apply overlays the set fields of patch onto p.
func (p Provider) Apply(patch ProviderPatch) Provider {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Speed != nil {
		p.Speed = *patch.Speed
	}
	if patch.EstimatedSpeed != nil {
		p.EstimatedSpeed = *patch.EstimatedSpeed
	}
	if patch.ClearEnd {
		p.ContractEnd = nil
	} else if patch.ContractEnd != nil {
		end := *patch.ContractEnd
		p.ContractEnd = &end
	}
	if patch.Products != nil {
		p.Products = *patch.Products
	}
	return p
}

// PainPoint ids the agent can tick.
const (
	PainCost        = "cost"
	PainSpeed       = "speed"
	PainReliability = "reliability"
	PainContract    = "contract"
)

// PainPoints lists the known pain point ids in display order.
var PainPoints = []string{PainCost, PainSpeed, PainReliability, PainContract}

// IsPainPoint reports whether id is a known pain point.
func IsPainPoint(id string) bool {
	for _, p := range PainPoints {
		if p == id {
			return true
		}
	}
	return false
}
