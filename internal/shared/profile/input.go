package profile

import (
	"time"

	"salesdesk_backend/platform/money"
)

// ProviderInput is the wire form of Provider. Price accepts keypad strings.
type ProviderInput struct {
	Name           string       `json:"name" validate:"max=100"`
	Price          money.Amount `json:"price"`
	Speed          float64      `json:"speed" validate:"min=0,max=100000"`
	EstimatedSpeed float64      `json:"estimatedSpeed" validate:"min=0,max=100000"`
	ContractEnd    *time.Time   `json:"contractEnd,omitempty"`
	Products       Products     `json:"products"`
}

// ToProvider converts the input to a Provider.
func (in ProviderInput) ToProvider() Provider {
	return Provider{
		Name:           in.Name,
		Price:          in.Price.Decimal,
		Speed:          in.Speed,
		EstimatedSpeed: in.EstimatedSpeed,
		ContractEnd:    in.ContractEnd,
		Products:       in.Products,
	}
}
