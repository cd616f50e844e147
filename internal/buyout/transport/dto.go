package transport

import (
	"time"

	"salesdesk_backend/platform/money"
)

// Months can be given directly, as a preset, or derived from the contract
// end date. The end date wins over a preset, which wins over MonthsRemaining.
type BreakdownRequest struct {
	Provider        string       `json:"provider" validate:"max=100"`
	MonthlyAmount   money.Amount `json:"monthlyAmount"`
	MonthsRemaining int          `json:"monthsRemaining" validate:"max=600"`
	Preset          *int         `json:"preset,omitempty"`
	ContractEnd     *time.Time   `json:"contractEnd,omitempty"`
}

type BreakdownResponse struct {
	Provider        string  `json:"provider"`
	TariffKey       string  `json:"tariffKey,omitempty"`
	MonthlyAmount   float64 `json:"monthlyAmount"`
	MonthsRemaining int     `json:"monthsRemaining"`
	TotalCost       float64 `json:"totalCost"`
	VATAmount       float64 `json:"vatAmount"`
	TotalExVAT      float64 `json:"totalExVat"`
	Contribution    float64 `json:"contribution"`
	CustomerPayment float64 `json:"customerPayment"`
	FullBuyout      bool    `json:"fullBuyout"`
	Formatted       struct {
		TotalCost       string `json:"totalCost"`
		Contribution    string `json:"contribution"`
		CustomerPayment string `json:"customerPayment"`
	} `json:"formatted"`
}

type DiscountedRequest struct {
	MonthlyPrice money.Amount `json:"monthlyPrice"`
	MonthsLeft   int          `json:"monthsLeft" validate:"max=600"`
	ContractEnd  *time.Time   `json:"contractEnd,omitempty"`
}

type DiscountedResponse struct {
	MonthlyPrice         float64 `json:"monthlyPrice"`
	MonthsLeft           int     `json:"monthsLeft"`
	DiscountedAmount     float64 `json:"discountedAmount"`
	ContributionCap      float64 `json:"contributionCap"`
	CanFullyBuyout       bool    `json:"canFullyBuyout"`
	CustomerContribution float64 `json:"customerContribution"`
	MonthlyContribution  float64 `json:"monthlyContribution"`
}

type ProviderResponse struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

type ProvidersResponse struct {
	Providers       []ProviderResponse `json:"providers"`
	Presets         []int              `json:"presets"`
	ContributionCap float64            `json:"contributionCap"`
	VATRate         float64            `json:"vatRate"`
	KeypadMaxValue  float64            `json:"keypadMaxValue"`
}
