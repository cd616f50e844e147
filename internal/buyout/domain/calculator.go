// Package domain holds the contract buyout arithmetic. Everything here is pure:
// no I/O, no clock reads, no errors. Invalid input degrades to zero values.
package domain

import (
	"github.com/shopspring/decimal"
)

// Default buyout parameters.
var (
	DefaultContributionCap = decimal.NewFromInt(300)
	DefaultVATRate         = decimal.RequireFromString("0.20")
)

// discountRate is the share of the remaining contract value used by the
// discounted buyout variant.
var discountRate = decimal.RequireFromString("0.8")

// Options configure a Calculator.
type Options struct {
	ContributionCap decimal.Decimal
	VATRate         decimal.Decimal
	Tariffs         *Table
}

// DefaultOptions returns the built-in cap, VAT rate and tariff table.
func DefaultOptions() Options {
	return Options{
		ContributionCap: DefaultContributionCap,
		VATRate:         DefaultVATRate,
		Tariffs:         DefaultTariffs(),
	}
}

// BillingInput is the customer's current contract.
type BillingInput struct {
	Provider        string
	MonthlyAmount   decimal.Decimal
	MonthsRemaining int
}

// Breakdown is the result of a buyout computation.
type Breakdown struct {
	Provider        string
	TariffKey       string
	MonthlyAmount   decimal.Decimal
	MonthsRemaining int
	TotalCost       decimal.Decimal
	VATAmount       decimal.Decimal
	TotalExVAT      decimal.Decimal
	Contribution    decimal.Decimal
	CustomerPayment decimal.Decimal
	FullBuyout      bool
}

// Calculator computes buyout breakdowns against a tariff table.
type Calculator struct {
	opts Options
}

// NewCalculator fills unset options with defaults.
func NewCalculator(opts Options) *Calculator {
	if opts.ContributionCap.IsNegative() {
		opts.ContributionCap = decimal.Zero
	}
	if opts.VATRate.IsNegative() || opts.VATRate.GreaterThanOrEqual(one) {
		opts.VATRate = DefaultVATRate
	}
	if opts.Tariffs == nil {
		opts.Tariffs = NewTable()
	}
	return &Calculator{opts: opts}
}

// Options returns the effective options.
func (c *Calculator) Options() Options { return c.opts }

// Compute returns the breakdown for in.
func (c *Calculator) Compute(in BillingInput) Breakdown {
	return ComputeBreakdown(in, c.opts)
}

// ComputeBreakdown applies the buyout rules:
//
//	TotalCost       = monthly × months
//	TotalExVAT      = provider formula, or TotalCost/(1+v) when the provider is unknown
//	Contribution    = min(cap, TotalExVAT)
//	CustomerPayment = TotalExVAT − Contribution
func ComputeBreakdown(in BillingInput, opts Options) Breakdown {
	monthly := in.MonthlyAmount
	if monthly.IsNegative() {
		monthly = decimal.Zero
	}
	months := in.MonthsRemaining
	if months < 0 {
		months = 0
	}
	capAmount := opts.ContributionCap
	if capAmount.IsNegative() {
		capAmount = decimal.Zero
	}
	vat := opts.VATRate

	total := monthly.Mul(decimal.NewFromInt(int64(months)))
	genericExVAT := total.Div(one.Add(vat))

	out := Breakdown{
		Provider:        in.Provider,
		MonthlyAmount:   monthly,
		MonthsRemaining: months,
		TotalCost:       total,
		VATAmount:       total.Sub(genericExVAT),
		TotalExVAT:      genericExVAT,
	}

	if tariff, ok := opts.Tariffs.Lookup(in.Provider); ok {
		out.TariffKey = tariff.Key
		out.TotalExVAT = decimal.Max(decimal.Zero, tariff.Formula.Apply(monthly, months, vat))
	}

	out.Contribution = decimal.Min(capAmount, out.TotalExVAT)
	out.CustomerPayment = decimal.Max(decimal.Zero, out.TotalExVAT.Sub(out.Contribution))
	out.FullBuyout = out.CustomerPayment.IsZero()
	return out
}

// DiscountedBuyout is the 80%-of-remaining-value variant used for scoring.
type DiscountedBuyout struct {
	MonthlyPrice         decimal.Decimal
	MonthsLeft           int
	DiscountedAmount     decimal.Decimal
	ContributionCap      decimal.Decimal
	CanFullyBuyout       bool
	CustomerContribution decimal.Decimal
	MonthlyContribution  decimal.Decimal
}

// ComputeDiscounted values the remaining contract at 80% and compares it to
// the contribution cap.
func ComputeDiscounted(monthly decimal.Decimal, monthsLeft int, capAmount decimal.Decimal) DiscountedBuyout {
	if monthly.IsNegative() {
		monthly = decimal.Zero
	}
	if monthsLeft < 0 {
		monthsLeft = 0
	}
	if capAmount.IsNegative() {
		capAmount = decimal.Zero
	}

	discounted := discountRate.Mul(decimal.NewFromInt(int64(monthsLeft))).Mul(monthly)
	out := DiscountedBuyout{
		MonthlyPrice:         monthly,
		MonthsLeft:           monthsLeft,
		DiscountedAmount:     discounted,
		ContributionCap:      capAmount,
		CanFullyBuyout:       discounted.LessThanOrEqual(capAmount),
		CustomerContribution: decimal.Max(decimal.Zero, discounted.Sub(capAmount)),
	}
	if monthsLeft > 0 {
		out.MonthlyContribution = out.CustomerContribution.Div(decimal.NewFromInt(int64(monthsLeft)))
	}
	return out
}
