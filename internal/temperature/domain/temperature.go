// Package domain scores how likely a visit is to convert ("sale temperature")
// from what the agent has captured so far.
package domain

import (
	"fmt"
	"math"
	"time"

	buyout "salesdesk_backend/internal/buyout/domain"
	catalog "salesdesk_backend/internal/catalog/domain"
	"salesdesk_backend/internal/shared/profile"
	"salesdesk_backend/platform/money"

	"github.com/shopspring/decimal"
)

// Temperature buckets a score ratio.
type Temperature string

const (
	Cold Temperature = "cold"
	Warm Temperature = "warm"
	Hot  Temperature = "hot"
)

// Category names, in scoring order.
const (
	CategoryCustomer = "Customer Information"
	CategoryBuyout   = "Contract Buyout"
	CategorySpeed    = "Speed Comparison"
	CategoryPrice    = "Price Comparison"
	CategoryPain     = "Pain Points"
)

// Per-category maxima. They always sum to MaxScore.
const (
	maxCustomer = 3
	maxBuyout   = 1
	maxSpeed    = 4
	maxPrice    = 2
	maxPain     = 2

	MaxScore = maxCustomer + maxBuyout + maxSpeed + maxPrice + maxPain
)

var (
	bigSaving        = decimal.NewFromInt(10)
	smallSaving      = decimal.NewFromInt(5)
	bigSavingPct     = decimal.NewFromInt(25)
	smallSavingPct   = decimal.NewFromInt(10)
	hundred          = decimal.NewFromInt(100)
	defaultBuyoutCap = decimal.NewFromInt(300)
)

// Category is one scored dimension. Details are display hints only.
type Category struct {
	Category string
	Score    int
	MaxScore int
	Details  []string
}

// Result aggregates the categories.
type Result struct {
	TotalScore  int
	MaxScore    int
	Temperature Temperature
	Breakdown   []Category
}

// Input is everything the scorer looks at. SelectedPackage is optional and
// only enriches the buyout details.
type Input struct {
	Customer        profile.Customer
	Provider        profile.Provider
	PainPoints      []string
	Type            profile.AppointmentType
	SelectedPackage *catalog.Package
}

// Scorer computes sale temperatures against a catalog.
type Scorer struct {
	catalog   *catalog.Catalog
	buyoutCap decimal.Decimal
	now       func() time.Time
}

// NewScorer creates a scorer. A nil catalog uses the built-in one.
func NewScorer(c *catalog.Catalog) *Scorer {
	if c == nil {
		c = catalog.Default()
	}
	return &Scorer{catalog: c, buyoutCap: defaultBuyoutCap, now: time.Now}
}

// WithClock replaces the clock used for contract months.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// CalculateTemperature scores with the built-in catalog.
func CalculateTemperature(customer profile.Customer, provider profile.Provider, painPoints []string, apptType profile.AppointmentType, now time.Time) Result {
	return NewScorer(nil).WithClock(func() time.Time { return now }).Calculate(Input{
		Customer:   customer,
		Provider:   provider,
		PainPoints: painPoints,
		Type:       apptType,
	})
}

// Calculate scores in. An empty appointment type counts as a revisit.
func (s *Scorer) Calculate(in Input) Result {
	typ := in.Type.OrDefault()
	breakdown := []Category{
		customerScore(in.Customer),
		s.buyoutScore(in.Provider, in.SelectedPackage),
		s.speedScore(in.Provider, typ),
		s.priceScore(in.Provider, typ),
		painScore(in.PainPoints),
	}

	res := Result{Breakdown: breakdown}
	for _, c := range breakdown {
		res.TotalScore += c.Score
		res.MaxScore += c.MaxScore
	}
	res.Temperature = bucket(res.TotalScore, res.MaxScore)
	return res
}

func bucket(total, outOf int) Temperature {
	switch {
	case outOf <= 0:
		return Cold
	case total*10 >= outOf*8:
		return Hot
	case total*2 >= outOf:
		return Warm
	default:
		return Cold
	}
}

func customerScore(c profile.Customer) Category {
	out := Category{Category: CategoryCustomer, MaxScore: maxCustomer, Details: []string{}}
	if c.FirstName != "" && c.LastName != "" {
		out.Score++
		out.Details = append(out.Details, "Complete customer name provided")
	}
	if c.ContactValue != "" {
		out.Score++
		channel := "Phone"
		if c.ContactType == profile.ContactEmail {
			channel = "Email"
		}
		out.Details = append(out.Details, channel+" contact provided")
	}
	if c.Address != "" && c.Postcode != "" {
		out.Score++
		out.Details = append(out.Details, "Full address provided")
	}
	return out
}

func (s *Scorer) buyoutScore(p profile.Provider, selected *catalog.Package) Category {
	out := Category{Category: CategoryBuyout, MaxScore: maxBuyout, Details: []string{}}
	if !p.Price.IsPositive() || p.ContractEnd == nil {
		return out
	}

	months := buyout.MonthsLeftInclusive(*p.ContractEnd, s.now())
	r := buyout.ComputeDiscounted(p.Price, months, s.buyoutCap)

	var monthlySaving decimal.Decimal
	if selected != nil {
		monthlySaving = p.Price.Sub(selected.EffectivePrice())
	}

	if r.CanFullyBuyout {
		out.Score = 1
		out.Details = append(out.Details, "Full contract buyout available")
		if monthlySaving.IsPositive() {
			out.Details = append(out.Details, "Monthly savings: "+money.Format(monthlySaving))
		}
		return out
	}

	out.Details = append(out.Details, "Partial buyout required")
	if selected != nil {
		net := monthlySaving.Sub(r.MonthlyContribution)
		if net.IsPositive() {
			out.Details = append(out.Details, "Monthly savings: "+money.Format(net)+" after buyout contribution")
		}
	}
	return out
}

func (s *Scorer) speedScore(p profile.Provider, typ profile.AppointmentType) Category {
	out := Category{Category: CategorySpeed, MaxScore: maxSpeed, Details: []string{}}
	measured := p.EstimatedSpeed
	promised := p.Speed

	if typ == profile.AppointmentRevisit && promised > 0 && measured > 0 {
		drop := (promised - measured) / promised * 100
		switch {
		case drop >= 50:
			out.Score += 2
			out.Details = append(out.Details, fmt.Sprintf("Getting %.0f%% less than promised speed", drop))
		case drop >= 25:
			out.Score++
			out.Details = append(out.Details, fmt.Sprintf("Getting %.0f%% less than promised speed", drop))
		}
	}

	if measured > 0 {
		if best, ok := s.catalog.FastestAbove(int(math.Floor(measured))); ok {
			ratio := float64(best.Speed) / measured
			switch {
			case ratio >= 5:
				out.Score += 2
				out.Details = append(out.Details, fmt.Sprintf("Can offer %.0fx faster speeds", ratio))
			case ratio >= 2:
				out.Score++
				out.Details = append(out.Details, fmt.Sprintf("Can offer %.0fx faster speeds", ratio))
			}
		}
	}
	return out
}

func (s *Scorer) priceScore(p profile.Provider, typ profile.AppointmentType) Category {
	out := Category{Category: CategoryPrice, MaxScore: maxPrice, Details: []string{}}
	if typ != profile.AppointmentRevisit || !p.Price.IsPositive() {
		return out
	}
	best, ok := s.catalog.CheapestBelow(p.Price)
	if !ok {
		return out
	}

	proposed := best.EffectivePrice()
	saving := p.Price.Sub(proposed)
	pct := saving.Div(p.Price).Mul(hundred)

	switch {
	case saving.GreaterThanOrEqual(bigSaving) || pct.GreaterThanOrEqual(bigSavingPct):
		out.Score = 2
		out.Details = append(out.Details,
			"Currently paying: "+money.Format(p.Price),
			fmt.Sprintf("Our price: %s (%s monthly saving)", money.Format(proposed), money.Format(saving)),
		)
	case saving.GreaterThanOrEqual(smallSaving) || pct.GreaterThanOrEqual(smallSavingPct):
		out.Score = 1
		out.Details = append(out.Details, fmt.Sprintf("Monthly savings of %s available", money.Format(saving)))
	}
	return out
}

func painScore(points []string) Category {
	out := Category{Category: CategoryPain, MaxScore: maxPain, Details: []string{}}
	n := len(points)
	out.Score = min(n, maxPain)
	switch {
	case n == 1:
		out.Details = append(out.Details, "1 pain point identified")
	case n > 1:
		out.Details = append(out.Details, fmt.Sprintf("%d pain points identified", n))
	}
	return out
}
