package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one    = decimal.NewFromInt(1)
	thirty = decimal.NewFromInt(30)
)

// FeeFormula describes a provider's early-termination charge as parameters
// applied in a fixed order to the monthly bill m over n months at VAT rate v:
//
//	x := m - GrossDeduction
//	if RemoveVAT { x *= 1 - v }
//	x = max(0, x*(1-SavingsPercent) - FlatMonthlyFee)
//	x *= 1 - EarlyPaymentDiscount
//	total := x*n + x*ExtraDays/30
//	if ReapplyVAT { total *= 1 + v }
//	if Uplift != 0 { total *= Uplift }
type FeeFormula struct {
	GrossDeduction       decimal.Decimal
	RemoveVAT            bool
	SavingsPercent       decimal.Decimal
	FlatMonthlyFee       decimal.Decimal
	EarlyPaymentDiscount decimal.Decimal
	ExtraDays            int64
	ReapplyVAT           bool
	Uplift               decimal.Decimal
}

// Apply evaluates the formula. The result is never negative, and a contract
// with no months left owes nothing, ExtraDays included.
func (f FeeFormula) Apply(monthly decimal.Decimal, months int, vatRate decimal.Decimal) decimal.Decimal {
	if months <= 0 || !monthly.IsPositive() {
		return decimal.Zero
	}

	x := monthly.Sub(f.GrossDeduction)
	if f.RemoveVAT {
		x = x.Mul(one.Sub(vatRate))
	}
	x = x.Mul(one.Sub(f.SavingsPercent)).Sub(f.FlatMonthlyFee)
	if x.IsNegative() {
		return decimal.Zero
	}
	x = x.Mul(one.Sub(f.EarlyPaymentDiscount))

	total := x.Mul(decimal.NewFromInt(int64(months)))
	if f.ExtraDays > 0 {
		total = total.Add(x.Mul(decimal.NewFromInt(f.ExtraDays)).Div(thirty))
	}
	if f.ReapplyVAT {
		total = total.Mul(one.Add(vatRate))
	}
	if !f.Uplift.IsZero() {
		total = total.Mul(f.Uplift)
	}
	return total
}

// DefaultFormula is used for recognised providers without a bespoke formula.
var DefaultFormula = FeeFormula{
	RemoveVAT:            true,
	SavingsPercent:       decimal.RequireFromString("0.75"),
	EarlyPaymentDiscount: decimal.RequireFromString("0.01"),
	ReapplyVAT:           true,
}

// Tariff binds a provider to its fee formula.
type Tariff struct {
	Key     string
	Name    string
	Aliases []string
	Formula FeeFormula
}

// Table maps normalised provider names to tariffs. Every alias resolves to
// exactly one tariff key.
type Table struct {
	byKey   map[string]Tariff
	aliases map[string]string
	keys    []string
}

// NewTable builds a table. Later entries replace earlier ones with the same
// key. It panics on alias conflicts, so use it for static tables only.
func NewTable(tariffs ...Tariff) *Table {
	t := &Table{byKey: make(map[string]Tariff), aliases: make(map[string]string)}
	for _, tariff := range tariffs {
		if err := t.Put(tariff); err != nil {
			panic(err)
		}
	}
	return t
}

// Put adds a tariff or replaces the one with the same key. A replaced
// tariff's aliases are dropped with it. A key or alias that already names a
// different tariff is rejected and leaves the table unchanged.
func (t *Table) Put(tariff Tariff) error {
	key := NormalizeProvider(tariff.Key)
	if key == "" {
		return errors.New("tariff key is required")
	}
	if owner, ok := t.aliases[key]; ok && owner != key {
		return fmt.Errorf("tariff key %q is already an alias of %q", key, owner)
	}

	aliases := make([]string, 0, len(tariff.Aliases))
	kept := make([]string, 0, len(tariff.Aliases))
	for _, alias := range tariff.Aliases {
		a := NormalizeProvider(alias)
		if a == "" || a == key {
			continue
		}
		if _, ok := t.byKey[a]; ok {
			return fmt.Errorf("alias %q of %q collides with tariff key %q", alias, key, a)
		}
		if owner, ok := t.aliases[a]; ok && owner != key {
			return fmt.Errorf("alias %q of %q is already an alias of %q", alias, key, owner)
		}
		aliases = append(aliases, a)
		kept = append(kept, alias)
	}

	if prev, exists := t.byKey[key]; exists {
		for _, alias := range prev.Aliases {
			delete(t.aliases, NormalizeProvider(alias))
		}
	} else {
		t.keys = append(t.keys, key)
	}

	tariff.Key = key
	tariff.Aliases = kept
	t.byKey[key] = tariff
	for _, a := range aliases {
		t.aliases[a] = key
	}
	return nil
}

// Lookup finds the tariff for a provider name, matching key or alias
// case-insensitively.
func (t *Table) Lookup(provider string) (Tariff, bool) {
	if t == nil {
		return Tariff{}, false
	}
	key := NormalizeProvider(provider)
	if key == "" {
		return Tariff{}, false
	}
	if owner, ok := t.aliases[key]; ok {
		key = owner
	}
	tariff, ok := t.byKey[key]
	return tariff, ok
}

// Tariffs returns the registered tariffs sorted by display name.
func (t *Table) Tariffs() []Tariff {
	out := make([]Tariff, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NormalizeProvider lower-cases a provider name and joins words with '-'.
func NormalizeProvider(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "-")
}

// DefaultTariffs returns the built-in provider formulas.
func DefaultTariffs() *Table {
	pct := decimal.RequireFromString
	return NewTable(
		Tariff{Key: "sky", Name: "Sky", Formula: FeeFormula{
			RemoveVAT:      true,
			SavingsPercent: pct("0.59"),
			Uplift:         pct("1.81"),
		}},
		Tariff{Key: "vodafone", Name: "Vodafone", Formula: FeeFormula{
			RemoveVAT:            true,
			FlatMonthlyFee:       pct("14"),
			EarlyPaymentDiscount: pct("0.01"),
			ReapplyVAT:           true,
		}},
		Tariff{Key: "ee", Name: "EE", Formula: FeeFormula{
			GrossDeduction:       pct("11"),
			RemoveVAT:            true,
			SavingsPercent:       pct("0.62"),
			EarlyPaymentDiscount: pct("0.04"),
			ReapplyVAT:           true,
		}},
		Tariff{Key: "plusnet", Name: "Plusnet", Formula: FeeFormula{
			RemoveVAT:            true,
			FlatMonthlyFee:       pct("12"),
			EarlyPaymentDiscount: pct("0.01"),
			ExtraDays:            20,
			ReapplyVAT:           true,
		}},
		Tariff{Key: "bt", Name: "BT", Formula: FeeFormula{
			RemoveVAT:            true,
			FlatMonthlyFee:       pct("15"),
			EarlyPaymentDiscount: pct("0.01"),
			ReapplyVAT:           true,
		}},
		Tariff{Key: "now", Name: "Now", Aliases: []string{"now broadband"}, Formula: FeeFormula{
			RemoveVAT:      true,
			SavingsPercent: pct("0.58"),
		}},
		Tariff{Key: "virgin-media", Name: "Virgin Media", Aliases: []string{"virgin"}, Formula: FeeFormula{
			SavingsPercent: pct("0.10"),
		}},
		Tariff{Key: "talktalk", Name: "TalkTalk", Formula: DefaultFormula},
	)
}
