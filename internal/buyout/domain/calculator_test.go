package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeBreakdownGenericFullBuyout(t *testing.T) {
	got := ComputeBreakdown(BillingInput{Provider: "Other", MonthlyAmount: dec("30"), MonthsRemaining: 12}, DefaultOptions())

	if !got.TotalCost.Equal(dec("360")) {
		t.Fatalf("expected total 360, got %s", got.TotalCost)
	}
	if !got.TotalExVAT.Equal(dec("300")) {
		t.Fatalf("expected ex-VAT 300, got %s", got.TotalExVAT)
	}
	if !got.VATAmount.Equal(dec("60")) {
		t.Fatalf("expected VAT 60, got %s", got.VATAmount)
	}
	if !got.Contribution.Equal(dec("300")) || !got.CustomerPayment.IsZero() {
		t.Fatalf("expected contribution 300 and payment 0, got %s / %s", got.Contribution, got.CustomerPayment)
	}
	if !got.FullBuyout {
		t.Fatal("expected full buyout")
	}
	if got.TariffKey != "" {
		t.Fatalf("expected generic formula, got tariff %q", got.TariffKey)
	}
}

func TestComputeBreakdownGenericPartialBuyout(t *testing.T) {
	got := ComputeBreakdown(BillingInput{MonthlyAmount: dec("60"), MonthsRemaining: 24}, DefaultOptions())

	if !got.TotalCost.Equal(dec("1440")) || !got.TotalExVAT.Equal(dec("1200")) {
		t.Fatalf("unexpected totals: %s / %s", got.TotalCost, got.TotalExVAT)
	}
	if !got.CustomerPayment.Equal(dec("900")) {
		t.Fatalf("expected payment 900, got %s", got.CustomerPayment)
	}
	if got.FullBuyout {
		t.Fatal("expected partial buyout")
	}
}

func TestComputeBreakdownProviderFormulas(t *testing.T) {
	cases := []struct {
		provider string
		key      string
		exVAT    string
	}{
		{"Sky", "sky", "356.208"},
		{"vodafone", "vodafone", "370.656"},
		{"EE", "ee", "163.897344"},
		{"Plusnet", "plusnet", "421.344"},
		{"BT", "bt", "356.4"},
		{"NOW", "now", "201.6"},
		{"Now Broadband", "now", "201.6"},
		{"Virgin Media", "virgin-media", "540"},
		{"virgin_media", "virgin-media", "540"},
		{"TalkTalk", "talktalk", "142.56"},
	}

	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			got := ComputeBreakdown(BillingInput{Provider: tc.provider, MonthlyAmount: dec("50"), MonthsRemaining: 12}, DefaultOptions())
			if got.TariffKey != tc.key {
				t.Fatalf("expected tariff %q, got %q", tc.key, got.TariffKey)
			}
			if !got.TotalExVAT.Equal(dec(tc.exVAT)) {
				t.Fatalf("expected ex-VAT %s, got %s", tc.exVAT, got.TotalExVAT)
			}
			if !got.TotalCost.Equal(dec("600")) || !got.VATAmount.Equal(dec("100")) {
				t.Fatalf("unexpected cost split: %s / %s", got.TotalCost, got.VATAmount)
			}
		})
	}
}

func TestComputeBreakdownSkyPayment(t *testing.T) {
	got := ComputeBreakdown(BillingInput{Provider: "sky", MonthlyAmount: dec("50"), MonthsRemaining: 12}, DefaultOptions())
	if !got.Contribution.Equal(dec("300")) {
		t.Fatalf("expected contribution capped at 300, got %s", got.Contribution)
	}
	if !got.CustomerPayment.Equal(dec("56.208")) {
		t.Fatalf("expected payment 56.208, got %s", got.CustomerPayment)
	}
}

func TestComputeBreakdownEEClampsLowBills(t *testing.T) {
	got := ComputeBreakdown(BillingInput{Provider: "ee", MonthlyAmount: dec("8"), MonthsRemaining: 12}, DefaultOptions())
	if !got.TotalExVAT.IsZero() {
		t.Fatalf("expected zero ex-VAT for bill below deduction, got %s", got.TotalExVAT)
	}
	if !got.FullBuyout {
		t.Fatal("expected full buyout")
	}
}

func TestComputeBreakdownInvariants(t *testing.T) {
	opts := DefaultOptions()
	providers := []string{"", "other", "sky", "vodafone", "ee", "plusnet", "bt", "now", "virgin media", "talktalk"}
	amounts := []string{"0", "0.01", "9.99", "15", "42.5", "120", "999.99"}
	months := []int{-3, 0, 1, 6, 12, 18, 24, 36}

	for _, p := range providers {
		for _, a := range amounts {
			for _, n := range months {
				b := ComputeBreakdown(BillingInput{Provider: p, MonthlyAmount: dec(a), MonthsRemaining: n}, opts)
				for name, v := range map[string]decimal.Decimal{
					"total": b.TotalCost, "vat": b.VATAmount, "exvat": b.TotalExVAT,
					"contribution": b.Contribution, "payment": b.CustomerPayment,
				} {
					if v.IsNegative() {
						t.Fatalf("%s/%s/%d: %s is negative: %s", p, a, n, name, v)
					}
				}
				if b.Contribution.GreaterThan(opts.ContributionCap) {
					t.Fatalf("%s/%s/%d: contribution above cap: %s", p, a, n, b.Contribution)
				}
				if !b.Contribution.Add(b.CustomerPayment).Equal(b.TotalExVAT) {
					t.Fatalf("%s/%s/%d: contribution + payment != ex-VAT", p, a, n)
				}
				if b.FullBuyout != b.CustomerPayment.IsZero() {
					t.Fatalf("%s/%s/%d: full buyout flag mismatch", p, a, n)
				}
				if b.TariffKey == "" && !b.VATAmount.Add(b.TotalExVAT).Equal(b.TotalCost) {
					t.Fatalf("%s/%s/%d: generic split does not add up", p, a, n)
				}
			}
		}
	}
}

func TestComputeBreakdownIsRepeatable(t *testing.T) {
	opts := DefaultOptions()
	for _, p := range []string{"other", "plusnet", "ee"} {
		in := BillingInput{Provider: p, MonthlyAmount: dec("47.35"), MonthsRemaining: 17}
		a, b := ComputeBreakdown(in, opts), ComputeBreakdown(in, opts)
		if a.TariffKey != b.TariffKey || a.FullBuyout != b.FullBuyout || a.MonthsRemaining != b.MonthsRemaining ||
			!a.TotalCost.Equal(b.TotalCost) || !a.VATAmount.Equal(b.VATAmount) || !a.TotalExVAT.Equal(b.TotalExVAT) ||
			!a.Contribution.Equal(b.Contribution) || !a.CustomerPayment.Equal(b.CustomerPayment) {
			t.Fatalf("%s: repeated calls differ: %+v vs %+v", p, a, b)
		}
	}
}

func TestComputeBreakdownEndedContractHasNoFee(t *testing.T) {
	// Plusnet's extra 20 days only apply while months remain.
	got := ComputeBreakdown(BillingInput{Provider: "plusnet", MonthlyAmount: dec("50"), MonthsRemaining: 0}, DefaultOptions())
	if got.TariffKey != "plusnet" || !got.TotalExVAT.IsZero() || !got.FullBuyout {
		t.Fatalf("expected zero fee for an ended contract, got %s via %q", got.TotalExVAT, got.TariffKey)
	}
}

func TestComputeBreakdownNegativeInputsClamp(t *testing.T) {
	got := ComputeBreakdown(BillingInput{MonthlyAmount: dec("-20"), MonthsRemaining: -4}, DefaultOptions())
	if got.MonthsRemaining != 0 || !got.MonthlyAmount.IsZero() || !got.TotalCost.IsZero() {
		t.Fatalf("expected clamped zero breakdown, got %+v", got)
	}
	if !got.FullBuyout {
		t.Fatal("zero cost should be a full buyout")
	}
}

func TestCalculatorDefaultsMissingTable(t *testing.T) {
	calc := NewCalculator(Options{ContributionCap: dec("300"), VATRate: dec("0.2")})
	got := calc.Compute(BillingInput{Provider: "sky", MonthlyAmount: dec("30"), MonthsRemaining: 12})
	if got.TariffKey != "" || !got.TotalExVAT.Equal(dec("300")) {
		t.Fatalf("expected generic formula without a table, got %s via %q", got.TotalExVAT, got.TariffKey)
	}
}

func TestComputeDiscounted(t *testing.T) {
	got := ComputeDiscounted(dec("30"), 10, dec("300"))
	if !got.DiscountedAmount.Equal(dec("240")) || !got.CanFullyBuyout {
		t.Fatalf("expected 240 fully covered, got %s (%v)", got.DiscountedAmount, got.CanFullyBuyout)
	}
	if !got.CustomerContribution.IsZero() {
		t.Fatalf("expected no customer contribution, got %s", got.CustomerContribution)
	}

	got = ComputeDiscounted(dec("50"), 10, dec("300"))
	if got.CanFullyBuyout {
		t.Fatal("expected 400 to exceed the cap")
	}
	if !got.CustomerContribution.Equal(dec("100")) || !got.MonthlyContribution.Equal(dec("10")) {
		t.Fatalf("unexpected contribution %s / %s", got.CustomerContribution, got.MonthlyContribution)
	}

	got = ComputeDiscounted(dec("50"), 0, dec("300"))
	if !got.CanFullyBuyout || !got.MonthlyContribution.IsZero() {
		t.Fatalf("zero months should be fully covered, got %+v", got)
	}
}

func TestMonthsUntil(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		end  time.Time
		want int
	}{
		{time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), 12},
		{time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		if got := MonthsUntil(tc.end, now); got != tc.want {
			t.Fatalf("MonthsUntil(%s) = %d, want %d", tc.end.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestMonthsLeftInclusive(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		end  time.Time
		want int
	}{
		{time.Date(2025, time.January, 28, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 2},
		{time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		if got := MonthsLeftInclusive(tc.end, now); got != tc.want {
			t.Fatalf("MonthsLeftInclusive(%s) = %d, want %d", tc.end.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestPresetToMonths(t *testing.T) {
	for _, p := range PresetMonths {
		if PresetToMonths(p) != p {
			t.Fatalf("preset %d should map to itself", p)
		}
	}
	if PresetToMonths(9) != 0 {
		t.Fatal("unknown preset should map to 0")
	}
}
