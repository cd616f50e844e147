package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusScheduled, false},
		{StatusCancelled, StatusScheduled, true},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestNewDefaultsAndTotals(t *testing.T) {
	sale := decimal.RequireFromString("27.99")
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.FixedZone("BST", 3600))
	a := New(NewAppointment{
		ScheduledFor:    now.Add(48 * time.Hour),
		SelectedPackage: &PackageSnapshot{ID: "standard", Price: decimal.RequireFromString("28.99"), SalePrice: &sale},
		SelectedAddons: []AddonSnapshot{
			{ID: "youmesh", Price: decimal.NewFromInt(7)},
			{ID: "youphone", Price: decimal.NewFromInt(3)},
		},
	}, now)

	if a.Type != "revisit" || a.Status != StatusScheduled {
		t.Fatalf("unexpected defaults: %s %s", a.Type, a.Status)
	}
	if a.CreatedAt.Location() != time.UTC || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Fatal("timestamps should be equal and in UTC")
	}
	if !a.MonthlyTotal().Equal(decimal.RequireFromString("37.99")) {
		t.Fatalf("expected 37.99, got %s", a.MonthlyTotal())
	}
	if a.PainPoints == nil {
		t.Fatal("pain points should never be nil")
	}
}
