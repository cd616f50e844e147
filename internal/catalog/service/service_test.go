package service

import (
	"testing"

	"salesdesk_backend/internal/catalog/transport"
	"salesdesk_backend/platform/apperr"
)

func TestRecommend_Example(t *testing.T) {
	svc := New(nil)
	got := svc.Recommend(transport.PriceRequest{CurrentPrice: 28.50})
	if !got.Found || got.Package.Speed != 500 {
		t.Fatalf("expected 500 Mbps, got %+v", got)
	}
	if got.Package.EffectivePrice != 27.99 || got.Package.SalePrice == nil {
		t.Fatalf("expected sale price 27.99, got %+v", got.Package)
	}
}

func TestListAddons_FiltersBySpeed(t *testing.T) {
	svc := New(nil)
	if n := len(svc.ListAddons(transport.ListAddonsRequest{}).Items); n != 5 {
		t.Fatalf("expected 5 add-ons, got %d", n)
	}
	if n := len(svc.ListAddons(transport.ListAddonsRequest{Speed: 2000}).Items); n != 4 {
		t.Fatalf("expected 4 add-ons for 2000 Mbps, got %d", n)
	}
}

func TestListTVPackages_GroupOrder(t *testing.T) {
	groups := New(nil).ListTVPackages().Groups
	if len(groups) != 4 || groups[0].Type != "entertainment" || groups[3].Type != "kids" {
		t.Fatalf("unexpected groups %+v", groups)
	}
}

func TestQuote(t *testing.T) {
	svc := New(nil)

	got, err := svc.Quote(transport.QuoteRequest{PackageID: "pro", AddonIDs: []string{"youmesh", "youphone", "youmesh"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Addons) != 2 || got.AddonsTotal != 10 || got.MonthlyTotal != 39.99 {
		t.Fatalf("unexpected quote %+v", got)
	}

	if _, err := svc.Quote(transport.QuoteRequest{PackageID: "max", AddonIDs: []string{"youmesh"}}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for incompatible add-on, got %v", err)
	}
	if _, err := svc.Quote(transport.QuoteRequest{PackageID: "nope"}); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSpeedCheck(t *testing.T) {
	got := New(nil).SpeedCheck(transport.SpeedCheckRequest{EstimatedSpeed: 80, ActualSpeed: 50})
	if !got.Significant || got.DropPercent != 37.5 {
		t.Fatalf("unexpected speed check %+v", got)
	}
}
