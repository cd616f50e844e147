package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salesdesk_backend/internal/intake/repository"
	"salesdesk_backend/internal/shared/profile"
	temperature "salesdesk_backend/internal/temperature/domain"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeBooker struct {
	bookings []Booking
	err      error
}

func (f *fakeBooker) Book(_ context.Context, b Booking) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.UUID{}, f.err
	}
	f.bookings = append(f.bookings, b)
	return uuid.New(), nil
}

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestService() (*Service, *fakeBooker) {
	booker := &fakeBooker{}
	svc := New(repository.NewMemoryStore(time.Hour), nil, booker, validator.New(), Options{
		PhoneRegion:    "GB",
		KeypadMaxValue: decimal.RequireFromString("999.99"),
	}, nil).WithClock(func() time.Time { return testNow })
	return svc, booker
}

func validCustomer() profile.Customer {
	return profile.Customer{
		FirstName:    " Ada ",
		LastName:     "<b>Lovelace</b>",
		ContactType:  profile.ContactPhone,
		ContactValue: "07400 123456",
		Address:      "1 Analytical Way",
		Postcode:     "sw1a1aa",
	}
}

func TestWizardFlowAndSubmit(t *testing.T) {
	svc, booker := newTestService()
	ctx := context.Background()

	session, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := session.ID

	if _, err := svc.MergeCustomer(ctx, id, validCustomer()); err != nil {
		t.Fatalf("merge customer: %v", err)
	}
	name := "Sky"
	price := decimal.RequireFromString("45")
	if _, err := svc.MergeProvider(ctx, id, profile.ProviderPatch{Name: &name, Price: &price}); err != nil {
		t.Fatalf("merge provider: %v", err)
	}
	if _, err := svc.SelectPackage(ctx, id, "pro"); err != nil {
		t.Fatalf("select package: %v", err)
	}
	if _, err := svc.ToggleAddon(ctx, id, "youmesh"); err != nil {
		t.Fatalf("toggle addon: %v", err)
	}
	if _, err := svc.ToggleAddon(ctx, id, "youmesh-pro"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected incompatible add-on to be rejected, got %v", err)
	}
	if _, err := svc.TogglePainPoint(ctx, id, profile.PainCost); err != nil {
		t.Fatalf("toggle pain point: %v", err)
	}
	visit := testNow.Add(48 * time.Hour)
	if _, err := svc.SetSchedule(ctx, id, visit); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	session, err = svc.SetMonthlyPrice(ctx, id, "£5,000")
	if err != nil {
		t.Fatalf("monthly price: %v", err)
	}
	if got := svc.MonthlyPrice(session).String(); got != "999.99" {
		t.Fatalf("expected keypad clamp to 999.99, got %s", got)
	}
	if got := svc.SelectionTotal(session).String(); got != "36.99" {
		t.Fatalf("expected 29.99 + 7 = 36.99, got %s", got)
	}

	result, err := svc.Submit(ctx, id, profile.AppointmentLead)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(booker.bookings) != 1 {
		t.Fatalf("expected one booking, got %d", len(booker.bookings))
	}
	b := booker.bookings[0]
	if b.Customer.ContactValue != "+447400123456" || b.Customer.Postcode != "SW1A 1AA" {
		t.Fatalf("expected normalised contact and postcode, got %+v", b.Customer)
	}
	if b.Customer.FirstName != "Ada" || b.Customer.LastName != "Lovelace" {
		t.Fatalf("expected sanitised names, got %+v", b.Customer)
	}
	if b.Package == nil || b.Package.ID != "pro" || len(b.Addons) != 1 || !b.ScheduledFor.Equal(visit) {
		t.Fatalf("unexpected booking %+v", b)
	}
	if b.Type != profile.AppointmentLead || b.Result.MaxScore != temperature.MaxScore {
		t.Fatalf("unexpected type or score %+v", b.Result)
	}

	if result.Session.ID != id || result.Session.Customer.FirstName != "" || len(result.Session.SelectedAddons) != 0 {
		t.Fatalf("expected reset session with same id, got %+v", result.Session)
	}
	stored, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get after submit: %v", err)
	}
	if stored.SelectedPackageID != "" || stored.MonthlyPrice != "0" {
		t.Fatalf("expected stored session reset, got %+v", stored)
	}
}

func TestSubmitRejectsIncompleteCustomer(t *testing.T) {
	svc, booker := newTestService()
	ctx := context.Background()
	session, _ := svc.Create(ctx)

	_, _ = svc.MergeCustomer(ctx, session.ID, profile.Customer{
		FirstName:    "Ada",
		ContactType:  profile.ContactEmail,
		ContactValue: "not-an-email",
		Postcode:     "12345",
	})

	_, err := svc.Submit(ctx, session.ID, "")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := appErr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", appErr.Details)
	}
	for _, field := range []string{"lastName", "contactValue", "postcode"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected %s in details %v", field, details)
		}
	}
	if len(booker.bookings) != 0 {
		t.Fatalf("expected no booking")
	}

	stored, _ := svc.Get(ctx, session.ID)
	if stored.Customer.FirstName != "Ada" {
		t.Fatalf("failed submit must keep the session")
	}
}

func TestSubmitKeepsSessionWhenBookingFails(t *testing.T) {
	svc, booker := newTestService()
	booker.err = errors.New("db down")
	ctx := context.Background()
	session, _ := svc.Create(ctx)
	_, _ = svc.MergeCustomer(ctx, session.ID, validCustomer())

	if _, err := svc.Submit(ctx, session.ID, profile.AppointmentRevisit); err == nil {
		t.Fatalf("expected booking error")
	}
	stored, _ := svc.Get(ctx, session.ID)
	if stored.Customer.FirstName != "Ada" {
		t.Fatalf("expected session untouched, got %+v", stored.Customer)
	}
}

func TestSelectPackageDropsIncompatibleAddons(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	session, _ := svc.Create(ctx)

	_, _ = svc.ToggleAddon(ctx, session.ID, "youmesh")
	_, _ = svc.ToggleAddon(ctx, session.ID, "youphone")
	updated, err := svc.SelectPackage(ctx, session.ID, "max")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(updated.SelectedAddons) != 1 || updated.SelectedAddons[0] != "youphone" {
		t.Fatalf("expected only youphone kept, got %v", updated.SelectedAddons)
	}

	if _, err := svc.SelectPackage(ctx, session.ID, "nope"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	cleared, _ := svc.SelectPackage(ctx, session.ID, "")
	if cleared.SelectedPackageID != "" {
		t.Fatalf("expected cleared package")
	}
}

func TestRejectsUnknownInputs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	session, _ := svc.Create(ctx)

	if _, err := svc.TogglePainPoint(ctx, session.ID, "weather"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.ToggleAddon(ctx, session.ID, "jetpack"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.SetSchedule(ctx, session.ID, time.Time{}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.MergeCustomer(ctx, session.ID, profile.Customer{ContactType: "fax"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Get(ctx, uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPreviewTemperature(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	session, _ := svc.Create(ctx)
	_, _ = svc.MergeCustomer(ctx, session.ID, validCustomer())
	_, _ = svc.TogglePainPoint(ctx, session.ID, profile.PainCost)

	res, err := svc.PreviewTemperature(ctx, session.ID, "")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if res.MaxScore != temperature.MaxScore || res.Breakdown[0].Score != 3 {
		t.Fatalf("unexpected preview %+v", res)
	}
	if _, err := svc.PreviewTemperature(ctx, session.ID, "cold-call"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConcurrentEditsAreNotLost(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	session, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(profile.PainPoints))
	for _, p := range profile.PainPoints {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			if _, err := svc.TogglePainPoint(ctx, session.ID, p); err != nil {
				errs <- err
			}
		}(p)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle: %v", err)
	}

	got, err := svc.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.PainPoints) != len(profile.PainPoints) {
		t.Fatalf("expected every pain point to survive, got %v", got.PainPoints)
	}
	if got.Version != int64(len(profile.PainPoints))+1 {
		t.Fatalf("expected version %d, got %d", len(profile.PainPoints)+1, got.Version)
	}
}
