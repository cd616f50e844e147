// Package service implements the intake wizard: the agent edits one session
// step by step and finally submits it as a booked appointment.
package service

import (
	"context"
	"strings"
	"time"

	catalog "salesdesk_backend/internal/catalog/domain"
	"salesdesk_backend/internal/intake/domain"
	"salesdesk_backend/internal/intake/repository"
	"salesdesk_backend/internal/shared/profile"
	temperature "salesdesk_backend/internal/temperature/domain"
	"salesdesk_backend/platform/apperr"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/money"
	"salesdesk_backend/platform/phone"
	"salesdesk_backend/platform/sanitize"
	"salesdesk_backend/platform/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxUpdateAttempts bounds the retries of a session edit that keeps losing
// version races.
const maxUpdateAttempts = 5

// Booking is a validated session ready to become an appointment.
type Booking struct {
	Type         profile.AppointmentType
	ScheduledFor time.Time
	Customer     profile.Customer
	Provider     profile.Provider
	Package      *catalog.Package
	Addons       []catalog.Addon
	PainPoints   []string
	Result       temperature.Result
}

// Booker creates the appointment for a submitted session.
type Booker interface {
	Book(ctx context.Context, booking Booking) (uuid.UUID, error)
}

// Options tunes the service.
type Options struct {
	PhoneRegion    string
	KeypadMaxValue decimal.Decimal
}

// Service provides the intake operations. Every operation loads the session,
// changes it and saves it back.
type Service struct {
	store   repository.Store
	catalog *catalog.Catalog
	scorer  *temperature.Scorer
	booker  Booker
	val     *validator.Validator
	opts    Options
	log     *logger.Logger
	now     func() time.Time
}

// New creates the intake service.
func New(store repository.Store, c *catalog.Catalog, booker Booker, val *validator.Validator, opts Options, log *logger.Logger) *Service {
	if c == nil {
		c = catalog.Default()
	}
	if opts.PhoneRegion == "" {
		opts.PhoneRegion = phone.DefaultRegion
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		store:   store,
		catalog: c,
		scorer:  temperature.NewScorer(c),
		booker:  booker,
		val:     val,
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

// WithClock overrides the time source for timestamps and contract months.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	s.scorer.WithClock(now)
	return s
}

// Create starts a new session.
func (s *Service) Create(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession(s.now())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return s.store.Get(ctx, id)
}

// Discard deletes a session.
func (s *Service) Discard(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// update applies fn to a fresh copy of the session and saves it. A save that
// loses a race with another request is retried against the newer copy.
func (s *Service) update(ctx context.Context, id uuid.UUID, fn func(*domain.Session) error) (*domain.Session, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		session, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(session); err != nil {
			return nil, err
		}
		session.Touch(s.now())
		err = s.store.Save(ctx, session)
		if err == nil {
			return session, nil
		}
		if !apperr.Is(err, apperr.KindConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// MergeCustomer overlays the non-empty fields of patch. Text is sanitised;
// nothing is validated until submit.
func (s *Service) MergeCustomer(ctx context.Context, id uuid.UUID, patch profile.Customer) (*domain.Session, error) {
	if patch.ContactType != "" && !patch.ContactType.Valid() {
		return nil, apperr.Validation("contactType must be phone or email")
	}
	patch.FirstName = sanitize.Text(patch.FirstName)
	patch.LastName = sanitize.Text(patch.LastName)
	patch.ContactValue = sanitize.Text(patch.ContactValue)
	patch.Address = sanitize.Text(patch.Address)
	patch.Postcode = sanitize.Text(patch.Postcode)

	return s.update(ctx, id, func(session *domain.Session) error {
		session.Customer = session.Customer.Merge(patch)
		return nil
	})
}

// MergeProvider applies patch to the current provider details.
func (s *Service) MergeProvider(ctx context.Context, id uuid.UUID, patch profile.ProviderPatch) (*domain.Session, error) {
	if patch.Name != nil {
		name := sanitize.Text(*patch.Name)
		patch.Name = &name
	}
	if patch.Price != nil {
		price := money.Clamp(*patch.Price, s.opts.KeypadMaxValue)
		patch.Price = &price
	}
	if patch.Speed != nil && *patch.Speed < 0 {
		return nil, apperr.Validation("speed must not be negative")
	}
	if patch.EstimatedSpeed != nil && *patch.EstimatedSpeed < 0 {
		return nil, apperr.Validation("estimatedSpeed must not be negative")
	}
	if patch.Products != nil && !patch.Products.Landline.Valid() {
		return nil, apperr.Validation("invalid landline option")
	}

	return s.update(ctx, id, func(session *domain.Session) error {
		session.Provider = session.Provider.Apply(patch)
		return nil
	})
}

// SelectPackage picks a package, or clears the choice when packageID is
// empty. Add-ons that do not fit the new package are dropped.
func (s *Service) SelectPackage(ctx context.Context, id uuid.UUID, packageID string) (*domain.Session, error) {
	var pkg catalog.Package
	if packageID != "" {
		var ok bool
		if pkg, ok = s.catalog.PackageByID(packageID); !ok {
			return nil, apperr.NotFound("package not found")
		}
	}

	return s.update(ctx, id, func(session *domain.Session) error {
		session.SelectedPackageID = packageID
		if packageID == "" {
			return nil
		}
		kept := make([]string, 0, len(session.SelectedAddons))
		for _, addonID := range session.SelectedAddons {
			if addon, ok := s.catalog.AddonByID(addonID); ok && addon.CompatibleWith(pkg.Speed) {
				kept = append(kept, addonID)
			}
		}
		session.SelectedAddons = kept
		return nil
	})
}

// ToggleAddon selects or deselects an add-on. Selecting one that does not
// fit the chosen package is rejected.
func (s *Service) ToggleAddon(ctx context.Context, id uuid.UUID, addonID string) (*domain.Session, error) {
	addon, ok := s.catalog.AddonByID(addonID)
	if !ok {
		return nil, apperr.NotFound("add-on not found")
	}

	return s.update(ctx, id, func(session *domain.Session) error {
		selecting := !containsString(session.SelectedAddons, addonID)
		if selecting && session.SelectedPackageID != "" {
			pkg, ok := s.catalog.PackageByID(session.SelectedPackageID)
			if ok && !addon.CompatibleWith(pkg.Speed) {
				return apperr.Validation("add-on not available for this package").WithDetails(addonID)
			}
		}
		session.ToggleAddon(addonID)
		return nil
	})
}

// TogglePainPoint ticks or unticks a pain point.
func (s *Service) TogglePainPoint(ctx context.Context, id uuid.UUID, painPoint string) (*domain.Session, error) {
	if !profile.IsPainPoint(painPoint) {
		return nil, apperr.Validation("unknown pain point").WithDetails(painPoint)
	}
	return s.update(ctx, id, func(session *domain.Session) error {
		session.TogglePainPoint(painPoint)
		return nil
	})
}

// SetSchedule sets when the visit will take place.
func (s *Service) SetSchedule(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Session, error) {
	if at.IsZero() {
		return nil, apperr.Validation("scheduledFor is required")
	}
	return s.update(ctx, id, func(session *domain.Session) error {
		session.ScheduledFor = at.UTC()
		return nil
	})
}

// SetMonthlyPrice stores the raw keypad string. It is parsed and clamped
// when read through MonthlyPrice.
func (s *Service) SetMonthlyPrice(ctx context.Context, id uuid.UUID, raw string) (*domain.Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = domain.DefaultMonthlyPrice
	}
	if len(raw) > 32 {
		return nil, apperr.Validation("monthlyPrice is too long")
	}
	return s.update(ctx, id, func(session *domain.Session) error {
		session.MonthlyPrice = raw
		return nil
	})
}

// MonthlyPrice is the session's keypad value as an amount.
func (s *Service) MonthlyPrice(session *domain.Session) decimal.Decimal {
	return money.Clamp(money.Parse(session.MonthlyPrice), s.opts.KeypadMaxValue)
}

// SelectionTotal is the monthly cost of the chosen package and add-ons.
func (s *Service) SelectionTotal(session *domain.Session) decimal.Decimal {
	total := decimal.Zero
	if pkg, ok := s.catalog.PackageByID(session.SelectedPackageID); ok {
		total = pkg.EffectivePrice()
	}
	return total.Add(s.catalog.AddonsTotal(session.SelectedAddons))
}

// PreviewTemperature scores the session as it stands.
func (s *Service) PreviewTemperature(ctx context.Context, id uuid.UUID, typ profile.AppointmentType) (temperature.Result, error) {
	if typ != "" && !typ.Valid() {
		return temperature.Result{}, apperr.Validation("invalid appointment type")
	}
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return temperature.Result{}, err
	}
	return s.score(session, typ), nil
}

func (s *Service) score(session *domain.Session, typ profile.AppointmentType) temperature.Result {
	in := temperature.Input{
		Customer:   session.Customer,
		Provider:   session.Provider,
		PainPoints: session.PainPoints,
		Type:       typ,
	}
	if pkg, ok := s.catalog.PackageByID(session.SelectedPackageID); ok {
		in.SelectedPackage = &pkg
	}
	return s.scorer.Calculate(in)
}

// SubmitResult is what a successful submit returns.
type SubmitResult struct {
	AppointmentID uuid.UUID
	Result        temperature.Result
	Session       *domain.Session
}

// Submit validates the customer, books the appointment and resets the session
// for the next visit. The session ID is kept.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, typ profile.AppointmentType) (*SubmitResult, error) {
	typ = typ.OrDefault()
	if !typ.Valid() {
		return nil, apperr.Validation("invalid appointment type")
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer, err := s.validateCustomer(session.Customer)
	if err != nil {
		return nil, err
	}
	session.Customer = customer

	booking := Booking{
		Type:         typ,
		ScheduledFor: session.ScheduledFor,
		Customer:     customer,
		Provider:     session.Provider,
		PainPoints:   append([]string{}, session.PainPoints...),
		Result:       s.score(session, typ),
	}
	if booking.ScheduledFor.IsZero() {
		booking.ScheduledFor = s.now().UTC()
	}
	if pkg, ok := s.catalog.PackageByID(session.SelectedPackageID); ok {
		booking.Package = &pkg
	}
	for _, addonID := range session.SelectedAddons {
		if addon, ok := s.catalog.AddonByID(addonID); ok {
			booking.Addons = append(booking.Addons, addon)
		}
	}

	appointmentID, err := s.booker.Book(ctx, booking)
	if err != nil {
		return nil, err
	}

	session.Reset(s.now())
	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error("failed to reset intake session", "sessionId", session.ID, "error", err)
	}

	return &SubmitResult{AppointmentID: appointmentID, Result: booking.Result, Session: session}, nil
}

func (s *Service) validateCustomer(c profile.Customer) (profile.Customer, error) {
	problems := map[string]string{}

	if strings.TrimSpace(c.FirstName) == "" {
		problems["firstName"] = "required"
	}
	if strings.TrimSpace(c.LastName) == "" {
		problems["lastName"] = "required"
	}

	switch c.ContactType {
	case profile.ContactEmail:
		c.ContactValue = strings.ToLower(strings.TrimSpace(c.ContactValue))
		if err := s.val.Var(c.ContactValue, "required,email"); err != nil {
			problems["contactValue"] = "must be a valid email address"
		}
	case profile.ContactPhone:
		if !phone.IsValid(c.ContactValue, s.opts.PhoneRegion) {
			problems["contactValue"] = "must be a valid phone number"
		} else {
			c.ContactValue = phone.NormalizeE164(c.ContactValue, s.opts.PhoneRegion)
		}
	default:
		problems["contactType"] = "must be phone or email"
	}

	c.Postcode = sanitize.Postcode(c.Postcode)
	if err := s.val.Var(c.Postcode, "required,ukpostcode"); err != nil {
		problems["postcode"] = "must be a valid UK postcode"
	}

	if len(problems) > 0 {
		return c, apperr.Validation("customer details incomplete").WithDetails(problems)
	}
	return c, nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
