package email

import (
	"strings"
	"testing"
	"time"
)

func TestRenderBookingConfirmation(t *testing.T) {
	visit := Visit{
		CustomerName: "Ada <Lovelace>",
		ScheduledFor: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		Address:      "1 Analytical Way",
		Postcode:     "SW1A 1AA",
		PackageName:  "500 Mbps",
	}
	html, err := renderEmailTemplate("booking_confirmation.html", newVisitEmailData("Your visit is booked", visit))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Wednesday 1 July 2026 at 10:00",
		"1 Analytical Way, SW1A 1AA",
		"500 Mbps",
		"Ada &lt;Lovelace&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered email", want)
		}
	}
}

func TestRenderReminderWithoutOptionalFields(t *testing.T) {
	html, err := renderEmailTemplate("appointment_reminder.html", newVisitEmailData("See you soon", Visit{
		ScheduledFor: time.Date(2026, 12, 1, 14, 30, 0, 0, time.UTC),
	}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Hi there") || !strings.Contains(html, "Tuesday 1 December 2026 at 14:30") {
		t.Fatalf("unexpected email body: %s", html)
	}
	if strings.Contains(html, "Address:") {
		t.Fatalf("expected address line to be omitted")
	}
}

func TestRenderReminderIncludesPostcode(t *testing.T) {
	html, err := renderEmailTemplate("appointment_reminder.html", newVisitEmailData("See you soon", Visit{
		CustomerName: "Ada",
		ScheduledFor: time.Date(2026, 12, 1, 14, 30, 0, 0, time.UTC),
		Address:      "1 Analytical Way",
		Postcode:     "SW1A 1AA",
		PackageName:  "500 Mbps",
	}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Address: 1 Analytical Way, SW1A 1AA") || !strings.Contains(html, "500 Mbps") {
		t.Fatalf("unexpected email body: %s", html)
	}
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	s := NewSMTPSender("localhost", 25, "", "", "desk@example.com", "Sales Desk")
	if _, err := s.buildMessage("not an address", "subject", "<p>x</p>"); err == nil {
		t.Fatalf("expected error for invalid recipient")
	}
	msg, err := s.buildMessage("ada@example.com", "subject", "<p>x</p>")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if to := msg.GetToString(); len(to) != 1 || !strings.Contains(to[0], "ada@example.com") {
		t.Fatalf("unexpected recipients %v", to)
	}
}
