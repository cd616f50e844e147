package validator

import "testing"

func TestIsUKPostcode(t *testing.T) {
	valid := []string{"SW1A 1AA", "sw1a1aa", "M1 1AE", "B33 8TH", "CR2 6XH", "DN55 1PT", "GIR 0AA"}
	for _, pc := range valid {
		if !IsUKPostcode(pc) {
			t.Fatalf("expected %q to be a valid postcode", pc)
		}
	}

	invalid := []string{"", "12345", "SW1A", "SW1A 1A", "ABC 123"}
	for _, pc := range invalid {
		if IsUKPostcode(pc) {
			t.Fatalf("expected %q to be rejected", pc)
		}
	}
}

func TestStructUsesPostcodeRule(t *testing.T) {
	type address struct {
		Postcode string `validate:"omitempty,ukpostcode"`
	}

	v := New()
	if err := v.Struct(address{Postcode: "M1 1AE"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Struct(address{}); err != nil {
		t.Fatalf("empty postcode should pass omitempty: %v", err)
	}
	if err := v.Struct(address{Postcode: "nope"}); err == nil {
		t.Fatalf("expected validation error for bad postcode")
	}
}
