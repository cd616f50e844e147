package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"07400 123456", "+447400123456"},
		{"+44 7400 123456", "+447400123456"},
		{"  ", ""},
		{"not a number", "not a number"},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.in, "GB"); got != tc.want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("07400 123456", "") {
		t.Fatalf("expected UK mobile to be valid with default region")
	}
	if IsValid("12", "GB") {
		t.Fatalf("expected short number to be invalid")
	}
}
