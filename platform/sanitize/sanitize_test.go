package sanitize

import "testing"

func TestText(t *testing.T) {
	got := Text("  <b>Jane</b>\t  Doe  ")
	if got != "Jane Doe" {
		t.Fatalf("expected %q, got %q", "Jane Doe", got)
	}
}

func TestStripHTMLEncodedTags(t *testing.T) {
	got := StripHTML("&lt;script&gt;alert(1)&lt;/script&gt;hi")
	if got != "alert(1)hi" {
		t.Fatalf("expected encoded tags stripped, got %q", got)
	}
}

func TestPostcode(t *testing.T) {
	cases := map[string]string{
		"sw1a1aa":   "SW1A 1AA",
		" M1  1ae ": "M1 1AE",
		"ab1":       "AB1",
	}
	for in, want := range cases {
		if got := Postcode(in); got != want {
			t.Fatalf("Postcode(%q) = %q, want %q", in, got, want)
		}
	}
}
