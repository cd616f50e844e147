package money

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amount is a request field that accepts a JSON number or a raw keypad
// string. Anything unparsable or negative decodes to zero instead of failing.
type Amount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			raw = ""
		}
		a.Decimal = Parse(raw)
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = nonNegative(d)
	return nil
}

// MarshalJSON renders the amount as a number rounded to pence.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(Float(a.Decimal))
}
