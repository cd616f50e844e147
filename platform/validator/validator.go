// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ukPostcodeRegex accepts the standard outward/inward UK postcode shapes with
// an optional single space.
var ukPostcodeRegex = regexp.MustCompile(`^(GIR ?0AA|[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2})$`)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator with the domain rules registered:
//   - ukpostcode: a UK postcode, case-insensitive
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("ukpostcode", func(fl validator.FieldLevel) bool {
		return IsUKPostcode(fl.Field().String())
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// IsUKPostcode reports whether s looks like a UK postcode.
func IsUKPostcode(s string) bool {
	return ukPostcodeRegex.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}
