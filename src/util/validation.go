package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldErrors collects per-field validation messages for a 400 response.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= 5
}

func ValidateName(name string) bool {
	return len(name) >= 1 && len(name) <= 255
}

// ValidateRequiredString checks presence and max length, recording a field
// error on failure.
func ValidateRequiredString(errs FieldErrors, field, value string, maxLen int) {
	if value == "" {
		errs.Add(field, "this field is required")
		return
	}
	if len(value) > maxLen {
		errs.Add(field, fmt.Sprintf("ensure this field has no more than %d characters", maxLen))
	}
}

func ValidateOptionalString(errs FieldErrors, field, value string, maxLen int) {
	if len(value) > maxLen {
		errs.Add(field, fmt.Sprintf("ensure this field has no more than %d characters", maxLen))
	}
}

// ValidateAmount enforces numeric(15,2): at most 15 digits in total and at
// most 2 decimal places.
func ValidateAmount(errs FieldErrors, field string, amount decimal.Decimal) {
	if amount.Exponent() < -2 {
		errs.Add(field, "ensure that there are no more than 2 decimal places")
		return
	}
	intPart, fracPart, _ := strings.Cut(amount.Abs().String(), ".")
	if len(intPart)+len(fracPart) > 15 {
		errs.Add(field, "ensure that there are no more than 15 digits in total")
	}
}
