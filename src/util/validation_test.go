package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("test@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("longer password"))
	assert.False(t, ValidatePassword("1234"))
	assert.False(t, ValidatePassword(""))
}

func TestValidateRequiredString(t *testing.T) {
	errs := FieldErrors{}
	ValidateRequiredString(errs, "name", "", 50)
	assert.Equal(t, "this field is required", errs["name"])

	errs = FieldErrors{}
	ValidateRequiredString(errs, "name", "Savings", 50)
	assert.False(t, errs.HasErrors())

	errs = FieldErrors{}
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	ValidateRequiredString(errs, "name", string(long), 50)
	assert.Contains(t, errs["name"], "no more than 50 characters")
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		field  string
		ok     bool
	}{
		{"10.50", "amount", true},
		{"-10.50", "amount", true},
		{"0.01", "amount", true},
		{"1234567890123.45", "amount", true}, // 15 digits exactly
		{"10.505", "amount", false},          // 3 decimal places
		{"12345678901234.56", "amount", false}, // 16 digits
	}

	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			errs := FieldErrors{}
			ValidateAmount(errs, tc.field, decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.ok, !errs.HasErrors(), "errors: %v", errs)
		})
	}
}

func TestFieldErrorsKeepsFirstMessage(t *testing.T) {
	errs := FieldErrors{}
	errs.Add("email", "first")
	errs.Add("email", "second")
	assert.Equal(t, "first", errs["email"])
	assert.True(t, errs.HasErrors())
}
