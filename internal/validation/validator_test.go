package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title  *string `json:"title" validate:"required"`
	Date   string  `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Hidden string  `json:"-" validate:"max=3"`
	Kind   string  `json:"kind" validate:"omitempty,oneof=income expense"`
}

func strPtr(s string) *string { return &s }

func TestNewValidator_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(&sample{Date: "15-01-2024"})
	require.Error(t, err)

	fieldErrors, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"title": "is required",
		"date":  "must be a date in YYYY-MM-DD format",
	}, fieldErrors)
}

func TestNewValidator_Valid(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(&sample{Title: strPtr(""), Date: "2024-02-29"}))
	assert.NoError(t, v.Struct(&sample{Title: strPtr("Coffee")}))
}

func TestNewValidator_EmptyDateIsOmitted(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(&sample{Title: strPtr("Coffee"), Date: ""}))
}

func TestFieldErrors_OtherTags(t *testing.T) {
	v := NewValidator()

	err := v.Struct(&sample{Title: strPtr("x"), Hidden: "toolong", Kind: "transfer"})
	require.Error(t, err)

	fieldErrors, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "must be one of: income expense", fieldErrors["kind"])
	assert.Equal(t, "must be at most 3 characters long", fieldErrors["Hidden"])
}

type ledger struct {
	Cents int64 `json:"cents"`
	Scale int   `json:"scale"`
}

func TestRegisterStructValidation(t *testing.T) {
	v := NewValidator()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		l := sl.Current().Interface().(ledger)
		if l.Scale > 2 {
			sl.ReportError(l.Cents, "cents", "Cents", "decimal_places", "2")
		}
		if l.Cents >= 1e13 {
			sl.ReportError(l.Cents, "cents", "Cents", "integer_digits", "13")
		}
	}, ledger{})

	assert.NoError(t, v.Struct(&ledger{Cents: 150, Scale: 2}))

	fieldErrors, ok := FieldErrors(v.Struct(&ledger{Cents: 1239, Scale: 3}))
	require.True(t, ok)
	assert.Equal(t, map[string]string{"cents": "must have at most 2 decimal places"}, fieldErrors)

	fieldErrors, ok = FieldErrors(v.Struct(&ledger{Cents: 1e13}))
	require.True(t, ok)
	assert.Equal(t, map[string]string{"cents": "must have at most 13 digits before the decimal point"}, fieldErrors)
}

func TestFieldErrors_NotValidationError(t *testing.T) {
	fieldErrors, ok := FieldErrors(errors.New("boom"))

	assert.False(t, ok)
	assert.Nil(t, fieldErrors)
}
