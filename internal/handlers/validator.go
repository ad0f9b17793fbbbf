package handlers

import (
	"transaksi-api/internal/dto"
	"transaksi-api/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator interface
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a new custom validator with the request body rules registered
func NewValidator() echo.Validator {
	v := validation.NewValidator()
	v.RegisterStructValidation(dto.ValidateCreateTransactionRequest, dto.CreateTransactionRequest{})
	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
