package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"transaksi-api/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// AmountScale is the number of fractional digits the amount column keeps.
	AmountScale = 2
	// AmountIntegerDigits is the number of digits the amount column keeps before the point.
	AmountIntegerDigits = 13
)

var maxAmount = decimal.New(1, AmountIntegerDigits)

// NullableDate is a date key that must be present in the body but may be null.
// An empty string is treated as null.
type NullableDate struct {
	Value *string
	Set   bool
}

// UnmarshalJSON records that the key was present.
func (d *NullableDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	d.Value = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value != "" {
		d.Value = &value
	}
	return nil
}

// CreateTransactionRequest is the body accepted by POST /transaksi.
// Pointer fields distinguish an absent key from a zero value.
type CreateTransactionRequest struct {
	Title  *string          `json:"title" validate:"required"`
	Amount *decimal.Decimal `json:"amount" validate:"required"`
	Time   *string          `json:"time" validate:"required"`
	Type   *string          `json:"type" validate:"required"`
	Date   NullableDate     `json:"date" validate:"-"`
}

// ValidateCreateTransactionRequest checks the rules tags cannot express:
// date presence and format, and that amount fits numeric(15,2) without rounding.
func ValidateCreateTransactionRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateTransactionRequest)

	if !req.Date.Set {
		sl.ReportError(req.Date.Value, "date", "Date", "required", "")
	} else if req.Date.Value != nil {
		if _, err := models.ParseDate(*req.Date.Value); err != nil {
			sl.ReportError(req.Date.Value, "date", "Date", "datetime", models.DateLayout)
		}
	}

	if req.Amount == nil {
		return
	}
	if !req.Amount.Equal(req.Amount.Round(AmountScale)) {
		sl.ReportError(req.Amount, "amount", "Amount", "decimal_places", fmt.Sprint(AmountScale))
	} else if req.Amount.Abs().GreaterThanOrEqual(maxAmount) {
		sl.ReportError(req.Amount, "amount", "Amount", "integer_digits", fmt.Sprint(AmountIntegerDigits))
	}
}

// ToModel converts a validated request into a Transaction ready to insert.
func (r *CreateTransactionRequest) ToModel() (*models.Transaction, error) {
	if r.Title == nil || r.Amount == nil || r.Time == nil || r.Type == nil || !r.Date.Set {
		return nil, fmt.Errorf("request has not been validated")
	}

	txn := &models.Transaction{
		Title:  *r.Title,
		Amount: *r.Amount,
		Time:   *r.Time,
		Type:   *r.Type,
	}

	if r.Date.Value != nil {
		date, err := models.ParseDate(*r.Date.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		txn.Date = date
	}

	return txn, nil
}

// MessageResponse is the body of acknowledgement responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// TransactionResponse is one element of the GET /transaksi array.
type TransactionResponse struct {
	ID     uint        `json:"id"`
	Title  string      `json:"title"`
	Amount json.Number `json:"amount"`
	Time   string      `json:"time"`
	Type   string      `json:"type"`
	Date   *string     `json:"date"`
}

// NewTransactionResponse renders a stored transaction, normalizing the date to YYYY-MM-DD.
func NewTransactionResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:     txn.ID,
		Title:  txn.Title,
		Amount: json.Number(txn.Amount.String()),
		Time:   txn.Time,
		Type:   txn.Type,
		Date:   txn.FormattedDate(),
	}
}

// NewTransactionListResponse never returns nil so an empty table renders as [].
func NewTransactionListResponse(transactions []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, NewTransactionResponse(&transactions[i]))
	}
	return responses
}
