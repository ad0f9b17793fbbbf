package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionTable is the table provisioned for recorded transactions.
const TransactionTable = "transaksi"

// DateLayout is the ISO-8601 calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

// Transaction is one recorded income or expense entry. Rows are append-only.
type Transaction struct {
	ID     uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title  string          `gorm:"type:text;not null" json:"title"`
	Amount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Time   string          `gorm:"column:time;type:varchar(20)" json:"time"`
	Type   string          `gorm:"column:type;type:varchar(50)" json:"type"`
	Date   *time.Time      `gorm:"column:date;type:date" json:"date"`
}

// TableName overrides the pluralized GORM default.
func (Transaction) TableName() string {
	return TransactionTable
}

// ParseDate parses a YYYY-MM-DD string. Empty input yields a nil date.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// FormattedDate renders Date as YYYY-MM-DD, or nil when the date is unset.
func (t *Transaction) FormattedDate() *string {
	if t.Date == nil {
		return nil
	}

	formatted := t.Date.Format(DateLayout)
	return &formatted
}
