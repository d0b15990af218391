package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction has no user column of its own; ownership is derived through
// its category's owner.
type Transaction struct {
	ID              int64           `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Paid            bool            `json:"paid"`
	TransactionDate time.Time       `json:"-"`
	CategoryID      int64           `json:"category"`
	AccountID       int64           `json:"account"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MarshalJSON renders transaction_date as a plain YYYY-MM-DD date.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		TransactionDate string `json:"transaction_date"`
	}{
		alias:           alias(t),
		TransactionDate: t.TransactionDate.Format("2006-01-02"),
	})
}
