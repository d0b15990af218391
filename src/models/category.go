package models

import "time"

type CategoryType string

const (
	CategoryExpense CategoryType = "EX"
	CategoryIncome  CategoryType = "IN"
)

func (c CategoryType) IsValid() bool {
	return c == CategoryExpense || c == CategoryIncome
}

// TransactionCategory is a user-owned bucket transactions are filed under.
type TransactionCategory struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	IconName     string       `json:"icon_name"`
	CategoryType CategoryType `json:"category_type"`
	UserID       int64        `json:"user"`
	CreatedAt    time.Time    `json:"created_at"`
}
