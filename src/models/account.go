package models

import "time"

type Account struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	AccountTypeID int64     `json:"account_type"`
	UserID        int64     `json:"user"`
	CreatedAt     time.Time `json:"created_at"`
}
