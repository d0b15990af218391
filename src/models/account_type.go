package models

// AccountType is a global label for accounts, e.g. "Wallet" or "Savings".
// It is not owned by any user.
type AccountType struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"icon_name"`
}
