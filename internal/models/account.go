package models

import "time"

// Account types.
const (
	AccountChecking   = "checking"
	AccountInvestment = "investment"
	AccountCash       = "cash"
)

// Account represents a bank/cash account.
// BalanceCents is signed and is only mutated by paid transaction side effects;
// updates through the accounts endpoint never touch it directly.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	Name         string `gorm:"size:64;not null"`
	Institution  string `gorm:"size:64"`
	Type         string `gorm:"size:16;index;not null"` // checking / investment / cash
	BalanceCents int64  `gorm:"not null;default:0"`
	Color        string `gorm:"size:16"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
