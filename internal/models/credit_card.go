package models

import "time"

// CreditCard represents a credit card.
// The current invoice amount is derived from transactions at read time,
// never stored.
type CreditCard struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index;not null"`
	Name       string `gorm:"size:64;not null"`
	LimitCents int64  `gorm:"not null"`
	ClosingDay int    `gorm:"not null"` // 1-31
	DueDay     int    `gorm:"not null"` // 1-31
	Color      string `gorm:"size:16"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
