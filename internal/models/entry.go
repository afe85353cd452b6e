package models

import "time"

// Entry represents a one-off expense or revenue.
// Amount is stored in cents to avoid float errors (12.34 = 1234 cents) and is
// always a positive magnitude; direction comes from Kind.
type Entry struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"index;not null"`
	Kind          string    `gorm:"size:16;index;not null"` // expense / revenue
	CategoryID    *uint     `gorm:"index"`
	AmountCents   int64     `gorm:"not null"`
	Description   string    `gorm:"size:200;not null"`
	PaymentMethod string    `gorm:"size:32"`
	OccurredAt    time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
}
