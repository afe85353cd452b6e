package models

import "time"

// Patrimony item kinds.
const (
	PatrimonyAsset     = "asset"
	PatrimonyLiability = "liability"
)

// PatrimonyItem is an asset or a liability.
// Liabilities carry an original value and satisfy current <= original;
// the amount already paid (original - current) is derived at read time.
type PatrimonyItem struct {
	ID                 uint   `gorm:"primaryKey"`
	UserID             uint   `gorm:"index;not null"`
	Kind               string `gorm:"size:16;index;not null"` // asset / liability
	Title              string `gorm:"size:128;not null"`
	Type               string `gorm:"size:32;not null"` // kind-specific enum, e.g. property / vehicle / loan
	CurrentValueCents  int64  `gorm:"not null"`
	OriginalValueCents *int64 // liabilities only
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
