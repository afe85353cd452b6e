package models

import "time"

// Per-month statuses of a recurring entry.
const (
	RecurringPending  = "pending"
	RecurringPaid     = "paid"     // expenses
	RecurringReceived = "received" // revenues
	RecurringSkipped  = "skipped"
)

// RecurringEntry is a template expense or revenue that generates one
// status-tracked instance per calendar month on DueDay.
// Installment entries have a finite count; EndDate is derived from StartDate
// and TotalInstallments when the entry is created or updated.
type RecurringEntry struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	Kind         string `gorm:"size:16;index;not null"` // expense / revenue
	CategoryID   *uint  `gorm:"index"`
	CreditCardID *uint  `gorm:"index"`
	AmountCents  int64  `gorm:"not null"`
	Description  string `gorm:"size:200;not null"`
	DueDay       int    `gorm:"not null"` // 1-31
	Active       bool   `gorm:"index;not null;default:true"`

	IsInstallment      bool `gorm:"not null;default:false"`
	TotalInstallments  *int
	CurrentInstallment *int

	StartDate time.Time `gorm:"not null"`
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Category   *Category   `gorm:"constraint:OnDelete:SET NULL"`
	CreditCard *CreditCard `gorm:"constraint:OnDelete:SET NULL"`
}

// RecurringStatus tracks one recurring entry instance for a (year, month).
// Absence of a row means the instance is pending.
type RecurringStatus struct {
	ID          uint   `gorm:"primaryKey"`
	RecurringID uint   `gorm:"uniqueIndex:idx_recurring_period;not null"`
	Year        int    `gorm:"uniqueIndex:idx_recurring_period;not null"`
	Month       int    `gorm:"uniqueIndex:idx_recurring_period;not null"` // 1-12
	Status      string `gorm:"size:16;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Recurring RecurringEntry `gorm:"foreignKey:RecurringID;constraint:OnDelete:CASCADE"`
}
