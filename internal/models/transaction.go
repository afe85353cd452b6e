package models

import "time"

// Transaction types and statuses.
const (
	TxExpense  = "expense"
	TxIncome   = "income"
	TxTransfer = "transfer"

	TxPaid    = "paid"
	TxPending = "pending"
)

// Transaction is a unified ledger entry.
// AmountCents is always a positive magnitude; direction is implied by Type.
// Non-transfers reference either an account or a credit card, never both.
// Transfers reference a source and a destination account.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Type        string    `gorm:"size:16;index;not null"` // expense / income / transfer
	AmountCents int64     `gorm:"not null"`
	Description string    `gorm:"size:200"`
	Status      string    `gorm:"size:16;index;not null"` // paid / pending
	OccurredAt  time.Time `gorm:"index;not null"`

	AccountID    *uint `gorm:"index"`
	CreditCardID *uint `gorm:"index"`

	FromAccountID *uint `gorm:"index"`
	ToAccountID   *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Account     *Account    `gorm:"constraint:OnDelete:SET NULL"`
	CreditCard  *CreditCard `gorm:"constraint:OnDelete:SET NULL"`
	FromAccount *Account    `gorm:"foreignKey:FromAccountID;constraint:OnDelete:SET NULL"`
	ToAccount   *Account    `gorm:"foreignKey:ToAccountID;constraint:OnDelete:SET NULL"`
}
