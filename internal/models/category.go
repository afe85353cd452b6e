package models

import "time"

// Category types.
const (
	CategoryExpense = "expense"
	CategoryRevenue = "revenue"
)

// Category represents an expense/revenue category.
// BudgetLimitCents is an optional monthly budget ceiling; nil means no limit.
type Category struct {
	ID               uint    `gorm:"primaryKey"`
	UserID           uint    `gorm:"index;not null"`
	Name             string  `gorm:"size:64;not null"`
	Type             string  `gorm:"size:16;index;not null"` // expense / revenue
	Color            string  `gorm:"size:16;not null"`       // #RRGGBB
	Icon             *string `gorm:"size:64"`
	BudgetLimitCents *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
