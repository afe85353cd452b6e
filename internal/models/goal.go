package models

import "time"

// Goal is a yearly financial target with optional quarterly targets.
// One goal per user per year. A mismatch between the quarter sum and the
// annual target is informational, never a blocking validation.
type Goal struct {
	ID                uint  `gorm:"primaryKey"`
	UserID            uint  `gorm:"uniqueIndex:idx_goal_user_year;not null"`
	Year              int   `gorm:"uniqueIndex:idx_goal_user_year;not null"`
	AnnualTargetCents int64 `gorm:"not null"`
	Q1Cents           *int64
	Q2Cents           *int64
	Q3Cents           *int64
	Q4Cents           *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
