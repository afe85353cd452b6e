package models

import "time"

// Opportunity statuses.
const (
	OpportunityNegotiation     = "negotiation"
	OpportunityFormalAgreement = "formal_agreement"
	OpportunitySignedContract  = "signed_contract"
)

// Opportunity is a sales pipeline entry with three independently toggled
// value components. The total contract value is derived at read time from the
// enabled components (see internal/finance); disabled components keep their
// stored values but contribute zero.
type Opportunity struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	ClientName  string `gorm:"size:128;not null"`
	Status      string `gorm:"size:32;index;not null"`
	Probability int    `gorm:"not null"` // percent, forced to 100 when signed

	HasSetup        bool  `gorm:"not null;default:false"`
	SetupValueCents int64 `gorm:"not null;default:0"`

	HasRecurring      bool  `gorm:"not null;default:false"`
	MonthlyValueCents int64 `gorm:"not null;default:0"`
	DurationMonths    int   `gorm:"not null;default:0"`

	HasBilling        bool    `gorm:"not null;default:false"`
	MonthlyUSDCents   int64   `gorm:"not null;default:0"`
	TotalDiscountPct  float64 `gorm:"not null;default:0"`
	ClientDiscountPct float64 `gorm:"not null;default:0"`
	FxRate            float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
