// Package finance holds the derived-value calculations: contract totals,
// goal reconciliation, installment schedules and period summaries.
// Everything here is a pure function of its inputs so it can be unit tested
// without a database or HTTP layer.
package finance

import "math"

// BillingHorizonMonths is the fixed horizon the USD billing component is
// projected over, regardless of the recurrence duration.
const BillingHorizonMonths = 24

// ContractComponents are the three independently toggled value components of
// an opportunity. Cent fields keep whatever the user last typed even while
// the toggle is off; a disabled component contributes exactly zero.
type ContractComponents struct {
	HasSetup        bool
	SetupValueCents int64

	HasRecurring      bool
	MonthlyValueCents int64
	DurationMonths    int

	HasBilling        bool
	MonthlyUSDCents   int64
	TotalDiscountPct  float64
	ClientDiscountPct float64
	FxRate            float64
}

// SetupValue returns the one-time setup contribution in cents.
func (c ContractComponents) SetupValue() int64 {
	if !c.HasSetup {
		return 0
	}
	return c.SetupValueCents
}

// RecurringValue returns the monthly-recurrence contribution in cents.
func (c ContractComponents) RecurringValue() int64 {
	if !c.HasRecurring {
		return 0
	}
	return c.MonthlyValueCents * int64(c.DurationMonths)
}

// BillingValue returns the USD billing contribution in cents:
// monthly USD x margin percent x FX rate, annualized over the fixed
// 24-month horizon, rounded half-up to the cent.
func (c ContractComponents) BillingValue() int64 {
	if !c.HasBilling {
		return 0
	}
	margin := (c.TotalDiscountPct - c.ClientDiscountPct) / 100.0
	v := float64(c.MonthlyUSDCents) * margin * c.FxRate * BillingHorizonMonths
	return int64(math.Round(v))
}

// ContractTotal returns the total contract value: the sum of each enabled
// component's individually computed contribution.
func ContractTotal(c ContractComponents) int64 {
	return c.SetupValue() + c.RecurringValue() + c.BillingValue()
}
