package finance

import "testing"

func baseComponents() ContractComponents {
	return ContractComponents{
		HasSetup:        true,
		SetupValueCents: 500000, // 5000.00

		HasRecurring:      true,
		MonthlyValueCents: 100000, // 1000.00
		DurationMonths:    12,

		HasBilling:        true,
		MonthlyUSDCents:   200000, // 2000.00 USD
		TotalDiscountPct:  30,
		ClientDiscountPct: 10,
		FxRate:            5.0,
	}
}

func TestContractTotal_AllComponents(t *testing.T) {
	c := baseComponents()

	// setup 500000 + recurring 100000*12 + billing 200000*0.20*5.0*24
	want := int64(500000) + int64(1200000) + int64(4800000)
	if got := ContractTotal(c); got != want {
		t.Fatalf("ContractTotal = %d, want %d", got, want)
	}
}

func TestContractTotal_Additivity(t *testing.T) {
	// for every toggle combination the total equals the sum of the enabled
	// components' individually computed values
	for mask := 0; mask < 8; mask++ {
		c := baseComponents()
		c.HasSetup = mask&1 != 0
		c.HasRecurring = mask&2 != 0
		c.HasBilling = mask&4 != 0

		want := c.SetupValue() + c.RecurringValue() + c.BillingValue()
		if got := ContractTotal(c); got != want {
			t.Errorf("mask %03b: ContractTotal = %d, want %d", mask, got, want)
		}
	}
}

func TestContractTotal_DisabledComponentContributesZero(t *testing.T) {
	c := baseComponents()
	withBilling := ContractTotal(c)
	billing := c.BillingValue()

	c.HasBilling = false
	withoutBilling := ContractTotal(c)

	if withBilling-withoutBilling != billing {
		t.Fatalf("disabling billing changed total by %d, want %d",
			withBilling-withoutBilling, billing)
	}
	if c.BillingValue() != 0 {
		t.Fatalf("disabled billing component contributed %d, want 0", c.BillingValue())
	}
}

func TestContractTotal_StoredValuesIgnoredWhenOff(t *testing.T) {
	c := ContractComponents{
		SetupValueCents:   999999,
		MonthlyValueCents: 999999,
		DurationMonths:    99,
		MonthlyUSDCents:   999999,
		TotalDiscountPct:  100,
		FxRate:            10,
	}
	if got := ContractTotal(c); got != 0 {
		t.Fatalf("all toggles off: ContractTotal = %d, want 0", got)
	}
}

func TestBillingValue_FixedHorizon(t *testing.T) {
	c := baseComponents()
	c.DurationMonths = 36 // must not affect billing

	// 200000 * 0.20 * 5.0 * 24 = 4800000
	if got := c.BillingValue(); got != 4800000 {
		t.Fatalf("BillingValue = %d, want 4800000", got)
	}
}

func TestBillingValue_Rounding(t *testing.T) {
	c := ContractComponents{
		HasBilling:        true,
		MonthlyUSDCents:   333,  // 3.33 USD
		TotalDiscountPct:  17.5, // margin 7.5%
		ClientDiscountPct: 10,
		FxRate:            5.21,
	}
	// 333 * 0.075 * 5.21 * 24 = 3122.6... -> 3123
	if got := c.BillingValue(); got != 3123 {
		t.Fatalf("BillingValue = %d, want 3123", got)
	}
}
