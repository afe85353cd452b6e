package util

import (
	"testing"
)

func TestValidateAmountCents_Positive(t *testing.T) {
	testCases := []int64{1, 100, 10050, 999999999}

	for _, cents := range testCases {
		err := ValidateAmountCents(cents)
		if err != nil {
			t.Errorf("ValidateAmountCents(%d) error = %v, want nil", cents, err)
		}
	}
}

func TestValidateAmountCents_ZeroOrNegative(t *testing.T) {
	testCases := []int64{0, -1, -10000}

	for _, cents := range testCases {
		err := ValidateAmountCents(cents)
		if err == nil {
			t.Errorf("ValidateAmountCents(%d) error = nil, want error", cents)
		}
	}
}

func TestValidateAmountCents_TooLarge(t *testing.T) {
	err := ValidateAmountCents(10_000_000 * 100) // ten million units

	if err == nil {
		t.Error("ValidateAmountCents(1e9 cents) error = nil, want error")
	}
}

func TestValidateMonthDay(t *testing.T) {
	for _, d := range []int{1, 15, 31} {
		if err := ValidateMonthDay(d); err != nil {
			t.Errorf("ValidateMonthDay(%d) error = %v, want nil", d, err)
		}
	}
	for _, d := range []int{0, -1, 32} {
		if err := ValidateMonthDay(d); err == nil {
			t.Errorf("ValidateMonthDay(%d) error = nil, want error", d)
		}
	}
}
