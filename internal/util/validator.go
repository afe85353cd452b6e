package util

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// RegisterValidations installs custom binding validations used by the
// request structs:
//
//	colorhex - "#RRGGBB"
//	monthday - integer 1..31
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("colorhex", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("monthday", func(fl validator.FieldLevel) bool {
		return ValidateMonthDay(int(fl.Field().Int())) == nil
	})
}

// ValidateAmountCents checks that a money amount is positive and below the
// sanity ceiling (ten million currency units).
func ValidateAmountCents(cents int64) error {
	if cents <= 0 {
		return fmt.Errorf("amount must be positive, got %d cents", cents)
	}
	if cents >= 10_000_000*100 {
		return fmt.Errorf("amount too large, got %d cents", cents)
	}
	return nil
}

// ValidateMonthDay checks a day-of-month field (closing day, due day). The
// monthday binding validation delegates here.
func ValidateMonthDay(day int) error {
	if day < 1 || day > 31 {
		return fmt.Errorf("day must be between 1 and 31, got %d", day)
	}
	return nil
}
