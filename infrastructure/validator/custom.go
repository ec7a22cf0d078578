package validator

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

func validateDigits(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	for _, char := range value {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

func validateLuhn(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		char := number[i]
		if char < '0' || char > '9' {
			return false
		}
		digit := int(char - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func validateExpiryMonth(fl validator.FieldLevel) bool {
	month, err := strconv.Atoi(fl.Field().String())
	return err == nil && month >= 1 && month <= 12
}

// Two-digit years as the gateway expects them.
func validateExpiryYear(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 2 {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
