package utils

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateUULDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func HasItemString(arr *[]string, target string) bool {
	for _, v := range *arr {
		if v == target {
			return true
		}
	}
	return false
}

// DigitsOnly strips spaces and dashes commonly typed into card numbers.
func DigitsOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskPAN keeps the BIN and the last four digits of a card number.
func MaskPAN(pan string) string {
	digits := DigitsOnly(pan)
	if len(digits) < 10 {
		return strings.Repeat("*", len(digits))
	}
	return digits[:6] + strings.Repeat("*", len(digits)-10) + digits[len(digits)-4:]
}

func CardBIN(pan string) string {
	digits := DigitsOnly(pan)
	if len(digits) < 6 {
		return digits
	}
	return digits[:6]
}
