package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedAmount   = errors.New("amount is not a decimal number")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// ParsePositive разбирает пользовательский ввод в положительное десятичное число.
// Возвращает ErrMalformedAmount для нечислового ввода и ErrNonPositiveAmount для нуля и отрицательных чисел.
func ParsePositive(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrMalformedAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrMalformedAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}
