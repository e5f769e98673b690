// Package money описывает денежные суммы с фиксированной точностью.
//
// Точность (количество знаков после запятой) является частью типа: Money[Fine], Money[Crypto] и Money[Fiat]
// несовместимы между собой, и перевод из одной точности в другую выполняется только явным вызовом Rescale.
// Любое создание суммы квантует значение по правилу round-half-up (от нуля на границе .5).
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	USDT Currency = "USDT"
	IRR  Currency = "IRR"
	USD  Currency = "USD"
)

// Scale ограничивает набор допустимых точностей.
type Scale interface {
	Fine | Crypto | Fiat
	Places() int32
}

// Fine точность промежуточных расчетов (8 знаков).
type Fine struct{}

func (Fine) Places() int32 { return 8 } //nolint:mnd

// Crypto точность сохраняемой крипто-части сделки (6 знаков, USDT TRC20).
type Crypto struct{}

func (Crypto) Places() int32 { return 6 } //nolint:mnd

// Fiat точность сохраняемой фиатной части сделки (2 знака).
type Fiat struct{}

func (Fiat) Places() int32 { return 2 } //nolint:mnd

// Places возвращает количество знаков после запятой для точности S.
func Places[S Scale]() int32 {
	var s S
	return s.Places()
}

// Quantize округляет d до places знаков по правилу round-half-up. Повторное квантование уже
// квантованного значения ничего не меняет.
func Quantize(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

type Money[S Scale] struct {
	amount   decimal.Decimal
	currency Currency
}

// New создает сумму точности S, квантуя amount.
func New[S Scale](amount decimal.Decimal, currency Currency) Money[S] {
	return Money[S]{
		amount:   Quantize(amount, Places[S]()),
		currency: currency,
	}
}

func Zero[S Scale](currency Currency) Money[S] {
	return Money[S]{amount: decimal.Zero, currency: currency}
}

// Rescale переводит сумму в точность T с квантованием.
func Rescale[T, S Scale](m Money[S]) Money[T] {
	return New[T](m.amount, m.currency)
}

func (m Money[S]) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money[S]) Currency() Currency {
	return m.currency
}

func (m Money[S]) Places() int32 {
	return Places[S]()
}

func (m Money[S]) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money[S]) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money[S]) Equal(other Money[S]) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money[S]) LessThan(other Money[S]) bool {
	m.mustSameCurrency(other)
	return m.amount.LessThan(other.amount)
}

// Sub вычитает other из m. Суммы в разных валютах вычитать нельзя, это ошибка программиста.
func (m Money[S]) Sub(other Money[S]) Money[S] {
	m.mustSameCurrency(other)
	return New[S](m.amount.Sub(other.amount), m.currency)
}

// Fixed возвращает строковое представление суммы ровно с Places() знаками после запятой.
func (m Money[S]) Fixed() string {
	return m.amount.StringFixed(m.Places())
}

func (m Money[S]) String() string {
	return m.Fixed() + " " + string(m.currency)
}

func (m Money[S]) mustSameCurrency(other Money[S]) {
	if m.currency != other.currency {
		panic(fmt.Sprintf("money: currency mismatch %s vs %s", m.currency, other.currency))
	}
}
