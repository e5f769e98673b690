// Package commission вычисляет комиссию сделки по ступенчатой шкале.
package commission

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/shopspring/decimal"
)

var ErrInvalidTiers = errors.New("invalid commission tiers")

// Engine хранит проверенную шкалу комиссий. Шкала задается при создании и дальше не меняется,
// поэтому Engine безопасен для конкурентного использования.
type Engine struct {
	tiers []domain.CommissionTier
}

// DefaultTiers справочная шкала: до 10 000 USDT 2.5%, до 50 000 USDT 1.5%, свыше 1%.
func DefaultTiers() []domain.CommissionTier {
	return []domain.CommissionTier{
		{
			MinAmount: decimal.Zero,
			MaxAmount: decimal.NewFromInt(10_000), //nolint:mnd
			Rate:      decimal.RequireFromString("0.025"),
		},
		{
			MinAmount: decimal.NewFromInt(10_000), //nolint:mnd
			MaxAmount: decimal.NewFromInt(50_000), //nolint:mnd
			Rate:      decimal.RequireFromString("0.015"),
		},
		{
			MinAmount: decimal.NewFromInt(50_000), //nolint:mnd
			Unbounded: true,
			Rate:      decimal.RequireFromString("0.010"),
		},
	}
}

// NewEngine проверяет шкалу и создает Engine. Шкала должна начинаться с нуля, быть непрерывной,
// упорядоченной по возрастанию MinAmount и заканчиваться единственным неограниченным диапазоном.
// Ставки в диапазоне [0, 1). При нарушении возвращает ошибку ErrInvalidTiers.
func NewEngine(tiers []domain.CommissionTier) (*Engine, error) {
	if err := validateTiers(tiers); err != nil {
		return nil, err
	}
	cp := make([]domain.CommissionTier, len(tiers))
	copy(cp, tiers)
	return &Engine{tiers: cp}, nil
}

func MustNewEngine(tiers []domain.CommissionTier) *Engine {
	e, err := NewEngine(tiers)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Tiers() []domain.CommissionTier {
	cp := make([]domain.CommissionTier, len(e.tiers))
	copy(cp, e.tiers)
	return cp
}

// Classify возвращает диапазон, в который попадает amount. Для отрицательной суммы возвращает
// domain.ErrInvalidAmount.
func (e *Engine) Classify(amount decimal.Decimal) (domain.CommissionTier, error) {
	if amount.IsNegative() {
		return domain.CommissionTier{}, fmt.Errorf("classify %s: %w", amount, domain.ErrInvalidAmount)
	}
	for _, tier := range e.tiers {
		if tier.Contains(amount) {
			return tier, nil
		}
	}
	// недостижимо для проверенной шкалы, но на всякий случай берем старший диапазон.
	return e.tiers[len(e.tiers)-1], nil
}

// ComputeFee вычисляет комиссию amount*rate, округленную до 6 знаков (round-half-up),
// и возвращает ее вместе с примененной ставкой.
func (e *Engine) ComputeFee(amount money.Money[money.Fine]) (money.Money[money.Crypto], decimal.Decimal, error) {
	tier, err := e.Classify(amount.Decimal())
	if err != nil {
		return money.Money[money.Crypto]{}, decimal.Zero, err
	}
	fee := money.New[money.Crypto](amount.Decimal().Mul(tier.Rate), amount.Currency())
	return fee, tier.Rate, nil
}

// Preview расчет комиссии для показа пользователю.
type Preview struct {
	Amount       money.Money[money.Crypto]
	Rate         decimal.Decimal
	Fee          money.Money[money.Crypto]
	NetForSeller money.Money[money.Crypto]
}

// Preview считает комиссию для суммы amount и сумму, которую получит продавец после вычета комиссии.
func (e *Engine) Preview(amount money.Money[money.Fine]) (*Preview, error) {
	fee, rate, err := e.ComputeFee(amount)
	if err != nil {
		return nil, err
	}
	gross := money.Rescale[money.Crypto](amount)
	return &Preview{
		Amount:       gross,
		Rate:         rate,
		Fee:          fee,
		NetForSeller: gross.Sub(fee),
	}, nil
}

func validateTiers(tiers []domain.CommissionTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidTiers)
	}
	if !tiers[0].MinAmount.IsZero() {
		return fmt.Errorf("%w: first tier must start at 0, got %s", ErrInvalidTiers, tiers[0].MinAmount)
	}
	one := decimal.NewFromInt(1)
	for i, tier := range tiers {
		if tier.Rate.IsNegative() || !tier.Rate.LessThan(one) {
			return fmt.Errorf("%w: tier #%d rate %s out of [0, 1)", ErrInvalidTiers, i, tier.Rate)
		}
		last := i == len(tiers)-1
		if tier.Unbounded != last {
			return fmt.Errorf("%w: only the last tier must be unbounded (tier #%d)", ErrInvalidTiers, i)
		}
		if last {
			break
		}
		if !tier.MaxAmount.GreaterThan(tier.MinAmount) {
			return fmt.Errorf("%w: tier #%d max %s <= min %s", ErrInvalidTiers, i, tier.MaxAmount, tier.MinAmount)
		}
		if !tiers[i+1].MinAmount.Equal(tier.MaxAmount) {
			return fmt.Errorf(
				"%w: gap or overlap between tier #%d (max %s) and #%d (min %s)",
				ErrInvalidTiers, i, tier.MaxAmount, i+1, tiers[i+1].MinAmount,
			)
		}
	}
	return nil
}
