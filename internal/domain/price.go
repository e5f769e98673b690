package domain

import (
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/shopspring/decimal"
)

type PriceSource string

const (
	PriceSourceDirect         PriceSource = "direct"
	PriceSourceAnchorFallback PriceSource = "anchor_fallback"
)

// Pair торговая пара: Asset идентификатор актива у источника котировок (например, "tether"),
// Crypto и Fiat валюты сторон сделки.
type Pair struct {
	Asset  string
	Crypto money.Currency
	Fiat   money.Currency
}

var PairUSDTIRR = Pair{Asset: "tether", Crypto: money.USDT, Fiat: money.IRR}

// PriceQuote одна полученная котировка: стоимость 1 единицы Crypto в Fiat. Не сохраняется.
type PriceQuote struct {
	Pair      Pair
	Rate      money.Money[money.Fiat]
	Source    PriceSource
	FetchedAt time.Time
}

// CommissionTier диапазон суммы [MinAmount, MaxAmount) со ставкой Rate. Для последнего диапазона
// Unbounded = true и MaxAmount не используется.
type CommissionTier struct {
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	Unbounded bool
	Rate      decimal.Decimal
}

// Contains сообщает, попадает ли amount в диапазон.
func (t CommissionTier) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(t.MinAmount) {
		return false
	}
	return t.Unbounded || amount.LessThan(t.MaxAmount)
}
