package domain

import (
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/shopspring/decimal"
)

const EntityOrder = "order"

type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusMatched   OrderStatus = "matched"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusMatched, OrderStatusCancelled},
	OrderStatusMatched: {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransitionTo сообщает, разрешен ли переход из текущего статуса в next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order заявка пользователя. MatchedOrderID только ключ для поиска встречной заявки, не владение.
type Order struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         int64
	Side           OrderSide
	CryptoAmount   money.Money[money.Crypto]
	FiatAmount     money.Money[money.Fiat]
	Commission     money.Money[money.Crypto]
	Status         OrderStatus
	MatchedOrderID *int64
}

// OrderCandidate рассчитанная, но еще не сохраненная заявка. Помимо сохраняемых полей содержит
// данные для показа пользователю: брутто-сумму, примененную ставку комиссии и котировку.
type OrderCandidate struct {
	Side           OrderSide
	CryptoAmount   money.Money[money.Crypto]
	FiatAmount     money.Money[money.Fiat]
	Commission     money.Money[money.Crypto]
	GrossCrypto    money.Money[money.Fine]
	CommissionRate decimal.Decimal
	Quote          PriceQuote
}
