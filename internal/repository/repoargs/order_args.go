package repoargs

import (
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
)

type CreateOrder struct {
	UserID       int64
	Side         domain.OrderSide
	CryptoAmount money.Money[money.Crypto]
	FiatAmount   money.Money[money.Fiat]
	Commission   money.Money[money.Crypto]
}

// UpdateOrderStatus условное обновление статуса: запись меняется, только если ее текущий статус равен From.
// MatchedOrderID записывается, только если не nil.
type UpdateOrderStatus struct {
	ID             int64
	From           domain.OrderStatus
	To             domain.OrderStatus
	MatchedOrderID *int64
}
