package repoargs

import "github.com/fsdevblog/usdt-exchange/internal/domain"

type CreateTransaction struct {
	BuyOrderID  int64
	SellOrderID int64
}

// UpdateTransaction условное обновление сделки: запись меняется, только если ее текущий статус равен
// ExpectedStatus.
type UpdateTransaction struct {
	Transaction    domain.Transaction
	ExpectedStatus domain.TransactionStatus
}
