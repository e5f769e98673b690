package service

import (
	"context"

	"github.com/fsdevblog/usdt-exchange/internal/commission"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// UpdateStatus возвращает domain.ErrRecordNotFound, если заказа с таким id и статусом args.From нет.
	UpdateStatus(ctx context.Context, args repoargs.UpdateOrderStatus) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64, statuses []domain.OrderStatus) ([]domain.Order, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	FindByID(ctx context.Context, id int64) (*domain.Transaction, error)
	// FindOpenByOrderID возвращает domain.ErrRecordNotFound, если заявка не участвует в незавершенной сделке.
	FindOpenByOrderID(ctx context.Context, orderID int64) (*domain.Transaction, error)
	// Update возвращает domain.ErrRecordNotFound, если сделки с таким id и статусом args.ExpectedStatus нет.
	Update(ctx context.Context, args repoargs.UpdateTransaction) (*domain.Transaction, error)
}

type PriceOracle interface {
	FetchRate(ctx context.Context, pair domain.Pair) (*domain.PriceQuote, error)
}

type FeeEngine interface {
	ComputeFee(amount money.Money[money.Fine]) (money.Money[money.Crypto], decimal.Decimal, error)
	Preview(amount money.Money[money.Fine]) (*commission.Preview, error)
}
