package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/usdt-exchange/internal/commission"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/service"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, bool, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
}

type ExchangeServicer interface {
	QuoteCommission(rawAmount string) (*commission.Preview, error)
	QuotePrice(ctx context.Context) (*domain.PriceQuote, error)
	PlaceBuyOrder(ctx context.Context, userID int64, rawFiat string) (*service.PlacedOrder, error)
	PlaceSellOrder(ctx context.Context, userID int64, rawCrypto string) (*service.PlacedOrder, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, activeOnly bool) ([]domain.Order, error)
}

type TransactionServicer interface {
	FindByID(ctx context.Context, id int64) (*domain.Transaction, error)
	Open(ctx context.Context, buyOrderID, sellOrderID int64) (*domain.Transaction, error)
	CheckParticipant(ctx context.Context, id, userID int64, party service.Party) error
	Confirm(ctx context.Context, id int64, party service.Party) (*domain.Transaction, error)
	RaiseDispute(ctx context.Context, id int64, reason string) (*domain.Transaction, error)
	Cancel(ctx context.Context, id int64) (*domain.Transaction, error)
}
