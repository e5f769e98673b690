package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/usdt-exchange/internal/commission"
	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
)

// ExchangeService операции, доступные пользователю: котировки, расчет комиссии, размещение и отмена заявок.
type ExchangeService struct {
	builder      *OrderBuilder
	orders       *OrderService
	transactions *TransactionService
	fees         FeeEngine
	oracle       PriceOracle
	pair         domain.Pair
}

func NewExchangeService(
	builder *OrderBuilder,
	orders *OrderService,
	transactions *TransactionService,
	fees FeeEngine,
	oracle PriceOracle,
	pair domain.Pair,
) *ExchangeService {
	return &ExchangeService{
		builder:      builder,
		orders:       orders,
		transactions: transactions,
		fees:         fees,
		oracle:       oracle,
		pair:         pair,
	}
}

// PlacedOrder сохраненная заявка вместе с расчетом, по которому она создана.
type PlacedOrder struct {
	Order     *domain.Order
	Candidate *domain.OrderCandidate
}

// QuoteCommission рассчитывает комиссию для суммы rawAmount в криптовалюте.
func (e *ExchangeService) QuoteCommission(rawAmount string) (*commission.Preview, error) {
	amount, parseErr := money.ParsePositive(rawAmount)
	if parseErr != nil {
		return nil, fmt.Errorf("quote commission: %w: %s", domain.ErrInvalidInput, parseErr.Error())
	}
	preview, err := e.fees.Preview(money.New[money.Fine](amount, e.pair.Crypto))
	if err != nil {
		return nil, fmt.Errorf("quote commission: %w", err)
	}
	return preview, nil
}

// QuotePrice возвращает текущий курс пары.
func (e *ExchangeService) QuotePrice(ctx context.Context) (*domain.PriceQuote, error) {
	quote, err := e.oracle.FetchRate(ctx, e.pair)
	if err != nil {
		return nil, fmt.Errorf("quote price: %w", err)
	}
	return quote, nil
}

// PlaceBuyOrder рассчитывает и сохраняет заявку на покупку на сумму rawFiat.
func (e *ExchangeService) PlaceBuyOrder(ctx context.Context, userID int64, rawFiat string) (*PlacedOrder, error) {
	candidate, err := e.builder.BuildBuyOrder(ctx, rawFiat)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return e.place(ctx, userID, candidate)
}

// PlaceSellOrder рассчитывает и сохраняет заявку на продажу rawCrypto.
func (e *ExchangeService) PlaceSellOrder(ctx context.Context, userID int64, rawCrypto string) (*PlacedOrder, error) {
	candidate, err := e.builder.BuildSellOrder(ctx, rawCrypto)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return e.place(ctx, userID, candidate)
}

func (e *ExchangeService) place(
	ctx context.Context,
	userID int64,
	candidate *domain.OrderCandidate,
) (*PlacedOrder, error) {
	order, err := e.orders.Create(ctx, userID, candidate)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &PlacedOrder{Order: order, Candidate: candidate}, nil
}

// CancelOrder отменяет заявку пользователя. Чужую заявку отменить нельзя: domain.ErrOwnerConflict.
// Сведенная заявка отменяется вместе со своей сделкой и встречной заявкой.
func (e *ExchangeService) CancelOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := e.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("cancel order %d: %w", orderID, domain.ErrOwnerConflict)
	}
	if order.Status == domain.OrderStatusMatched {
		return e.transactions.CancelOrder(ctx, orderID)
	}
	return e.orders.CancelPending(ctx, orderID)
}

// ListOrders заявки пользователя.
func (e *ExchangeService) ListOrders(ctx context.Context, userID int64, activeOnly bool) ([]domain.Order, error) {
	return e.orders.ListByUser(ctx, userID, activeOnly)
}
