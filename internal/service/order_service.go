package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
)

// OrderService управляет жизненным циклом заявок. Все переходы статусов выполняются условным обновлением
// (WHERE status = текущий), поэтому гонка двух переходов одной заявки заканчивается domain.ErrInvalidTransition
// для проигравшего.
type OrderService struct {
	uow       uow.UOW
	orderRepo OrderRepository
}

func NewOrderService(u uow.UOW) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OrderService{
		uow:       u,
		orderRepo: orderRepo,
	}, nil
}

// Create сохраняет рассчитанную заявку со статусом pending. Ошибка хранилища оборачивается в
// domain.ErrPersistence, повторных попыток нет.
func (o *OrderService) Create(
	ctx context.Context,
	userID int64,
	candidate *domain.OrderCandidate,
) (*domain.Order, error) {
	order, err := o.orderRepo.Create(ctx, repoargs.CreateOrder{
		UserID:       userID,
		Side:         candidate.Side,
		CryptoAmount: candidate.CryptoAmount,
		FiatAmount:   candidate.FiatAmount,
		Commission:   candidate.Commission,
	})
	if err != nil {
		return nil, fmt.Errorf("creating order: %w: %w", domain.ErrPersistence, err)
	}
	return order, nil
}

func (o *OrderService) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", orderID, err)
	}
	return order, nil
}

// ListByUser возвращает заявки пользователя, новые первыми. При activeOnly только pending и matched.
func (o *OrderService) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]domain.Order, error) {
	var statuses []domain.OrderStatus
	if activeOnly {
		statuses = []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusMatched}
	}
	orders, err := o.orderRepo.GetByUserID(ctx, userID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list orders of user %d: %w", userID, err)
	}
	return orders, nil
}

// MarkMatched переводит заявку orderID в matched и запоминает встречную заявку counterpartyID.
func (o *OrderService) MarkMatched(ctx context.Context, orderID, counterpartyID int64) (*domain.Order, error) {
	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		order, err = o.MarkMatchedTx(c, tx, orderID, counterpartyID)
		return err
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return order, nil
}

// MarkMatchedTx то же, что MarkMatched, но внутри уже открытой транзакции tx. Заявку нельзя свести саму с собой,
// встречная заявка должна существовать.
func (o *OrderService) MarkMatchedTx(
	ctx context.Context,
	tx uow.TX,
	orderID, counterpartyID int64,
) (*domain.Order, error) {
	if orderID == counterpartyID {
		return nil, fmt.Errorf("mark order %d matched: %w: order cannot match itself", orderID, domain.ErrInvalidInput)
	}
	repo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}
	if _, cpErr := repo.FindByID(ctx, counterpartyID); cpErr != nil {
		return nil, fmt.Errorf("mark order %d matched: counterparty %d: %w", orderID, counterpartyID, cpErr)
	}
	return o.transition(ctx, repo, orderID, domain.OrderStatusMatched, &counterpartyID)
}

// Cancel отменяет заявку в статусе pending или matched.
func (o *OrderService) Cancel(ctx context.Context, orderID int64) (*domain.Order, error) {
	return o.transition(ctx, o.orderRepo, orderID, domain.OrderStatusCancelled, nil)
}

// CancelPending отменяет заявку, только если она все еще pending. Заявку, успевшую стать matched,
// отменяет TransactionService.CancelOrder вместе со сделкой, здесь для нее возвращается
// *domain.InvalidTransitionError.
func (o *OrderService) CancelPending(ctx context.Context, orderID int64) (*domain.Order, error) {
	updated, err := o.orderRepo.UpdateStatus(ctx, repoargs.UpdateOrderStatus{
		ID:   orderID,
		From: domain.OrderStatusPending,
		To:   domain.OrderStatusCancelled,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewInvalidTransitionError(
				domain.EntityOrder, orderID, string(domain.OrderStatusPending), string(domain.OrderStatusCancelled),
			)
		}
		return nil, fmt.Errorf("cancel pending order %d: %w", orderID, err)
	}
	return updated, nil
}

func (o *OrderService) CancelTx(ctx context.Context, tx uow.TX, orderID int64) (*domain.Order, error) {
	repo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}
	return o.transition(ctx, repo, orderID, domain.OrderStatusCancelled, nil)
}

// Complete завершает сведенную заявку.
func (o *OrderService) Complete(ctx context.Context, orderID int64) (*domain.Order, error) {
	return o.transition(ctx, o.orderRepo, orderID, domain.OrderStatusCompleted, nil)
}

func (o *OrderService) CompleteTx(ctx context.Context, tx uow.TX, orderID int64) (*domain.Order, error) {
	repo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}
	return o.transition(ctx, repo, orderID, domain.OrderStatusCompleted, nil)
}

// transition читает заявку, проверяет допустимость перехода в to и выполняет условное обновление.
// Если между чтением и обновлением статус успел измениться, обновление не затрагивает ни одной строки
// и возвращается *domain.InvalidTransitionError.
func (o *OrderService) transition(
	ctx context.Context,
	repo OrderRepository,
	orderID int64,
	to domain.OrderStatus,
	matchedOrderID *int64,
) (*domain.Order, error) {
	order, findErr := repo.FindByID(ctx, orderID)
	if findErr != nil {
		return nil, fmt.Errorf("order %d to %s: %w", orderID, to, findErr)
	}
	if !order.Status.CanTransitionTo(to) {
		return nil, domain.NewInvalidTransitionError(domain.EntityOrder, orderID, string(order.Status), string(to))
	}

	updated, updErr := repo.UpdateStatus(ctx, repoargs.UpdateOrderStatus{
		ID:             orderID,
		From:           order.Status,
		To:             to,
		MatchedOrderID: matchedOrderID,
	})
	if updErr != nil {
		if errors.Is(updErr, domain.ErrRecordNotFound) {
			return nil, domain.NewInvalidTransitionError(domain.EntityOrder, orderID, string(order.Status), string(to))
		}
		return nil, fmt.Errorf("order %d to %s: %w", orderID, to, updErr)
	}
	return updated, nil
}
