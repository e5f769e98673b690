package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
)

// Party сторона сделки, подтверждающая расчет.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

// TransactionService управляет сделками между двумя сведенными заявками. Многошаговые операции
// (открытие, завершение, отмена) выполняются в одной транзакции UnitOfWork вместе с изменением заявок.
type TransactionService struct {
	uow    uow.UOW
	txRepo TransactionRepository
	orders *OrderService
	now    func() time.Time
}

func NewTransactionService(u uow.UOW, orders *OrderService) (*TransactionService, error) {
	txRepo, err := uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &TransactionService{
		uow:    u,
		txRepo: txRepo,
		orders: orders,
		now:    time.Now,
	}, nil
}

func (s *TransactionService) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find transaction %d: %w", id, err)
	}
	return t, nil
}

// CheckParticipant проверяет, что пользователь userID владеет заявкой стороны party в сделке id. Пустая party
// допускает любую из сторон. Иначе возвращает domain.ErrOwnerConflict. Участники сделки не меняются
// после открытия, поэтому проверка выполняется вне транзакции.
func (s *TransactionService) CheckParticipant(ctx context.Context, id, userID int64, party Party) error {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check participant of transaction %d: %w", id, err)
	}

	var orderIDs []int64
	switch party {
	case PartyBuyer:
		orderIDs = []int64{t.BuyOrderID}
	case PartySeller:
		orderIDs = []int64{t.SellOrderID}
	case "":
		orderIDs = []int64{t.BuyOrderID, t.SellOrderID}
	default:
		return fmt.Errorf("check participant of transaction %d: %w: unknown party %q", id, domain.ErrInvalidInput, party)
	}

	for _, orderID := range orderIDs {
		order, findErr := s.orders.FindByID(ctx, orderID)
		if findErr != nil {
			return fmt.Errorf("check participant of transaction %d: %w", id, findErr)
		}
		if order.UserID == userID {
			return nil
		}
	}
	return fmt.Errorf("transaction %d, user %d: %w", id, userID, domain.ErrOwnerConflict)
}

// Open открывает сделку между заявкой на покупку buyOrderID и заявкой на продажу sellOrderID.
// Точка подключения внешнего механизма сведения заявок.
//
// Алгоритм работы:
//  1. Проверяет, что заявки разные, существуют, имеют правильные стороны и принадлежат разным пользователям.
//  2. Переводит обе заявки в matched, каждой указывая встречную.
//  3. Создает сделку в статусе pending_confirmation.
//
// Все шаги выполняются в одной транзакции: при любой ошибке заявки остаются в прежнем статусе.
func (s *TransactionService) Open(ctx context.Context, buyOrderID, sellOrderID int64) (*domain.Transaction, error) {
	if buyOrderID == sellOrderID {
		return nil, fmt.Errorf("open transaction: %w: buy and sell orders are the same", domain.ErrInvalidInput)
	}

	var created *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if err := checkPair(c, orderRepo, buyOrderID, sellOrderID); err != nil {
			return err
		}

		if _, err := s.orders.MarkMatchedTx(c, tx, buyOrderID, sellOrderID); err != nil {
			return err
		}
		if _, err := s.orders.MarkMatchedTx(c, tx, sellOrderID, buyOrderID); err != nil {
			return err
		}

		txRepo, txRepoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if txRepoErr != nil {
			return txRepoErr //nolint:wrapcheck
		}
		var createErr error
		created, createErr = txRepo.Create(c, repoargs.CreateTransaction{
			BuyOrderID:  buyOrderID,
			SellOrderID: sellOrderID,
		})
		if createErr != nil {
			return fmt.Errorf("%w: %w", domain.ErrPersistence, createErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("open transaction: %w", txErr)
	}
	return created, nil
}

func checkPair(ctx context.Context, repo OrderRepository, buyOrderID, sellOrderID int64) error {
	buy, buyErr := repo.FindByID(ctx, buyOrderID)
	if buyErr != nil {
		return fmt.Errorf("buy order %d: %w", buyOrderID, buyErr)
	}
	sell, sellErr := repo.FindByID(ctx, sellOrderID)
	if sellErr != nil {
		return fmt.Errorf("sell order %d: %w", sellOrderID, sellErr)
	}
	if buy.Side != domain.OrderSideBuy || sell.Side != domain.OrderSideSell {
		return fmt.Errorf(
			"%w: order %d is %s and order %d is %s",
			domain.ErrInvalidInput, buy.ID, buy.Side, sell.ID, sell.Side,
		)
	}
	if buy.UserID == sell.UserID {
		return fmt.Errorf("%w: orders %d and %d belong to the same user", domain.ErrInvalidInput, buy.ID, sell.ID)
	}
	return nil
}

// ConfirmByBuyer фиксирует подтверждение покупателя.
func (s *TransactionService) ConfirmByBuyer(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.Confirm(ctx, id, PartyBuyer)
}

// ConfirmBySeller фиксирует подтверждение продавца.
func (s *TransactionService) ConfirmBySeller(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.Confirm(ctx, id, PartySeller)
}

// Confirm фиксирует подтверждение стороны party. Повторное подтверждение той же стороной ничего не меняет
// и возвращает сделку как есть. Когда подтверждены обе стороны, сделка и обе заявки завершаются
// в одной транзакции.
func (s *TransactionService) Confirm(ctx context.Context, id int64, party Party) (*domain.Transaction, error) {
	var result *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		t, findErr := repo.FindByID(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		expected := t.Status

		var changed bool
		var confirmErr error
		switch party {
		case PartyBuyer:
			changed, confirmErr = t.ConfirmBuyer(s.now())
		case PartySeller:
			changed, confirmErr = t.ConfirmSeller(s.now())
		default:
			return fmt.Errorf("%w: unknown party %q", domain.ErrInvalidInput, party)
		}
		if confirmErr != nil {
			return confirmErr
		}
		if !changed {
			result = t
			return nil
		}

		updated, updErr := s.save(c, repo, *t, expected)
		if updErr != nil {
			if current := confirmedConcurrently(c, repo, id, party, updErr); current != nil {
				result = current
				return nil
			}
			return updErr
		}
		if updated.Status == domain.TransactionStatusCompleted {
			if _, _, err := s.settleOrders(c, tx, updated, s.orders.CompleteTx); err != nil {
				return err
			}
		}
		result = updated
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("confirm transaction %d by %s: %w", id, party, txErr)
	}
	return result, nil
}

// RaiseDispute переводит незавершенную сделку в disputed. Заявки не меняются, спор разбирается вне системы.
func (s *TransactionService) RaiseDispute(ctx context.Context, id int64, reason string) (*domain.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("dispute transaction %d: %w: reason is empty", id, domain.ErrInvalidInput)
	}

	var result *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		t, findErr := repo.FindByID(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		expected := t.Status
		if err := t.Dispute(s.now(), reason); err != nil {
			return err //nolint:wrapcheck
		}
		var updErr error
		result, updErr = s.save(c, repo, *t, expected)
		return updErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("dispute transaction %d: %w", id, txErr)
	}
	return result, nil
}

// Cancel отменяет сделку, пока ни одна сторона ее не подтвердила. Обе заявки отменяются в той же транзакции.
func (s *TransactionService) Cancel(ctx context.Context, id int64) (*domain.Transaction, error) {
	var result *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		t, findErr := repo.FindByID(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		var cancelErr error
		result, _, _, cancelErr = s.cancelTx(c, tx, repo, t)
		return cancelErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("cancel transaction %d: %w", id, txErr)
	}
	return result, nil
}

// CancelOrder отменяет сведенную заявку orderID вместе с ее незавершенной сделкой и встречной заявкой.
// Правила те же, что у Cancel: после первого подтверждения отмена невозможна. Если открытой сделки у заявки
// нет (например, по ней открыт спор), возвращается *domain.InvalidTransitionError.
func (s *TransactionService) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var cancelled *domain.Order
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		t, findErr := repo.FindOpenByOrderID(c, orderID)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.NewInvalidTransitionError(
					domain.EntityOrder, orderID, string(domain.OrderStatusMatched), string(domain.OrderStatusCancelled),
				)
			}
			return findErr //nolint:wrapcheck
		}
		_, buy, sell, cancelErr := s.cancelTx(c, tx, repo, t)
		if cancelErr != nil {
			return cancelErr
		}
		cancelled = sell
		if buy.ID == orderID {
			cancelled = buy
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("cancel matched order %d: %w", orderID, txErr)
	}
	return cancelled, nil
}

// cancelTx отменяет сделку t и обе ее заявки внутри tx.
func (s *TransactionService) cancelTx(
	ctx context.Context,
	tx uow.TX,
	repo TransactionRepository,
	t *domain.Transaction,
) (*domain.Transaction, *domain.Order, *domain.Order, error) {
	expected := t.Status
	if err := t.Cancel(s.now()); err != nil {
		return nil, nil, nil, err //nolint:wrapcheck
	}
	updated, updErr := s.save(ctx, repo, *t, expected)
	if updErr != nil {
		return nil, nil, nil, updErr
	}
	buy, sell, settleErr := s.settleOrders(ctx, tx, updated, s.orders.CancelTx)
	if settleErr != nil {
		return nil, nil, nil, settleErr
	}
	return updated, buy, sell, nil
}

// save выполняет условное обновление. Если статус сделки изменился после чтения, возвращает
// *domain.InvalidTransitionError.
func (s *TransactionService) save(
	ctx context.Context,
	repo TransactionRepository,
	t domain.Transaction,
	expected domain.TransactionStatus,
) (*domain.Transaction, error) {
	updated, err := repo.Update(ctx, repoargs.UpdateTransaction{Transaction: t, ExpectedStatus: expected})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewInvalidTransitionError(domain.EntityTransaction, t.ID, string(expected), string(t.Status))
		}
		return nil, err //nolint:wrapcheck
	}
	return updated, nil
}

type orderTransitionFn func(ctx context.Context, tx uow.TX, orderID int64) (*domain.Order, error)

func (s *TransactionService) settleOrders(
	ctx context.Context,
	tx uow.TX,
	t *domain.Transaction,
	fn orderTransitionFn,
) (*domain.Order, *domain.Order, error) {
	buy, buyErr := fn(ctx, tx, t.BuyOrderID)
	if buyErr != nil {
		return nil, nil, buyErr
	}
	sell, sellErr := fn(ctx, tx, t.SellOrderID)
	if sellErr != nil {
		return nil, nil, sellErr
	}
	return buy, sell, nil
}

// confirmedConcurrently проверяет, не проиграл ли Confirm гонку подтверждению той же стороны.
// Если сторона party уже подтвердила сделку, возвращает ее текущее состояние, иначе nil.
func confirmedConcurrently(
	ctx context.Context,
	repo TransactionRepository,
	id int64,
	party Party,
	saveErr error,
) *domain.Transaction {
	if !errors.Is(saveErr, domain.ErrInvalidTransition) {
		return nil
	}
	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	switch {
	case party == PartyBuyer && current.BuyerConfirmedAt != nil:
		return current
	case party == PartySeller && current.SellerConfirmedAt != nil:
		return current
	default:
		return nil
	}
}
