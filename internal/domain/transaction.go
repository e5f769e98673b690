package domain

import "time"

const EntityTransaction = "transaction"

type TransactionStatus string

const (
	TransactionStatusPendingConfirmation TransactionStatus = "pending_confirmation"
	TransactionStatusBuyerConfirmed      TransactionStatus = "buyer_confirmed"
	TransactionStatusSellerConfirmed     TransactionStatus = "seller_confirmed"
	TransactionStatusCompleted           TransactionStatus = "completed"
	TransactionStatusDisputed            TransactionStatus = "disputed"
	TransactionStatusCancelled           TransactionStatus = "cancelled"
)

func (s TransactionStatus) IsTerminal() bool {
	switch s {
	case TransactionStatusCompleted, TransactionStatusDisputed, TransactionStatusCancelled:
		return true
	default:
		return false
	}
}

// Transaction расчет между двумя сведенными заявками. Ссылки на заявки не владеющие.
type Transaction struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	BuyOrderID        int64
	SellOrderID       int64
	Status            TransactionStatus
	BuyerConfirmedAt  *time.Time
	SellerConfirmedAt *time.Time
	CompletedAt       *time.Time
	DisputeReason     string
}

// ConfirmBuyer фиксирует подтверждение покупателя. Возвращает false, если покупатель уже подтверждал
// (повторное подтверждение не ошибка и ничего не меняет). Когда подтверждены обе стороны, статус становится
// completed и проставляется CompletedAt.
func (t *Transaction) ConfirmBuyer(now time.Time) (bool, error) {
	if t.BuyerConfirmedAt != nil {
		return false, nil
	}
	if t.Status.IsTerminal() {
		return false, t.transitionErr(TransactionStatusBuyerConfirmed)
	}
	t.BuyerConfirmedAt = &now
	t.advance(now, TransactionStatusBuyerConfirmed)
	return true, nil
}

// ConfirmSeller зеркальна ConfirmBuyer.
func (t *Transaction) ConfirmSeller(now time.Time) (bool, error) {
	if t.SellerConfirmedAt != nil {
		return false, nil
	}
	if t.Status.IsTerminal() {
		return false, t.transitionErr(TransactionStatusSellerConfirmed)
	}
	t.SellerConfirmedAt = &now
	t.advance(now, TransactionStatusSellerConfirmed)
	return true, nil
}

func (t *Transaction) Dispute(now time.Time, reason string) error {
	if t.Status.IsTerminal() {
		return t.transitionErr(TransactionStatusDisputed)
	}
	t.Status = TransactionStatusDisputed
	t.DisputeReason = reason
	t.UpdatedAt = now
	return nil
}

// Cancel разрешена только до первого подтверждения.
func (t *Transaction) Cancel(now time.Time) error {
	if t.Status != TransactionStatusPendingConfirmation {
		return t.transitionErr(TransactionStatusCancelled)
	}
	t.Status = TransactionStatusCancelled
	t.UpdatedAt = now
	return nil
}

func (t *Transaction) advance(now time.Time, halfConfirmed TransactionStatus) {
	t.UpdatedAt = now
	if t.BuyerConfirmedAt != nil && t.SellerConfirmedAt != nil {
		t.Status = TransactionStatusCompleted
		t.CompletedAt = &now
		return
	}
	t.Status = halfConfirmed
}

func (t *Transaction) transitionErr(to TransactionStatus) error {
	return NewInvalidTransitionError(EntityTransaction, t.ID, string(t.Status), string(to))
}
