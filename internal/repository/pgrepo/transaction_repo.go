package pgrepo

import (
	"context"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, created_at, updated_at, buy_order_id, sell_order_id, status::text,
	buyer_confirmed_at, seller_confirmed_at, completed_at, dispute_reason`

type TransactionRepository struct {
	db uow.DBTX
}

func NewTransactionRepository(db uow.DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (buy_order_id, sell_order_id)
		VALUES ($1, $2)
		RETURNING `+transactionColumns,
		args.BuyOrderID, args.SellOrderID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating transaction for orders %d/%d", args.BuyOrderID, args.SellOrderID)
	}
	return t, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "finding transaction %d", id)
	}
	return t, nil
}

// FindOpenByOrderID возвращает незавершенную сделку (pending_confirmation, buyer_confirmed или
// seller_confirmed), в которой участвует заявка orderID.
func (r *TransactionRepository) FindOpenByOrderID(ctx context.Context, orderID int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE (buy_order_id = $1 OR sell_order_id = $1)
		  AND status IN ('pending_confirmation', 'buyer_confirmed', 'seller_confirmed')
		ORDER BY id DESC
		LIMIT 1`,
		orderID,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "finding open transaction of order %d", orderID)
	}
	return t, nil
}

// Update сохраняет изменяемые поля транзакции, если ее статус в БД все еще равен args.ExpectedStatus.
// Иначе возвращает domain.ErrRecordNotFound.
func (r *TransactionRepository) Update(
	ctx context.Context,
	args repoargs.UpdateTransaction,
) (*domain.Transaction, error) {
	t := args.Transaction
	row := r.db.QueryRow(ctx, `
		UPDATE transactions
		SET status              = $3,
		    buyer_confirmed_at  = $4,
		    seller_confirmed_at = $5,
		    completed_at        = $6,
		    dispute_reason      = $7,
		    updated_at          = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+transactionColumns,
		t.ID,
		string(args.ExpectedStatus),
		string(t.Status),
		t.BuyerConfirmedAt,
		t.SellerConfirmedAt,
		t.CompletedAt,
		t.DisputeReason,
	)
	updated, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "updating transaction %d from %s to %s", t.ID, args.ExpectedStatus, t.Status)
	}
	return updated, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t      domain.Transaction
		status string
	)
	if err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.BuyOrderID,
		&t.SellOrderID,
		&status,
		&t.BuyerConfirmedAt,
		&t.SellerConfirmedAt,
		&t.CompletedAt,
		&t.DisputeReason,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	t.Status = domain.TransactionStatus(status)
	return &t, nil
}
