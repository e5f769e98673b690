package pgrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/money"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Суммы читаются как text и разбираются в decimal без потери точности.
const orderColumns = `id, created_at, updated_at, user_id, side::text, crypto_amount::text, crypto_currency,
	fiat_amount::text, fiat_currency, commission::text, status::text, matched_order_id`

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, side, crypto_amount, crypto_currency, fiat_amount, fiat_currency, commission)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		args.UserID,
		string(args.Side),
		args.CryptoAmount.Decimal(),
		string(args.CryptoAmount.Currency()),
		args.FiatAmount.Decimal(),
		string(args.FiatAmount.Currency()),
		args.Commission.Decimal(),
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating %s order for user %d", args.Side, args.UserID)
	}
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order %d", id)
	}
	return order, nil
}

// UpdateStatus меняет статус, только если текущий статус равен args.From. Если строка не найдена или статус
// другой, возвращает domain.ErrRecordNotFound.
func (r *OrderRepository) UpdateStatus(ctx context.Context, args repoargs.UpdateOrderStatus) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET status           = $3,
		    matched_order_id = COALESCE($4, matched_order_id),
		    updated_at       = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns,
		args.ID,
		string(args.From),
		string(args.To),
		args.MatchedOrderID,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating order %d from %s to %s", args.ID, args.From, args.To)
	}
	return order, nil
}

// GetByUserID Возвращает заказы юзера, отсортированные по дате создания по убыванию. Пустой statuses
// означает любые статусы.
func (r *OrderRepository) GetByUserID(
	ctx context.Context,
	userID int64,
	statuses []domain.OrderStatus,
) ([]domain.Order, error) {
	var filter []string
	if len(statuses) > 0 {
		filter = make([]string, len(statuses))
		for i, status := range statuses {
			filter[i] = string(status)
		}
	}

	rows, queryErr := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1 AND ($2::text[] IS NULL OR status::text = ANY($2::text[]))
		ORDER BY created_at DESC, id DESC`,
		userID, filter,
	)
	if queryErr != nil {
		return nil, convertErr(queryErr, "getting orders by userID `%d`", userID)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning orders of userID `%d`", userID)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, convertErr(err, "iterating orders of userID `%d`", userID)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                 domain.Order
		side, status                      string
		cryptoStr, fiatStr, commissionStr string
		cryptoCurrency, fiatCurrency      string
	)
	if err := row.Scan(
		&o.ID,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.UserID,
		&side,
		&cryptoStr,
		&cryptoCurrency,
		&fiatStr,
		&fiatCurrency,
		&commissionStr,
		&status,
		&o.MatchedOrderID,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}

	crypto, err := decimal.NewFromString(cryptoStr)
	if err != nil {
		return nil, fmt.Errorf("parse crypto_amount %q: %w", cryptoStr, err)
	}
	fiat, err := decimal.NewFromString(fiatStr)
	if err != nil {
		return nil, fmt.Errorf("parse fiat_amount %q: %w", fiatStr, err)
	}
	commission, err := decimal.NewFromString(commissionStr)
	if err != nil {
		return nil, fmt.Errorf("parse commission %q: %w", commissionStr, err)
	}

	o.Side = domain.OrderSide(side)
	o.Status = domain.OrderStatus(status)
	o.CryptoAmount = money.New[money.Crypto](crypto, money.Currency(cryptoCurrency))
	o.FiatAmount = money.New[money.Fiat](fiat, money.Currency(fiatCurrency))
	o.Commission = money.New[money.Crypto](commission, money.Currency(cryptoCurrency))
	return &o, nil
}
