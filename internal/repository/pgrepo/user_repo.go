package pgrepo

import (
	"context"

	"github.com/fsdevblog/usdt-exchange/internal/domain"
	"github.com/fsdevblog/usdt-exchange/internal/repository/repoargs"
	"github.com/fsdevblog/usdt-exchange/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, external_id, username, first_name, last_name, created_at`

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (external_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		args.ExternalID, args.Username, args.FirstName, args.LastName,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user with external id `%s`", args.ExternalID)
	}
	return user, nil
}

func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by external id `%s`", externalID)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Username, &u.FirstName, &u.LastName, &u.CreatedAt); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &u, nil
}
