package repository

import (
	"context"
	"errors"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(dbtx db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: dbtx}
}

func (r *CustomerRepository) FindIDByName(ctx context.Context, firstName, lastName string) (*uuid.UUID, error) {
	const query = `
		SELECT id FROM customers
		WHERE first_name = $1 AND last_name = $2`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, firstName, lastName).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find customer by name", err)
	}
	return &id, nil
}

func (r *CustomerRepository) Create(ctx context.Context, firstName, lastName string) (uuid.UUID, error) {
	const query = `
		INSERT INTO customers (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, firstName, lastName).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("customer already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create customer", err)
	}
	return id, nil
}
