// Package customerrepo manages repository layer of customers.
package customerrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/dbpkg"
	"github.com/go-lend/lendbank/pkg/errorspkg"
)

// RepoPGS facilitates customer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns customer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO customers (
    first_name,
    last_name,
    email,
    phone_number,
    hashed_password
) VALUES (
    $1, $2, $3, $4, $5
) RETURNING id, first_name, last_name, email, phone_number, hashed_password, created_at
`

// Create creates the customer and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateCustomerParams) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.PhoneNumber,
		arg.HashedPassword,
	)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.PhoneNumber,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "customers_email_key" {
				return c, domain.ErrEmailAlreadyExists
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT
	id, first_name, last_name, email, phone_number, hashed_password, created_at
FROM customers
WHERE id = $1
`

// Get returns the customer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.PhoneNumber,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}
