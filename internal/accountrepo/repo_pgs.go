// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/dbpkg"
	"github.com/go-lend/lendbank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns account RepoPGS bound to an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns account RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createAccountQuery = `
INSERT INTO
    accounts (type, balance, transaction_fee, interest_rate)
VALUES
    ($1, $2, $3, $4)
RETURNING id, type, balance, transaction_fee, interest_rate, created_at
`

const createOwnersQuery = `
INSERT INTO account_owners (account_id, customer_id)
SELECT $1, unnest($2::int[])
`

// Create creates the account together with its owner rows and then returns it.
//
// When the repo holds a connection the two inserts run in their own
// transaction so an account row can never exist without owners.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	db := r.db

	if r.conn != nil {
		tx, err := r.conn.BeginTx(ctx, nil)
		if err != nil {
			l.Error().Err(err).Send()
			return a, errorspkg.ErrInternal
		}

		defer func() {
			_ = tx.Rollback()
		}()

		a, err = createTx(ctx, tx, arg)
		if err != nil {
			return a, err
		}

		if err := tx.Commit(); err != nil {
			l.Error().Err(err).Send()
			return a, errorspkg.ErrInternal
		}

		return a, nil
	}

	return createTx(ctx, db, arg)
}

func createTx(ctx context.Context, db dbpkg.SQLInterface, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := db.QueryRowContext(ctx, createAccountQuery,
		arg.Type,
		arg.Balance,
		arg.TransactionFee,
		arg.InterestRate,
	)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Type,
		&a.Balance,
		&a.TransactionFee,
		&a.InterestRate,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_type_check":
				return a, domain.ErrInvalidAccountType
			case "accounts_balance_check":
				return a, domain.ErrNegativeDeposit
			}
		}

		return a, errorspkg.ErrInternal
	}

	if _, err := db.ExecContext(ctx, createOwnersQuery, a.ID, pq.Array(arg.Owners)); err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "account_owners_customer_id_fkey" {
				return a, domain.ErrOwnerNotFound
			}
		}

		return a, errorspkg.ErrInternal
	}

	a.Owners = arg.Owners

	return a, nil
}

const getQuery = `
SELECT
	a.id, a.type, a.balance, a.transaction_fee, a.interest_rate, a.created_at,
	array_agg(ao.customer_id ORDER BY ao.customer_id)
FROM accounts a
JOIN account_owners ao ON ao.account_id = a.id
WHERE a.id = $1
GROUP BY a.id
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Type,
		&a.Balance,
		&a.TransactionFee,
		&a.InterestRate,
		&a.CreatedAt,
		pq.Array(&a.Owners),
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE id = $2
RETURNING id, type, balance, transaction_fee, interest_rate, created_at
`

const ownersQuery = `
SELECT array_agg(customer_id ORDER BY customer_id)
FROM account_owners
WHERE account_id = $1
`

// AddBalance changes the account's balance and returns the changed account.
//
// The row update is atomic; a negative amount that would drive the balance
// below zero violates accounts_balance_check and leaves the row untouched.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Type,
		&a.Balance,
		&a.TransactionFee,
		&a.InterestRate,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	if err := r.db.QueryRowContext(ctx, ownersQuery, a.ID).Scan(pq.Array(&a.Owners)); err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const isOwnerQuery = `
SELECT EXISTS (
	SELECT 1 FROM account_owners
	WHERE account_id = $1 AND customer_id = $2
)
`

// IsOwner reports whether the customer owns the account.
func (r *RepoPGS) IsOwner(ctx context.Context, accountID, customerID int32) (bool, error) {
	l := zerolog.Ctx(ctx)

	var owns bool

	if err := r.db.QueryRowContext(ctx, isOwnerQuery, accountID, customerID).Scan(&owns); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return owns, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id; owner rows cascade.
func (r *RepoPGS) Delete(ctx context.Context, id int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const listQuery = `
SELECT
	a.id, a.type, a.balance, a.transaction_fee, a.interest_rate, a.created_at,
	array_agg(ao.customer_id ORDER BY ao.customer_id)
FROM accounts a
JOIN account_owners ao ON ao.account_id = a.id
WHERE a.id IN (
	SELECT account_id FROM account_owners WHERE customer_id = $1
)
GROUP BY a.id
ORDER BY a.id
`

// List returns the accounts owned by the given customer.
func (r *RepoPGS) List(ctx context.Context, customerID int32) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, customerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.Type,
			&a.Balance,
			&a.TransactionFee,
			&a.InterestRate,
			&a.CreatedAt,
			pq.Array(&a.Owners),
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
