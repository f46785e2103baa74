// Package loanrepo manages repository layer of loans.
package loanrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/dbpkg"
	"github.com/go-lend/lendbank/pkg/errorspkg"
)

// RepoPGS facilitates loan repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns loan RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    loans (borrower_id, amount, term_months)
VALUES
    ($1, $2, $3)
RETURNING id, borrower_id, amount, term_months, created_at
`

// Create creates the loan and then returns it.
func (r *RepoPGS) Create(ctx context.Context, borrowerID int32, amount string, termMonths int32) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, borrowerID, amount, termMonths)

	var loan domain.Loan

	err := row.Scan(
		&loan.ID,
		&loan.BorrowerID,
		&loan.Amount,
		&loan.TermMonths,
		&loan.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "loans_borrower_id_fkey":
				return loan, domain.ErrCustomerNotFound
			case "loans_amount_check":
				return loan, domain.ErrNonPositiveAmount
			case "loans_term_months_check":
				return loan, domain.ErrInvalidTerm
			}
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const getQuery = `
SELECT
	id, borrower_id, amount, term_months, created_at
FROM loans
WHERE id = $1 AND borrower_id = $2
`

// Get returns the borrower's loan with the given id.
func (r *RepoPGS) Get(ctx context.Context, borrowerID, loanID int32) (domain.Loan, error) {
	return r.get(ctx, getQuery, borrowerID, loanID)
}

const getForUpdateQuery = getQuery + `
FOR UPDATE
`

// GetForUpdate returns the borrower's loan with the given id after locking its
// row for the duration of the surrounding transaction. Concurrent repayments
// against the same loan serialize on this lock.
func (r *RepoPGS) GetForUpdate(ctx context.Context, borrowerID, loanID int32) (domain.Loan, error) {
	return r.get(ctx, getForUpdateQuery, borrowerID, loanID)
}

func (r *RepoPGS) get(ctx context.Context, query string, borrowerID, loanID int32) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, loanID, borrowerID)

	var loan domain.Loan

	err := row.Scan(
		&loan.ID,
		&loan.BorrowerID,
		&loan.Amount,
		&loan.TermMonths,
		&loan.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return loan, domain.ErrLoanNotFound
		}

		l.Error().Err(err).Send()

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const setAmountQuery = `
UPDATE loans
SET amount = $1
WHERE id = $2
RETURNING id, borrower_id, amount, term_months, created_at
`

// SetAmount overwrites the loan's outstanding principal and returns the loan.
func (r *RepoPGS) SetAmount(ctx context.Context, loanID int32, amount string) (domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setAmountQuery, amount, loanID)

	var loan domain.Loan

	err := row.Scan(
		&loan.ID,
		&loan.BorrowerID,
		&loan.Amount,
		&loan.TermMonths,
		&loan.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return loan, domain.ErrLoanNotFound
		}

		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "loans_amount_check" {
				return loan, domain.ErrNonPositiveAmount
			}
		}

		return loan, errorspkg.ErrInternal
	}

	return loan, nil
}

const deleteQuery = `
DELETE FROM loans
WHERE id = $1
`

// Delete removes the loan with the given id.
func (r *RepoPGS) Delete(ctx context.Context, loanID int32) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, loanID)
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
		return domain.ErrLoanNotFound
	}

	return nil
}

const listQuery = `
SELECT
	id, borrower_id, amount, term_months, created_at
FROM loans
WHERE borrower_id = $1
ORDER BY id
`

const listSortedQuery = `
SELECT
	id, borrower_id, amount, term_months, created_at
FROM loans
WHERE borrower_id = $1
ORDER BY amount, id
`

// ListByBorrower returns all loans of the given borrower.
func (r *RepoPGS) ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	return r.list(ctx, listQuery, borrowerID)
}

// ListByBorrowerSortedByAmount returns all loans of the given borrower ordered
// ascending by outstanding principal, ties broken by id.
func (r *RepoPGS) ListByBorrowerSortedByAmount(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	return r.list(ctx, listSortedQuery, borrowerID)
}

func (r *RepoPGS) list(ctx context.Context, query string, borrowerID int32) ([]domain.Loan, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, borrowerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Loan{}

	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(
			&loan.ID,
			&loan.BorrowerID,
			&loan.Amount,
			&loan.TermMonths,
			&loan.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, loan)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
