// Package lendingrepo manages repository layer of loan money movement.
//
// Disbursement and repayment each mutate a loan and an account. Both run in a
// single database transaction so the two mutations appear atomic to every
// observer: no loan without disbursed funds, no principal reduction without
// the matching debit.
package lendingrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-lend/lendbank/internal/accountrepo"
	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/internal/entryrepo"
	"github.com/go-lend/lendbank/internal/loanrepo"
	"github.com/go-lend/lendbank/pkg/errorspkg"
)

// RepoPGS facilitates lending repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns lending RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{conn: db}
}

// DisburseTx originates a loan and credits the linked account.
//
// It creates the loan record, updates the account balance and adds an account
// entry within a single transaction. Lock order is loan row first, account
// row second; SettleTx uses the same order.
func (r *RepoPGS) DisburseTx(ctx context.Context, arg domain.DisburseParams) (domain.DisburseTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DisburseTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	loanRepo := loanrepo.NewRepoPGS(tx)
	accountRepo := accountrepo.NewTxRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)

	result.Loan, err = loanRepo.Create(ctx, arg.BorrowerID, arg.Amount, arg.TermMonths)
	if err != nil {
		return result, r.rollback(ctx, tx, "disburse", result.Loan.ID, arg.AccountID, arg.Amount, err)
	}

	result.Account, err = accountRepo.AddBalance(ctx, arg.Amount, arg.AccountID)
	if err != nil {
		return result, r.rollback(ctx, tx, "disburse", result.Loan.ID, arg.AccountID, arg.Amount, err)
	}

	result.Entry, err = entryRepo.Create(ctx, arg.Amount, arg.AccountID)
	if err != nil {
		return result, r.rollback(ctx, tx, "disburse", result.Loan.ID, arg.AccountID, arg.Amount, err)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// SettleTx repays a loan and debits the linked account.
//
// The loan row is locked for the duration of the transaction, so concurrent
// repayments against the same loan serialize and a fully repaid loan is
// deleted exactly once. The payment is capped at the outstanding principal
// and the account is debited by the applied amount, not the raw request.
func (r *RepoPGS) SettleTx(ctx context.Context, arg domain.SettleParams) (domain.SettleTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.SettleTxResult

	payment, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		return result, domain.ErrInvalidAmount
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	loanRepo := loanrepo.NewRepoPGS(tx)
	accountRepo := accountrepo.NewTxRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)

	loan, err := loanRepo.GetForUpdate(ctx, arg.BorrowerID, arg.LoanID)
	if err != nil {
		return result, r.rollback(ctx, tx, "settle", arg.LoanID, arg.AccountID, arg.Amount, err)
	}

	outstanding, err := decimal.NewFromString(loan.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return result, r.rollback(ctx, tx, "settle", arg.LoanID, arg.AccountID, arg.Amount, errorspkg.ErrInternal)
	}

	applied := decimal.Min(payment, outstanding)
	remaining := outstanding.Sub(applied)

	if remaining.IsZero() {
		result.FullyPaid = true

		if err := loanRepo.Delete(ctx, loan.ID); err != nil {
			return result, r.rollback(ctx, tx, "settle", arg.LoanID, arg.AccountID, arg.Amount, err)
		}
	} else {
		if _, err := loanRepo.SetAmount(ctx, loan.ID, remaining.String()); err != nil {
			return result, r.rollback(ctx, tx, "settle", arg.LoanID, arg.AccountID, arg.Amount, err)
		}
	}

	result.Account, err = accountRepo.AddBalance(ctx, "-"+applied.String(), arg.AccountID)
	if err != nil {
		return result, r.rollback(ctx, tx, "settle", arg.LoanID, arg.AccountID, arg.Amount, err)
	}

	result.Entry, err = entryRepo.Create(ctx, "-"+applied.String(), arg.AccountID)
	if err != nil {
		return result, r.rollback(ctx, tx, "settle", arg.LoanID, arg.AccountID, arg.Amount, err)
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.Applied = applied.String()
	result.Remaining = remaining.String()

	return result, nil
}

// rollback aborts the transaction and returns the original error. A rollback
// failure leaves the operation in an undefined state, so it is durably
// recorded for manual reconciliation and surfaced as a ConsistencyError.
func (r *RepoPGS) rollback(ctx context.Context, tx *sql.Tx, op string, loanID, accountID int32, amount string, opErr error) error {
	l := zerolog.Ctx(ctx)

	rbErr := tx.Rollback()
	if rbErr == nil || rbErr == sql.ErrTxDone {
		return opErr
	}

	l.Error().Err(rbErr).Str("op", op).Msg("rollback failed")

	r.recordReconciliation(ctx, op, loanID, accountID, amount, rbErr)

	return &errorspkg.ConsistencyError{Op: op, Err: rbErr}
}

const recordReconciliationQuery = `
INSERT INTO
	reconciliations (op, loan_id, account_id, amount, detail)
VALUES
	($1, $2, $3, $4, $5)
`

// recordReconciliation writes the failed operation outside the broken
// transaction. The insert deliberately runs on a fresh context: the record
// must be attempted even when the caller's context is already cancelled.
func (r *RepoPGS) recordReconciliation(ctx context.Context, op string, loanID, accountID int32, amount string, cause error) {
	l := zerolog.Ctx(ctx)

	_, err := r.conn.ExecContext(context.Background(), recordReconciliationQuery,
		op, loanID, accountID, amount, cause.Error())
	if err != nil {
		l.Error().Err(err).Str("op", op).Msg("failed to record reconciliation")
	}
}
