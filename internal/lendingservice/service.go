// Package lendingservice manages business logic layer of loan money movement.
//
// It composes the account ledger and the loan ledger into the two lending use
// cases: disbursement (create loan, credit account) and repayment (reduce
// loan, debit account). All cross-entity writes go through lendingrepo
// transactions so the pair of mutations is atomic.
package lendingservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-lend/lendbank/internal/domain"
)

// Repo provides data access layer interface needed by lending service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package lendingservice
type Repo interface {
	DisburseTx(ctx context.Context, arg domain.DisburseParams) (domain.DisburseTxResult, error)
	SettleTx(ctx context.Context, arg domain.SettleParams) (domain.SettleTxResult, error)
}

// AccountService provides the account ledger interface needed to resolve and
// verify accounts before any write.
type AccountService interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// LoanService provides the loan ledger interface for lookups and listings.
type LoanService interface {
	Get(ctx context.Context, borrowerID, loanID int32) (domain.Loan, error)
	List(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
	ListSortedByAmount(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
}

// CustomerService provides the customer lookup interface.
type CustomerService interface {
	Get(ctx context.Context, id int32) (domain.Customer, error)
}

// Service facilitates lending service layer logic.
type Service struct {
	repo            Repo
	accountService  AccountService
	loanService     LoanService
	customerService CustomerService
}

// New returns lending service struct to manage lending bussines logic.
func New(lr Repo, as AccountService, ls LoanService, cs CustomerService) *Service {
	return &Service{
		repo:            lr,
		accountService:  as,
		loanService:     ls,
		customerService: cs,
	}
}

func (s *Service) validDisburse(ctx context.Context, arg domain.DisburseParams) error {
	l := zerolog.Ctx(ctx)

	if !domain.ValidTermMonths(arg.TermMonths) {
		return domain.ErrInvalidTerm
	}

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveAmount
	}

	if _, err := s.customerService.Get(ctx, arg.BorrowerID); err != nil {
		return err
	}

	account, err := s.accountService.Get(ctx, arg.AccountID)
	if err != nil {
		return err
	}

	for _, owner := range account.Owners {
		if owner == arg.BorrowerID {
			return nil
		}
	}

	l.Info().Int32("account_id", arg.AccountID).Int32("borrower_id", arg.BorrowerID).Msg("disburse refused")

	return domain.ErrNotAnOwner
}

// Disburse originates a loan for the borrower and credits the linked account
// in one atomic operation. Nothing is persisted when validation fails.
func (s *Service) Disburse(ctx context.Context, arg domain.DisburseParams) (domain.DisburseTxResult, error) {
	if err := s.validDisburse(ctx, arg); err != nil {
		return domain.DisburseTxResult{}, err
	}

	result, err := s.repo.DisburseTx(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Settle repays the borrower's loan and debits the linked account by the
// applied amount in one atomic operation.
//
// An unknown loan is reported with domain.ErrLoanNotFound before the account
// is touched; the account is never debited for a loan that does not exist.
func (s *Service) Settle(ctx context.Context, arg domain.SettleParams) (domain.SettleTxResult, error) {
	l := zerolog.Ctx(ctx)

	payment, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.SettleTxResult{}, domain.ErrInvalidAmount
	}

	if payment.LessThanOrEqual(decimal.Zero) {
		return domain.SettleTxResult{}, domain.ErrNonPositiveAmount
	}

	if _, err := s.loanService.Get(ctx, arg.BorrowerID, arg.LoanID); err != nil {
		if err == domain.ErrLoanNotFound {
			l.Info().Int32("loan_id", arg.LoanID).Int32("borrower_id", arg.BorrowerID).Msg("loan not found")
		}

		return domain.SettleTxResult{}, err
	}

	result, err := s.repo.SettleTx(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

// ListLoans returns all loans of the given borrower.
func (s *Service) ListLoans(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	return s.loanService.List(ctx, borrowerID)
}

// ListLoansSortedByAmount returns all loans of the given borrower ordered
// ascending by outstanding principal.
func (s *Service) ListLoansSortedByAmount(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	return s.loanService.ListSortedByAmount(ctx, borrowerID)
}
