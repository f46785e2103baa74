// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-lend/lendbank/internal/domain"
)

// Default rates assigned at account opening. Both are stored only; no ledger
// operation applies them.
const (
	DefaultTransactionFee = "0.25"
	DefaultInterestRate   = "0.02"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	AddBalance(ctx context.Context, amount string, id int32) (domain.Account, error)
	IsOwner(ctx context.Context, accountID, customerID int32) (bool, error)
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, customerID int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Open creates an account of the given type for the given owners and returns it.
func (s *Service) Open(ctx context.Context, accountType string, owners []int32, initialDeposit string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if len(owners) == 0 {
		return domain.Account{}, domain.ErrNoOwners
	}

	deposit, err := decimal.NewFromString(initialDeposit)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if deposit.IsNegative() {
		return domain.Account{}, domain.ErrNegativeDeposit
	}

	arg := domain.CreateAccountParams{
		Type:    accountType,
		Owners:  owners,
		Balance: deposit.String(),
	}

	switch accountType {
	case domain.AccountTypeChecking:
		arg.TransactionFee = DefaultTransactionFee
		arg.InterestRate = "0"
	case domain.AccountTypeSavings:
		arg.TransactionFee = "0"
		arg.InterestRate = DefaultInterestRate
	default:
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Credit adds the given positive amount to the account's balance.
func (s *Service) Credit(ctx context.Context, accountID int32, amount string) (domain.Account, error) {
	if err := validAmount(ctx, amount); err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.AddBalance(ctx, amount, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Debit subtracts the given positive amount from the account's balance.
//
// A debit that would drive the balance negative fails with
// ErrInsufficientBalance and leaves the account untouched.
func (s *Service) Debit(ctx context.Context, accountID int32, amount string) (domain.Account, error) {
	if err := validAmount(ctx, amount); err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.AddBalance(ctx, "-"+amount, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Close deletes the given customer's account.
func (s *Service) Close(ctx context.Context, customerID, accountID int32) error {
	l := zerolog.Ctx(ctx)

	owns, err := s.repo.IsOwner(ctx, accountID, customerID)
	if err != nil {
		return err
	}

	if !owns {
		if _, err := s.repo.Get(ctx, accountID); err != nil {
			return err
		}

		l.Info().Int32("account_id", accountID).Int32("customer_id", customerID).Msg("close refused")

		return domain.ErrNotAnOwner
	}

	return s.repo.Delete(ctx, accountID)
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// List returns the accounts owned by the given customer.
func (s *Service) List(ctx context.Context, customerID int32) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func validAmount(ctx context.Context, amount string) error {
	l := zerolog.Ctx(ctx)

	d, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return domain.ErrNonPositiveAmount
	}

	return nil
}
