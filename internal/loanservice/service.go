// Package loanservice manages business logic layer of loans.
//
// Loan listings and lookups always consult the repository; no loan set is
// cached between calls.
package loanservice

import (
	"context"

	"github.com/go-lend/lendbank/internal/domain"
)

// Repo provides data access layer interface needed by loan service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package loanservice
type Repo interface {
	Get(ctx context.Context, borrowerID, loanID int32) (domain.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
	ListByBorrowerSortedByAmount(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
}

// Service facilitates loan service layer logic.
type Service struct {
	repo Repo
}

// New returns loan service struct to manage loan bussines logic.
func New(lr Repo) *Service {
	return &Service{repo: lr}
}

// Get returns the borrower's loan with the given id.
//
// An absent loan is reported with domain.ErrLoanNotFound so callers can treat
// it as a no-op rather than a failure.
func (s *Service) Get(ctx context.Context, borrowerID, loanID int32) (domain.Loan, error) {
	loan, err := s.repo.Get(ctx, borrowerID, loanID)
	if err != nil {
		return domain.Loan{}, err
	}

	return loan, nil
}

// List returns all loans of the given borrower.
func (s *Service) List(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	loans, err := s.repo.ListByBorrower(ctx, borrowerID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

// ListSortedByAmount returns all loans of the given borrower ordered ascending
// by outstanding principal.
func (s *Service) ListSortedByAmount(ctx context.Context, borrowerID int32) ([]domain.Loan, error) {
	loans, err := s.repo.ListByBorrowerSortedByAmount(ctx, borrowerID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}
