package domain

import (
	"errors"
	"time"
)

// Loan term bounds in months.
const (
	MinTermMonths = 6
	MaxTermMonths = 120
)

var (
	// ErrLoanNotFound indicates that the loan is not found.
	ErrLoanNotFound = errors.New("loan not found")
	// ErrInvalidTerm indicates a loan term outside the allowed bounds.
	ErrInvalidTerm = errors.New("invalid term months (6-120)")
)

// Loan holds the outstanding principal of a customer's loan.
//
// Amount is mutated down by repayments and is always positive while the loan
// exists; a loan repaid to zero is deleted.
type Loan struct {
	ID         int32     `json:"id"`
	BorrowerID int32     `json:"borrower_id"`
	Amount     string    `json:"amount"`
	TermMonths int32     `json:"term_months"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidTermMonths reports whether the term is within the allowed bounds.
func ValidTermMonths(termMonths int32) bool {
	return termMonths >= MinTermMonths && termMonths <= MaxTermMonths
}
