package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that an owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrNotAnOwner indicates that the customer does not own the account.
	ErrNotAnOwner = errors.New("customer does not own the account")
	// ErrNoOwners indicates that the account would be created without owners.
	ErrNoOwners = errors.New("account requires at least one owner")
	// ErrInvalidAccountType indicates an unsupported account type.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrNegativeDeposit indicates a negative initial deposit.
	ErrNegativeDeposit = errors.New("initial deposit must not be negative")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account types.
const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
)

// Account holds balance data for an account jointly owned by one or more customers.
//
// TransactionFee is carried by checking accounts and InterestRate by savings
// accounts; both are stored rates, no ledger operation applies them.
type Account struct {
	ID             int32     `json:"id"`
	Type           string    `json:"type"`
	Owners         []int32   `json:"owners"`
	Balance        string    `json:"balance"`
	TransactionFee string    `json:"transaction_fee"`
	InterestRate   string    `json:"interest_rate"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to persist a new account.
type CreateAccountParams struct {
	Type           string
	Owners         []int32
	Balance        string
	TransactionFee string
	InterestRate   string
}
