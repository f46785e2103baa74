// Package helpers provides seed data helpers used in integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-lend/lendbank/internal/accountrepo"
	"github.com/go-lend/lendbank/internal/customerrepo"
	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/internal/loanrepo"
	"github.com/go-lend/lendbank/pkg/dbpkg"
	"github.com/go-lend/lendbank/pkg/passpkg"
	"github.com/go-lend/lendbank/pkg/randompkg"
)

// SeedCustomer creates a random customer.
func SeedCustomer(t *testing.T, db dbpkg.SQLInterface) domain.Customer {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateCustomerParams{
		FirstName:      randompkg.Name(),
		LastName:       randompkg.Name(),
		Email:          randompkg.Email(),
		PhoneNumber:    randompkg.PhoneNumber(),
		HashedPassword: hashedPassword,
	}

	customer, err := customerrepo.NewRepoPGS(db).Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, customer)

	return customer
}

// SeedAccount creates a checking account with the given balance for the given owners.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, balance string, owners ...int32) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		Type:           domain.AccountTypeChecking,
		Owners:         owners,
		Balance:        balance,
		TransactionFee: "0.25",
		InterestRate:   "0",
	}

	account, err := accountrepo.NewTxRepoPGS(db).Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	return account
}

// SeedAccountWith1000Balance creates a checking account holding 1000 for the given owners.
func SeedAccountWith1000Balance(t *testing.T, db dbpkg.SQLInterface, owners ...int32) domain.Account {
	t.Helper()

	return SeedAccount(t, db, "1000", owners...)
}

// SeedLoan creates a loan with the given outstanding principal for the given borrower.
func SeedLoan(t *testing.T, db dbpkg.SQLInterface, borrowerID int32, amount string) domain.Loan {
	t.Helper()

	loan, err := loanrepo.NewRepoPGS(db).Create(context.Background(), borrowerID, amount, randompkg.TermMonths())
	require.NoError(t, err)
	require.NotEmpty(t, loan)

	return loan
}
