//go:build integration

package accountrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-lend/lendbank/internal/accountrepo"
	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/internal/integrationtest"
	"github.com/go-lend/lendbank/internal/integrationtest/helpers"
	"github.com/go-lend/lendbank/pkg/configpkg"
	"github.com/go-lend/lendbank/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner1 := helpers.SeedCustomer(t, tx)
	owner2 := helpers.SeedCustomer(t, tx)

	arg := domain.CreateAccountParams{
		Type:           domain.AccountTypeSavings,
		Owners:         []int32{owner1.ID, owner2.ID},
		Balance:        randompkg.MoneyAmountBetween(100, 1000),
		TransactionFee: "0",
		InterestRate:   "0.02",
	}

	account, err := accountRepo.Create(context.Background(), arg)
	require.NoError(t, err)

	require.NotZero(t, account.ID)
	require.Equal(t, arg.Type, account.Type)
	require.ElementsMatch(t, arg.Owners, account.Owners)
	require.Equal(t, arg.Balance, account.Balance)
	require.WithinDuration(t, time.Now().UTC(), account.CreatedAt, time.Second)
}

func TestCreateConstraintViolations(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		seedOwner bool
		arg       domain.CreateAccountParams
		wantErr   error
	}{
		{
			name: "OwnerNotFound",
			arg: domain.CreateAccountParams{
				Type:           domain.AccountTypeChecking,
				Owners:         []int32{0},
				Balance:        "100",
				TransactionFee: "0.25",
				InterestRate:   "0",
			},
			wantErr: domain.ErrOwnerNotFound,
		},
		{
			name:      "InvalidType",
			seedOwner: true,
			arg: domain.CreateAccountParams{
				Type:           "offshore",
				Balance:        "100",
				TransactionFee: "0.25",
				InterestRate:   "0",
			},
			wantErr: domain.ErrInvalidAccountType,
		},
		{
			name:      "NegativeBalance",
			seedOwner: true,
			arg: domain.CreateAccountParams{
				Type:           domain.AccountTypeChecking,
				Balance:        "-100",
				TransactionFee: "0.25",
				InterestRate:   "0",
			},
			wantErr: domain.ErrNegativeDeposit,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// A constraint violation aborts the surrounding transaction,
			// so every case gets its own.
			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			accountRepo := accountrepo.NewTxRepoPGS(tx)

			arg := tc.arg
			if tc.seedOwner {
				arg.Owners = []int32{helpers.SeedCustomer(t, tx).ID}
			}

			account, err := accountRepo.Create(context.Background(), arg)
			require.ErrorIs(t, err, tc.wantErr)
			require.Empty(t, account)
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner := helpers.SeedCustomer(t, tx)
	want := helpers.SeedAccountWith1000Balance(t, tx, owner.ID)

	got, err := accountRepo.Get(context.Background(), want.ID)
	require.NoError(t, err)

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
		t.Errorf("accountRepo.Get() returned unexpected difference (-want +got):\n%s", diff)
	}

	_, err = accountRepo.Get(context.Background(), want.ID+1)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddBalance(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner := helpers.SeedCustomer(t, tx)
	account := helpers.SeedAccountWith1000Balance(t, tx, owner.ID)

	got, err := accountRepo.AddBalance(context.Background(), "250", account.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString(got.Balance).Equal(decimal.NewFromInt(1250)),
		"balance = %s, want 1250", got.Balance)
	require.ElementsMatch(t, account.Owners, got.Owners)

	got, err = accountRepo.AddBalance(context.Background(), "-1250", account.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString(got.Balance).IsZero(),
		"balance = %s, want 0", got.Balance)
}

func TestAddBalanceInsufficient(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner := helpers.SeedCustomer(t, tx)
	account := helpers.SeedAccountWith1000Balance(t, tx, owner.ID)

	_, err := accountRepo.AddBalance(context.Background(), "-1001", account.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestAddBalanceNotFound(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	_, err := accountRepo.AddBalance(context.Background(), "100", 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestIsOwner(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner := helpers.SeedCustomer(t, tx)
	stranger := helpers.SeedCustomer(t, tx)
	account := helpers.SeedAccountWith1000Balance(t, tx, owner.ID)

	owns, err := accountRepo.IsOwner(context.Background(), account.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, owns)

	owns, err = accountRepo.IsOwner(context.Background(), account.ID, stranger.ID)
	require.NoError(t, err)
	require.False(t, owns)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner := helpers.SeedCustomer(t, tx)
	account := helpers.SeedAccountWith1000Balance(t, tx, owner.ID)

	require.NoError(t, accountRepo.Delete(context.Background(), account.ID))

	_, err := accountRepo.Get(context.Background(), account.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	require.ErrorIs(t, accountRepo.Delete(context.Background(), account.ID), domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	accountRepo := accountrepo.NewTxRepoPGS(tx)

	owner := helpers.SeedCustomer(t, tx)
	other := helpers.SeedCustomer(t, tx)

	first := helpers.SeedAccountWith1000Balance(t, tx, owner.ID)
	joint := helpers.SeedAccountWith1000Balance(t, tx, owner.ID, other.ID)
	helpers.SeedAccountWith1000Balance(t, tx, other.ID)

	got, err := accountRepo.List(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first.ID, got[0].ID)
	require.Equal(t, joint.ID, got[1].ID)
}
