package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/errorspkg"
)

func testAccount(id int32, owners []int32, balance string) domain.Account {
	return domain.Account{
		ID:             id,
		Type:           domain.AccountTypeChecking,
		Owners:         owners,
		Balance:        balance,
		TransactionFee: DefaultTransactionFee,
		InterestRate:   "0",
		CreatedAt:      time.Now().Truncate(time.Second).UTC(),
	}
}

func setupService(t *testing.T) (*Service, *MockRepo) {
	t.Helper()

	repo := NewMockRepo(gomock.NewController(t))

	return New(repo), repo
}

func TestOpen(t *testing.T) {
	owners := []int32{1, 2}
	account := testAccount(10, owners, "100")

	testCases := []struct {
		name           string
		accountType    string
		owners         []int32
		initialDeposit string
		buildStubs     func(repo *MockRepo)
		checkResponse  func(res domain.Account, err error)
	}{
		{
			name:           "NoOwners",
			accountType:    domain.AccountTypeChecking,
			owners:         nil,
			initialDeposit: "100",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNoOwners)
			},
		},
		{
			name:           "InvalidDeposit",
			accountType:    domain.AccountTypeChecking,
			owners:         owners,
			initialDeposit: "one hundred",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:           "NegativeDeposit",
			accountType:    domain.AccountTypeChecking,
			owners:         owners,
			initialDeposit: "-100",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNegativeDeposit)
			},
		},
		{
			name:           "UnknownType",
			accountType:    "offshore",
			owners:         owners,
			initialDeposit: "100",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAccountType)
			},
		},
		{
			name:           "RepoError",
			accountType:    domain.AccountTypeChecking,
			owners:         owners,
			initialDeposit: "100",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name:           "CheckingOK",
			accountType:    domain.AccountTypeChecking,
			owners:         owners,
			initialDeposit: "100",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateAccountParams{
					Type:           domain.AccountTypeChecking,
					Owners:         owners,
					Balance:        "100",
					TransactionFee: DefaultTransactionFee,
					InterestRate:   "0",
				}

				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
		{
			name:           "SavingsOK",
			accountType:    domain.AccountTypeSavings,
			owners:         owners,
			initialDeposit: "0",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateAccountParams{
					Type:           domain.AccountTypeSavings,
					Owners:         owners,
					Balance:        "0",
					TransactionFee: "0",
					InterestRate:   DefaultInterestRate,
				}

				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, repo := setupService(t)
			tc.buildStubs(repo)

			res, err := service.Open(context.Background(), tc.accountType, tc.owners, tc.initialDeposit)
			tc.checkResponse(res, err)
		})
	}
}

func TestCredit(t *testing.T) {
	account := testAccount(10, []int32{1}, "150")

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name:   "InvalidAmount",
			amount: "fifty",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:   "ZeroAmount",
			amount: "0",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			},
		},
		{
			name:   "NegativeAmount",
			amount: "-50",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			},
		},
		{
			name:   "AccountNotFound",
			amount: "50",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Eq("50"), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name:   "OK",
			amount: "50",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Eq("50"), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, repo := setupService(t)
			tc.buildStubs(repo)

			res, err := service.Credit(context.Background(), account.ID, tc.amount)
			tc.checkResponse(res, err)
		})
	}
}

func TestDebit(t *testing.T) {
	account := testAccount(10, []int32{1}, "50")

	testCases := []struct {
		name          string
		amount        string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name:   "InvalidAmount",
			amount: "fifty",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:   "NegativeAmount",
			amount: "-50",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			},
		},
		{
			name:   "InsufficientBalance",
			amount: "100",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Eq("-100"), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrInsufficientBalance)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInsufficientBalance)
			},
		},
		{
			name:   "OK",
			amount: "50",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().AddBalance(gomock.Any(), gomock.Eq("-50"), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, repo := setupService(t)
			tc.buildStubs(repo)

			res, err := service.Debit(context.Background(), account.ID, tc.amount)
			tc.checkResponse(res, err)
		})
	}
}

func TestClose(t *testing.T) {
	const (
		customerID = int32(1)
		accountID  = int32(10)
	)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(err error)
	}{
		{
			name: "NotAnOwner",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().IsOwner(gomock.Any(), gomock.Eq(accountID), gomock.Eq(customerID)).
					Times(1).
					Return(false, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(testAccount(accountID, []int32{99}, "0"), nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.ErrorIs(t, err, domain.ErrNotAnOwner)
			},
		},
		{
			name: "AccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().IsOwner(gomock.Any(), gomock.Eq(accountID), gomock.Eq(customerID)).
					Times(1).
					Return(false, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().IsOwner(gomock.Any(), gomock.Eq(accountID), gomock.Eq(customerID)).
					Times(1).
					Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Eq(accountID)).
					Times(1).
					Return(nil)
			},
			checkResponse: func(err error) {
				require.NoError(t, err)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, repo := setupService(t)
			tc.buildStubs(repo)

			tc.checkResponse(service.Close(context.Background(), customerID, accountID))
		})
	}
}

func TestGet(t *testing.T) {
	account := testAccount(10, []int32{1}, "100")

	service, repo := setupService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
		Times(1).
		Return(account, nil)

	got, err := service.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)
}

func TestList(t *testing.T) {
	customerID := int32(1)
	accounts := []domain.Account{
		testAccount(10, []int32{customerID}, "100"),
		testAccount(11, []int32{customerID, 2}, "200"),
	}

	service, repo := setupService(t)

	repo.EXPECT().List(gomock.Any(), gomock.Eq(customerID)).
		Times(1).
		Return(accounts, nil)

	got, err := service.List(context.Background(), customerID)
	require.NoError(t, err)
	require.Equal(t, accounts, got)
}
