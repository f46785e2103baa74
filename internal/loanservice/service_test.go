package loanservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/errorspkg"
)

func testLoan(id, borrowerID int32, amount string) domain.Loan {
	return domain.Loan{
		ID:         id,
		BorrowerID: borrowerID,
		Amount:     amount,
		TermMonths: 24,
		CreatedAt:  time.Now().Truncate(time.Second).UTC(),
	}
}

func setupService(t *testing.T) (*Service, *MockRepo) {
	t.Helper()

	repo := NewMockRepo(gomock.NewController(t))

	return New(repo), repo
}

func TestGet(t *testing.T) {
	loan := testLoan(3, 1, "1000")

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Loan, err error)
	}{
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(loan.BorrowerID), gomock.Eq(loan.ID)).
					Times(1).
					Return(domain.Loan{}, domain.ErrLoanNotFound)
			},
			checkResponse: func(res domain.Loan, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrLoanNotFound)
			},
		},
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(loan.BorrowerID), gomock.Eq(loan.ID)).
					Times(1).
					Return(loan, nil)
			},
			checkResponse: func(res domain.Loan, err error) {
				require.NoError(t, err)
				require.Equal(t, loan, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			service, repo := setupService(t)
			tc.buildStubs(repo)

			res, err := service.Get(context.Background(), loan.BorrowerID, loan.ID)
			tc.checkResponse(res, err)
		})
	}
}

func TestList(t *testing.T) {
	borrowerID := int32(1)
	loans := []domain.Loan{
		testLoan(1, borrowerID, "500"),
		testLoan(2, borrowerID, "100"),
	}

	service, repo := setupService(t)

	repo.EXPECT().ListByBorrower(gomock.Any(), gomock.Eq(borrowerID)).
		Times(1).
		Return(loans, nil)

	got, err := service.List(context.Background(), borrowerID)
	require.NoError(t, err)
	require.Equal(t, loans, got)
}

func TestListRepoError(t *testing.T) {
	service, repo := setupService(t)

	repo.EXPECT().ListByBorrower(gomock.Any(), gomock.Any()).
		Times(1).
		Return(nil, errorspkg.ErrInternal)

	got, err := service.List(context.Background(), 1)
	require.Nil(t, got)
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}

func TestListSortedByAmount(t *testing.T) {
	borrowerID := int32(1)
	loans := []domain.Loan{
		testLoan(2, borrowerID, "100"),
		testLoan(1, borrowerID, "500"),
	}

	service, repo := setupService(t)

	repo.EXPECT().ListByBorrowerSortedByAmount(gomock.Any(), gomock.Eq(borrowerID)).
		Times(1).
		Return(loans, nil)

	got, err := service.ListSortedByAmount(context.Background(), borrowerID)
	require.NoError(t, err)
	require.Equal(t, loans, got)
}
