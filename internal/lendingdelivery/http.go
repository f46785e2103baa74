// Package lendingdelivery manages delivery layer of loan money movement.
package lendingdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-lend/lendbank/internal/domain"
	"github.com/go-lend/lendbank/pkg/errorspkg"
	"github.com/go-lend/lendbank/pkg/web"
)

// Service provides service layer interface needed by lending delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package lendingdelivery
type Service interface {
	Disburse(ctx context.Context, arg domain.DisburseParams) (domain.DisburseTxResult, error)
	Settle(ctx context.Context, arg domain.SettleParams) (domain.SettleTxResult, error)
	ListLoans(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
	ListLoansSortedByAmount(ctx context.Context, borrowerID int32) ([]domain.Loan, error)
}

// Handler facilitates lending delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns lending handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

func bindErrMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return "invalid request"
}

type disburseRequest struct {
	BorrowerID int32  `json:"borrower_id" binding:"required,min=1"`
	AccountID  int32  `json:"account_id" binding:"required,min=1"`
	Amount     string `json:"amount" binding:"required"`
	TermMonths int32  `json:"term_months" binding:"required"`
}

type disburseResponse struct {
	Data domain.DisburseTxResult `json:"data"`
}

// Disburse handles http request to originate a loan and credit the account.
func (h *Handler) Disburse(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req disburseRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	arg := domain.DisburseParams{
		BorrowerID: req.BorrowerID,
		AccountID:  req.AccountID,
		Amount:     req.Amount,
		TermMonths: req.TermMonths,
	}

	result, err := h.service.Disburse(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidTerm, domain.ErrInvalidAmount, domain.ErrNonPositiveAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrCustomerNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrNotAnOwner:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		var ce *errorspkg.ConsistencyError
		if errors.As(err, &ce) {
			l.Error().Err(err).Msg("disburse left inconsistent state")
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, disburseResponse{Data: result})
}

type settleURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type settleRequest struct {
	BorrowerID int32  `json:"borrower_id" binding:"required,min=1"`
	AccountID  int32  `json:"account_id" binding:"required,min=1"`
	Amount     string `json:"amount" binding:"required"`
}

type settleResponse struct {
	Data domain.SettleTxResult `json:"data"`
}

// Settle handles http request to repay a loan and debit the account.
//
// An unknown loan is reported as not found; the account is left untouched.
func (h *Handler) Settle(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri settleURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var req settleRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	arg := domain.SettleParams{
		LoanID:     uri.ID,
		BorrowerID: req.BorrowerID,
		AccountID:  req.AccountID,
		Amount:     req.Amount,
	}

	result, err := h.service.Settle(ctx, arg)
	if err != nil {
		switch err {
		case domain.ErrLoanNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrInvalidAmount, domain.ErrNonPositiveAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		}

		var ce *errorspkg.ConsistencyError
		if errors.As(err, &ce) {
			l.Error().Err(err).Msg("settle left inconsistent state")
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, settleResponse{Data: result})
}

type listURI struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

type listQuery struct {
	Sort string `form:"sort" binding:"omitempty,oneof=amount"`
}

type listResponse struct {
	Data struct {
		Loans []domain.Loan `json:"loans"`
	} `json:"data"`
}

// ListLoans handles http request to list the borrower's loans, optionally
// sorted ascending by outstanding principal.
func (h *Handler) ListLoans(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri listURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var query listQuery
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrMsg(err)})

		return
	}

	var (
		loans []domain.Loan
		err   error
	)

	if query.Sort == "amount" {
		loans, err = h.service.ListLoansSortedByAmount(ctx, uri.ID)
	} else {
		loans, err = h.service.ListLoans(ctx, uri.ID)
	}

	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	var res listResponse
	res.Data.Loans = loans

	gctx.JSON(http.StatusOK, res)
}
