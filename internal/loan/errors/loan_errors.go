package loanerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrLoanTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan type not found",
		http.StatusNotFound,
	)
	ErrDuplicateLoanType = apperror.New(
		apperror.CodeConflict,
		"loan type name already exists",
		http.StatusConflict,
	)
	ErrLoanNotFound = apperror.New(
		apperror.CodeNotFound,
		"loan not found",
		http.StatusNotFound,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a positive decimal",
		http.StatusBadRequest,
	)
	ErrAmountExceedsLimit = apperror.New(
		apperror.CodeInvalidInput,
		"loan amount exceeds the maximum for this loan type",
		http.StatusBadRequest,
	)
	ErrTenureExceedsLimit = apperror.New(
		apperror.CodeInvalidInput,
		"tenure exceeds the maximum for this loan type",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid loan status transition",
		http.StatusBadRequest,
	)
	ErrLoanNotActive = apperror.New(
		apperror.CodeInvalidState,
		"repayments can only be recorded against an active loan",
		http.StatusBadRequest,
	)
)
