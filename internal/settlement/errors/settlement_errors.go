package settlementerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrSettlementNotFound = apperror.New(
		apperror.CodeNotFound,
		"settlement not found",
		http.StatusNotFound,
	)
	ErrSettlementExists = apperror.New(
		apperror.CodeConflict,
		"a settlement already exists for this employee",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid settlement status transition",
		http.StatusBadRequest,
	)
	ErrSettlementImmutable = apperror.New(
		apperror.CodeInvalidState,
		"settlement components cannot be changed after approval",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"settlement amounts must be non-negative decimals",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
