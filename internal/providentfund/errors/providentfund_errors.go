package providentfunderrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"provident fund account not found",
		http.StatusNotFound,
	)
	ErrAccountExists = apperror.New(
		apperror.CodeConflict,
		"employee already has a provident fund account",
		http.StatusConflict,
	)
	ErrAccountInactive = apperror.New(
		apperror.CodeInvalidState,
		"provident fund account is inactive",
		http.StatusBadRequest,
	)
	ErrInvalidPercent = apperror.New(
		apperror.CodeInvalidInput,
		"contribution percent must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a positive decimal",
		http.StatusBadRequest,
	)
)
