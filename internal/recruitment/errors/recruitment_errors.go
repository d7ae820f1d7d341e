package recruitmenterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrPostingNotFound = apperror.New(
		apperror.CodeNotFound,
		"job posting not found",
		http.StatusNotFound,
	)
	ErrDuplicateJobCode = apperror.New(
		apperror.CodeConflict,
		"a job posting with this code already exists",
		http.StatusConflict,
	)
	ErrPostingNotOpen = apperror.New(
		apperror.CodeInvalidState,
		"job posting is not open for applications",
		http.StatusConflict,
	)
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid candidate status transition",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryRange = apperror.New(
		apperror.CodeInvalidInput,
		"salary range minimum must not exceed maximum",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
