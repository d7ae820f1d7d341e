package trainingerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrProgramNotFound = apperror.New(
		apperror.CodeNotFound,
		"training program not found",
		http.StatusNotFound,
	)
	ErrDuplicateProgramCode = apperror.New(
		apperror.CodeConflict,
		"training program code already exists",
		http.StatusConflict,
	)
	ErrParticipantNotFound = apperror.New(
		apperror.CodeNotFound,
		"training participant not found",
		http.StatusNotFound,
	)
	ErrAlreadyEnrolled = apperror.New(
		apperror.CodeConflict,
		"employee is already enrolled in this program",
		http.StatusConflict,
	)
	ErrProgramFull = apperror.New(
		apperror.CodeInvalidState,
		"training program has reached its participant limit",
		http.StatusBadRequest,
	)
	ErrProgramInactive = apperror.New(
		apperror.CodeInvalidState,
		"training program is not open for enrollment",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"participant status can only change while enrolled",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative decimal",
		http.StatusBadRequest,
	)
)
